package slotRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lingkod/models"
)

func (repo *mongoSlotRepo) InsertOne(ctx context.Context, slot models.AppointmentSlot) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if slot.ID == "" {
		slot.ID = uuid.New().String()
	}
	if slot.CreatedAt.IsZero() {
		slot.CreatedAt = time.Now().UTC()
	}

	_, err := repo.coll.InsertOne(ctx, slot)
	return err
}

func (repo *mongoSlotRepo) InsertMany(ctx context.Context, slots []models.AppointmentSlot) error {
	if len(slots) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	docs := make([]interface{}, len(slots))
	for i, slot := range slots {
		if slot.ID == "" {
			slot.ID = uuid.New().String()
		}
		if slot.CreatedAt.IsZero() {
			slot.CreatedAt = now
		}
		docs[i] = slot
	}

	_, err := repo.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	return err
}

func (repo *mongoSlotRepo) DeleteByID(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := repo.coll.DeleteOne(ctx, bson.M{"id": id})
	return err
}

func (repo *mongoSlotRepo) DeleteByThreadID(ctx context.Context, threadID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.coll.DeleteMany(ctx, bson.M{"threadId": threadID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
