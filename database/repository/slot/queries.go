package slotRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"lingkod/models"
)

func (repo *mongoSlotRepo) FindExact(ctx context.Context, threadID string, date time.Time, startTime, endTime string) (*models.AppointmentSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"threadId":  threadID,
		"date":      date,
		"startTime": startTime,
		"endTime":   endTime,
	}

	var slot models.AppointmentSlot
	if err := repo.coll.FindOne(ctx, filter).Decode(&slot); err != nil {
		return nil, err
	}
	return &slot, nil
}

func (repo *mongoSlotRepo) GetByThreadID(ctx context.Context, threadID string) ([]models.AppointmentSlot, error) {
	return repo.find(ctx, bson.M{"threadId": threadID})
}

func (repo *mongoSlotRepo) GetByDate(ctx context.Context, date time.Time) ([]models.AppointmentSlot, error) {
	return repo.find(ctx, bson.M{"date": date})
}

func (repo *mongoSlotRepo) GetByDateExcludingThread(ctx context.Context, date time.Time, exemptThreadID string) ([]models.AppointmentSlot, error) {
	filter := bson.M{"date": date}
	if exemptThreadID != "" {
		filter["threadId"] = bson.M{"$ne": exemptThreadID}
	}
	return repo.find(ctx, filter)
}

func (repo *mongoSlotRepo) GetByDateRange(ctx context.Context, start, end time.Time) ([]models.AppointmentSlot, error) {
	filter := bson.M{
		"date": bson.M{"$gte": start, "$lte": end},
	}
	return repo.find(ctx, filter)
}

func (repo *mongoSlotRepo) find(ctx context.Context, filter bson.M) ([]models.AppointmentSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointment slots: %w", err)
	}
	defer cursor.Close(ctx)

	var slots []models.AppointmentSlot
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("error decoding appointment slots: %w", err)
	}
	return slots, nil
}
