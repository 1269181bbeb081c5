package slotRepo

import (
	"context"
	"time"

	"lingkod/config"
	"lingkod/database"
	"lingkod/models"
	"lingkod/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// UnitOfWork scopes a delete/insert sequence to one commit/rollback when the
// deployment supports multi-document transactions. On deployments that
// don't, Begin hands back a passthrough unit and callers fall back to manual
// compensation.
type UnitOfWork interface {
	// Context returns the context store operations inside this unit must use.
	Context() context.Context
	// Transactional reports whether Commit/Abort are backed by a real
	// store transaction.
	Transactional() bool
	Commit() error
	Abort()
	End()
}

// SlotRepository is the data access surface for appointment slots.
type SlotRepository interface {
	Begin(ctx context.Context) UnitOfWork
	// BeginPlain always hands back the passthrough unit. Callers use it to
	// redo a sequence with manual compensation after the store refused the
	// transaction Begin opened (see IsTransactionUnsupported).
	BeginPlain(ctx context.Context) UnitOfWork

	InsertOne(ctx context.Context, slot models.AppointmentSlot) error
	InsertMany(ctx context.Context, slots []models.AppointmentSlot) error
	DeleteByID(ctx context.Context, id string) error
	DeleteByThreadID(ctx context.Context, threadID string) (int64, error)

	// FindExact locates the slot matching the full (thread, date, start, end)
	// tuple; mongo.ErrNoDocuments when absent.
	FindExact(ctx context.Context, threadID string, date time.Time, startTime, endTime string) (*models.AppointmentSlot, error)
	GetByThreadID(ctx context.Context, threadID string) ([]models.AppointmentSlot, error)
	GetByDate(ctx context.Context, date time.Time) ([]models.AppointmentSlot, error)
	// GetByDateExcludingThread returns a date's slots minus those owned by
	// exemptThreadID, letting a thread validate against everyone but itself.
	GetByDateExcludingThread(ctx context.Context, date time.Time, exemptThreadID string) ([]models.AppointmentSlot, error)
	GetByDateRange(ctx context.Context, start, end time.Time) ([]models.AppointmentSlot, error)
}

type mongoSlotRepo struct {
	coll *mongo.Collection
}

// NewMongoSlotRepo constructs a MongoDB-backed SlotRepository and ensures
// its indexes exist.
func NewMongoSlotRepo() SlotRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	repo := &mongoSlotRepo{
		coll: db.Collection("appointment_slots"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		utils.GetLogger().Error("slot repo: failed to ensure indexes", zap.Error(err))
	}
	return repo
}
