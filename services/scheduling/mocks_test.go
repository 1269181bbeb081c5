package scheduling

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	slotRepo "lingkod/database/repository/slot"
	"lingkod/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// mockSlotRepo is an in-memory SlotRepository. With transactional=false its
// Begin hands back a passthrough unit, forcing the manual-compensation path;
// with transactional=true the unit snapshots state on Begin and restores it
// on Abort, mimicking a store transaction.
type mockSlotRepo struct {
	mu            sync.Mutex
	slots         map[string]models.AppointmentSlot
	transactional bool
	// txUnsupported makes every operation inside a transactional unit fail
	// the way a standalone mongod refuses multi-document transactions.
	txUnsupported bool
	inTx          bool
	// failInserts makes the next N InsertOne/InsertMany calls fail.
	failInserts int
}

// errTxUnsupported mirrors the IllegalOperation a standalone mongod returns
// on the first in-transaction operation.
var errTxUnsupported = mongo.CommandError{
	Code:    20,
	Name:    "IllegalOperation",
	Message: "Transaction numbers are only allowed on a replica set member or mongos",
}

// txRefused is checked under r.mu by the operations the update sequence
// issues through its unit of work.
func (r *mockSlotRepo) txRefused() bool {
	return r.inTx && r.txUnsupported
}

func newMockSlotRepo() *mockSlotRepo {
	return &mockSlotRepo{slots: make(map[string]models.AppointmentSlot)}
}

func (r *mockSlotRepo) seed(slot models.AppointmentSlot) models.AppointmentSlot {
	r.mu.Lock()
	defer r.mu.Unlock()
	if slot.ID == "" {
		slot.ID = uuid.New().String()
	}
	r.slots[slot.ID] = slot
	return slot
}

func (r *mockSlotRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.slots)
}

type mockUnit struct {
	repo     *mockSlotRepo
	snapshot map[string]models.AppointmentSlot
	tx       bool
}

func (u *mockUnit) Context() context.Context { return context.Background() }
func (u *mockUnit) Transactional() bool      { return u.tx }
func (u *mockUnit) Commit() error            { u.snapshot = nil; return nil }

func (u *mockUnit) End() {
	if !u.tx {
		return
	}
	u.repo.mu.Lock()
	u.repo.inTx = false
	u.repo.mu.Unlock()
}

func (u *mockUnit) Abort() {
	if !u.tx || u.snapshot == nil {
		return
	}
	u.repo.mu.Lock()
	defer u.repo.mu.Unlock()
	u.repo.slots = u.snapshot
	u.snapshot = nil
}

func (r *mockSlotRepo) Begin(ctx context.Context) slotRepo.UnitOfWork {
	if !r.transactional {
		return &mockUnit{repo: r}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	snapshot := make(map[string]models.AppointmentSlot, len(r.slots))
	for id, slot := range r.slots {
		snapshot[id] = slot
	}
	r.inTx = true
	return &mockUnit{repo: r, snapshot: snapshot, tx: true}
}

func (r *mockSlotRepo) BeginPlain(ctx context.Context) slotRepo.UnitOfWork {
	return &mockUnit{repo: r}
}

func (r *mockSlotRepo) InsertOne(ctx context.Context, slot models.AppointmentSlot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.txRefused() {
		return errTxUnsupported
	}
	if r.failInserts > 0 {
		r.failInserts--
		return errors.New("insert failed")
	}
	if slot.ID == "" {
		slot.ID = uuid.New().String()
	}
	for _, existing := range r.slots {
		if existing.ThreadID == slot.ThreadID && existing.Date.Equal(slot.Date) && existing.StartTime == slot.StartTime {
			return fmt.Errorf("duplicate key: %s/%s/%s", slot.ThreadID, slot.Date.Format("2006-01-02"), slot.StartTime)
		}
	}
	r.slots[slot.ID] = slot
	return nil
}

func (r *mockSlotRepo) InsertMany(ctx context.Context, slots []models.AppointmentSlot) error {
	for _, slot := range slots {
		if err := r.InsertOne(ctx, slot); err != nil {
			return err
		}
	}
	return nil
}

func (r *mockSlotRepo) DeleteByID(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.txRefused() {
		return errTxUnsupported
	}
	delete(r.slots, id)
	return nil
}

func (r *mockSlotRepo) DeleteByThreadID(ctx context.Context, threadID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deleted int64
	for id, slot := range r.slots {
		if slot.ThreadID == threadID {
			delete(r.slots, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *mockSlotRepo) FindExact(ctx context.Context, threadID string, date time.Time, startTime, endTime string) (*models.AppointmentSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.txRefused() {
		return nil, errTxUnsupported
	}
	for _, slot := range r.slots {
		if slot.ThreadID == threadID && slot.Date.Equal(date) && slot.StartTime == startTime && slot.EndTime == endTime {
			found := slot
			return &found, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *mockSlotRepo) GetByThreadID(ctx context.Context, threadID string) ([]models.AppointmentSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.AppointmentSlot
	for _, slot := range r.slots {
		if slot.ThreadID == threadID {
			out = append(out, slot)
		}
	}
	return out, nil
}

func (r *mockSlotRepo) GetByDate(ctx context.Context, date time.Time) ([]models.AppointmentSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.txRefused() {
		return nil, errTxUnsupported
	}
	var out []models.AppointmentSlot
	for _, slot := range r.slots {
		if slot.Date.Equal(date) {
			out = append(out, slot)
		}
	}
	return out, nil
}

func (r *mockSlotRepo) GetByDateExcludingThread(ctx context.Context, date time.Time, exemptThreadID string) ([]models.AppointmentSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.AppointmentSlot
	for _, slot := range r.slots {
		if slot.Date.Equal(date) && (exemptThreadID == "" || slot.ThreadID != exemptThreadID) {
			out = append(out, slot)
		}
	}
	return out, nil
}

func (r *mockSlotRepo) GetByDateRange(ctx context.Context, start, end time.Time) ([]models.AppointmentSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.AppointmentSlot
	for _, slot := range r.slots {
		if !slot.Date.Before(start) && !slot.Date.After(end) {
			out = append(out, slot)
		}
	}
	return out, nil
}

// mockResolver resolves identities from a fixed map; unknown IDs come back
// empty, matching best-effort semantics.
type mockResolver struct {
	identities map[string]models.Identity
}

func (m *mockResolver) Resolve(ctx context.Context, userID string) models.Identity {
	return m.identities[userID]
}

func newTestService(repo *mockSlotRepo) *DefaultSchedulingService {
	return &DefaultSchedulingService{
		Repo: repo,
		Identity: &mockResolver{identities: map[string]models.Identity{
			"staff-1":    {DisplayName: "Ana Reyes", BarangayID: "BRGY-STF-001"},
			"resident-1": {DisplayName: "Jose Cruz", BarangayID: "BRGY-RES-042"},
		}},
	}
}

func mustDate(t string) time.Time {
	parsed, err := time.Parse("2006-01-02", t)
	if err != nil {
		panic(err)
	}
	return parsed.UTC()
}
