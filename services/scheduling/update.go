package scheduling

import (
	"context"
	"errors"
	"time"

	slotRepo "lingkod/database/repository/slot"
	"lingkod/models"
	"lingkod/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// UpdateAppointmentSlotWithValidation moves one slot from oldRange to
// newRange: locate and back up the old slot, delete it, validate the new
// range, re-check overlaps, insert the replacement. When the store supports
// multi-document transactions the whole sequence commits or rolls back as
// one; otherwise the deleted backup is re-inserted by hand on any failure.
//
// A standalone mongod hands out sessions and accepts StartTransaction, then
// refuses the first in-transaction operation. When that happens the whole
// sequence is redone once on the compensating path.
//
// In the compensating mode there is a window between the delete and the
// restore/insert where a concurrent reader sees the slot as absent, and two
// concurrent updates can both pass the overlap check against a stale
// snapshot. If the compensating re-insert itself fails it is logged and the
// range stays unbooked until reconciled manually.
//
// Every outcome is a Result; no error or panic escapes.
func (s *DefaultSchedulingService) UpdateAppointmentSlotWithValidation(ctx context.Context, threadID string, oldRange, newRange models.SlotRange, staffID, residentID string) models.Result {
	oldDate, ok := utils.NormalizeDate(oldRange.Date)
	if !ok {
		return models.Fail(MsgInvalidDateFormat)
	}
	newDate, ok := utils.NormalizeDate(newRange.Date)
	if !ok {
		return models.Fail(MsgInvalidDateFormat)
	}

	uow := s.Repo.Begin(ctx)
	result, retry := s.updateSlotOnce(ctx, uow, threadID, oldDate, newDate, oldRange, newRange, staffID, residentID)
	uow.End()
	if !retry {
		return result
	}

	utils.GetLogger().Warn("store refused multi-document transaction, retrying with manual compensation",
		zap.String("threadID", threadID))
	plain := s.Repo.BeginPlain(ctx)
	result, _ = s.updateSlotOnce(ctx, plain, threadID, oldDate, newDate, oldRange, newRange, staffID, residentID)
	plain.End()
	return result
}

// updateSlotOnce runs the delete/validate/insert sequence inside one unit of
// work. retry is true only when a transactional unit was refused by the
// store, in which case no write has been applied and the caller may redo the
// sequence with a passthrough unit.
func (s *DefaultSchedulingService) updateSlotOnce(ctx context.Context, uow slotRepo.UnitOfWork, threadID string, oldDate, newDate time.Time, oldRange, newRange models.SlotRange, staffID, residentID string) (result models.Result, retry bool) {
	logger := utils.GetLogger()
	opCtx := uow.Context()

	var backup *models.AppointmentSlot
	deleted := false

	defer func() {
		if r := recover(); r != nil {
			logger.Error("appointment slot update panicked",
				zap.String("threadID", threadID), zap.Any("panic", r))
			s.restoreOrAbort(ctx, uow, backup, deleted)
			result = models.Fail(MsgUpdateFailed)
		}
	}()

	// Step 1: locate the exact slot being moved and keep a full copy.
	backup, err := s.Repo.FindExact(opCtx, threadID, oldDate, oldRange.StartTime, oldRange.EndTime)
	if err != nil {
		s.restoreOrAbort(ctx, uow, backup, deleted)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Fail(MsgSlotNotFound), false
		}
		if retryPlain(uow, err) {
			return models.Fail(MsgUpdateFailed), true
		}
		logger.Error("failed to locate appointment slot for update",
			zap.String("threadID", threadID), zap.Error(err))
		return models.Fail(MsgUpdateFailed), false
	}

	// Step 2: remove it so it no longer counts toward overlap.
	if err := s.Repo.DeleteByID(opCtx, backup.ID); err != nil {
		s.restoreOrAbort(ctx, uow, backup, deleted)
		if retryPlain(uow, err) {
			return models.Fail(MsgUpdateFailed), true
		}
		logger.Error("failed to delete appointment slot for update",
			zap.String("slotID", backup.ID), zap.Error(err))
		return models.Fail(MsgUpdateFailed), false
	}
	deleted = true

	// Step 3: office-hours and ordering checks on the new range.
	if res := validateBasicRange(newRange.StartTime, newRange.EndTime); !res.OK {
		s.restoreOrAbort(ctx, uow, backup, deleted)
		return res, false
	}

	// Step 4: overlap re-check against everything on the target date. The
	// backup's own id is skipped in case a stale read still surfaces the
	// freshly deleted document.
	sameDay, err := s.Repo.GetByDate(opCtx, newDate)
	if err != nil {
		s.restoreOrAbort(ctx, uow, backup, deleted)
		if retryPlain(uow, err) {
			return models.Fail(MsgUpdateFailed), true
		}
		logger.Error("failed to load slots for overlap re-check",
			zap.String("date", newRange.Date), zap.Error(err))
		return models.Fail(MsgUpdateFailed), false
	}
	candStart := utils.ToMinutes(newRange.StartTime)
	candEnd := utils.ToMinutes(newRange.EndTime)
	for _, other := range sameDay {
		if other.ID == backup.ID {
			continue
		}
		otherStart := utils.ToMinutes(other.StartTime)
		otherEnd := utils.ToMinutes(other.EndTime)
		if otherStart == utils.InvalidMinutes || otherEnd == utils.InvalidMinutes {
			continue
		}
		if utils.RangesOverlap(candStart, candEnd, otherStart, otherEnd) {
			s.restoreOrAbort(ctx, uow, backup, deleted)
			return models.Fail(MsgRangeUnavailable), false
		}
	}

	// Step 5: denormalize identity for the replacement record.
	staffIdent := s.Identity.Resolve(ctx, staffID)
	residentIdent := s.Identity.Resolve(ctx, residentID)

	replacement := models.AppointmentSlot{
		ID:                 uuid.New().String(),
		ThreadID:           threadID,
		ResidentID:         residentID,
		ResidentName:       residentIdent.DisplayName,
		ResidentBarangayID: residentIdent.BarangayID,
		StaffID:            staffID,
		StaffName:          staffIdent.DisplayName,
		StaffBarangayID:    staffIdent.BarangayID,
		Date:               newDate,
		StartTime:          newRange.StartTime,
		EndTime:            newRange.EndTime,
	}

	if err := s.Repo.InsertOne(opCtx, replacement); err != nil {
		s.restoreOrAbort(ctx, uow, backup, deleted)
		if retryPlain(uow, err) {
			return models.Fail(MsgUpdateFailed), true
		}
		logger.Error("failed to insert replacement appointment slot",
			zap.String("threadID", threadID), zap.Error(err))
		return models.Fail(MsgUpdateFailed), false
	}

	if uow.Transactional() {
		if err := uow.Commit(); err != nil {
			uow.Abort()
			logger.Error("failed to commit appointment slot update",
				zap.String("threadID", threadID), zap.Error(err))
			return models.Fail(MsgUpdateFailed), false
		}
	}
	return models.Ok(), false
}

// retryPlain reports whether a failed store operation should be redone on
// the compensating path: only when the unit was transactional and the store
// refused the transaction itself.
func retryPlain(uow slotRepo.UnitOfWork, err error) bool {
	return uow.Transactional() && slotRepo.IsTransactionUnsupported(err)
}

// restoreOrAbort undoes a partially applied update: transaction rollback
// when one is open, best-effort re-insertion of the backup otherwise. A
// failed re-insert is logged only and leaves the range unbooked.
func (s *DefaultSchedulingService) restoreOrAbort(ctx context.Context, uow slotRepo.UnitOfWork, backup *models.AppointmentSlot, deleted bool) {
	if uow.Transactional() {
		uow.Abort()
		return
	}
	if backup == nil || !deleted {
		return
	}
	if err := s.Repo.InsertOne(ctx, *backup); err != nil {
		utils.GetLogger().Error("failed to restore appointment slot after aborted update",
			zap.String("slotID", backup.ID),
			zap.String("threadID", backup.ThreadID),
			zap.Error(err))
	}
}
