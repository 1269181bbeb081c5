package slotRepo

import (
	"context"
	"errors"
	"strings"

	"lingkod/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Begin opens a unit of work. When the deployment supports sessions and
// multi-document transactions (replica set or mongos) the unit wraps a real
// transaction; otherwise a passthrough unit is returned and the caller is
// expected to compensate manually.
func (repo *mongoSlotRepo) Begin(ctx context.Context) UnitOfWork {
	client := repo.coll.Database().Client()

	sess, err := client.StartSession()
	if err != nil {
		utils.GetLogger().Warn("slot repo: sessions unavailable, falling back to manual compensation",
			zap.Error(err))
		return &plainUnit{ctx: ctx}
	}
	if err := sess.StartTransaction(); err != nil {
		sess.EndSession(ctx)
		utils.GetLogger().Warn("slot repo: transactions unavailable, falling back to manual compensation",
			zap.Error(err))
		return &plainUnit{ctx: ctx}
	}

	return &txUnit{
		base: ctx,
		ctx:  mongo.NewSessionContext(ctx, sess),
		sess: sess,
	}
}

// BeginPlain skips the session handshake and returns the passthrough unit.
func (repo *mongoSlotRepo) BeginPlain(ctx context.Context) UnitOfWork {
	return &plainUnit{ctx: ctx}
}

// IsTransactionUnsupported reports whether the server rejected an operation
// because the deployment cannot run multi-document transactions. A standalone
// mongod hands out sessions and accepts StartTransaction, then refuses the
// first in-transaction operation with IllegalOperation, so this has to be
// checked per operation rather than in Begin.
func IsTransactionUnsupported(err error) bool {
	var cmdErr mongo.CommandError
	if !errors.As(err, &cmdErr) {
		return false
	}
	return cmdErr.Code == 20 || strings.Contains(cmdErr.Message, "Transaction numbers")
}

// txUnit is the transactional path: Abort rolls back every write made
// through Context().
type txUnit struct {
	base context.Context
	ctx  mongo.SessionContext
	sess mongo.Session
}

func (u *txUnit) Context() context.Context { return u.ctx }
func (u *txUnit) Transactional() bool      { return true }

func (u *txUnit) Commit() error {
	return u.sess.CommitTransaction(u.ctx)
}

func (u *txUnit) Abort() {
	if err := u.sess.AbortTransaction(u.ctx); err != nil {
		utils.GetLogger().Error("slot repo: transaction abort failed", zap.Error(err))
	}
}

func (u *txUnit) End() {
	u.sess.EndSession(u.base)
}

// plainUnit is the degraded path: writes apply immediately and Abort is a
// no-op, so callers must re-insert deleted documents themselves.
type plainUnit struct {
	ctx context.Context
}

func (u *plainUnit) Context() context.Context { return u.ctx }
func (u *plainUnit) Transactional() bool      { return false }
func (u *plainUnit) Commit() error            { return nil }
func (u *plainUnit) Abort()                   {}
func (u *plainUnit) End()                     {}
