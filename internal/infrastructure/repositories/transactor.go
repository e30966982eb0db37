package repositories

import (
	"context"
	"errors"

	"github.com/hardik-python-lr/our-gate-backend/domain"
	"gorm.io/gorm"
)

type txKey struct{}

// GormTransactor implements domain.Transactor. The open transaction travels in
// the context so repositories called inside fn join it.
type GormTransactor struct {
	db *gorm.DB
}

// NewTransactor creates a new transactor
func NewTransactor(db *gorm.DB) domain.Transactor {
	return &GormTransactor{db: db}
}

// Transaction implements domain.Transactor. Nested calls reuse the outer transaction.
func (t *GormTransactor) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// conn returns the transaction carried by ctx, or db bound to ctx.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}

// notFound maps gorm.ErrRecordNotFound to the given domain error.
func notFound(err, target error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return target
	}
	return err
}
