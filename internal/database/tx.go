package database

import (
	"context"

	"gorm.io/gorm"
)

type txContextKey struct{}

// WithinTransaction runs fn inside a single database transaction. The
// transaction is committed when fn returns nil and rolled back when fn
// returns an error or panics. Repositories called with the derived context
// pick the transaction up through Conn.
func WithinTransaction(ctx context.Context, db *gorm.DB, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txContextKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txContextKey{}, tx))
	})
}

// Conn returns the store handle for ctx: the open transaction when there is
// one, otherwise a session bound to ctx.
func Conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txContextKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}
