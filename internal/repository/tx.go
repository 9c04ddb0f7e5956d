package repository

import (
	"context"

	"gorm.io/gorm"
)

type txCtxKey struct{}

// TransactionManager runs a function inside a single database transaction.
// The transaction handle travels through the context, so repository calls
// made from fn all join the same transaction and roll back together.
type TransactionManager interface {
	RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error
}

type transactionManager struct {
	db *gorm.DB
}

func NewTransactionManager(db *gorm.DB) TransactionManager {
	return &transactionManager{db: db}
}

func (t *transactionManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txCtxKey{}, tx))
	})
}

// GetDB returns the transaction bound to ctx when one is active, otherwise
// the root handle. Repository methods go through this so they behave the
// same inside and outside RunInTx.
func GetDB(ctx context.Context, rootDB *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txCtxKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return rootDB.WithContext(ctx)
}
