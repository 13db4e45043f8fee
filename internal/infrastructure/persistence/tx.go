package persistence

import (
	"context"

	"github.com/boutikla/backend/internal/domain/shared"
	"gorm.io/gorm"
)

type txKey struct{}

// withTx returns a context carrying the transaction handle
func withTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// dbFromContext resolves the connection for a repository call: the ambient
// transaction when the context carries one, the repository's own handle
// otherwise.
func dbFromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return fallback.WithContext(ctx)
}

// TxManager implements shared.TransactionManager on GORM. The transaction
// handle travels in the context Do passes to fn, so every repository call
// made inside fn commits or rolls back as one unit. That includes writes
// made by synchronous event handlers, which receive the same context.
type TxManager struct {
	db *gorm.DB
}

// NewTxManager creates a TxManager over the given database
func NewTxManager(db *Database) *TxManager {
	return &TxManager{db: db.DB}
}

// Do runs fn inside a transaction carried by the context it passes to fn
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(withTx(ctx, tx))
	})
}

var _ shared.TransactionManager = (*TxManager)(nil)
