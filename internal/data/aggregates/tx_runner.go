package aggregates

import (
	"context"

	"gorm.io/gorm"

	domainagg "github.com/campuscms/backend/internal/domain/aggregates"
	"github.com/campuscms/backend/internal/platform/dbctx"
)

// TxRunner owns the transaction boundary for ledger writes. Everything a
// write does to a page row and its version entries happens inside one InTx
// call, so the pair commits or rolls back together.
type TxRunner interface {
	InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error
}

type gormTxRunner struct {
	db *gorm.DB
}

// NewGormTxRunner returns a TxRunner backed by GORM transactions. The
// SELECT ... FOR UPDATE page locks taken during version allocation live and
// die with the transaction it opens.
func NewGormTxRunner(db *gorm.DB) TxRunner {
	return &gormTxRunner{db: db}
}

func (r *gormTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	if fn == nil {
		return nil
	}
	if r == nil || r.db == nil {
		return domainagg.NewError(domainagg.CodeInternal, "ledger.tx", "transaction runner has no database handle", nil)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(dbctx.Context{Ctx: ctx, Tx: tx})
	})
}
