package uow

import (
	"context"

	"peerlend-backend/internal/domain/loan"
	"peerlend-backend/internal/domain/params"
	"peerlend-backend/internal/domain/transfer"
)

// Repos are the ports bound to the running transaction. Assets is included so
// ledger movements commit or roll back with the loan mutation they belong to.
type Repos struct {
	Loans  loan.Repository
	Params params.Store
	Assets transfer.Adapter
}

// UnitOfWork scopes one lifecycle operation: everything inside fn commits or
// rolls back together.
type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the loan row first, then pass it in, so concurrent
	// operations on the same loan id serialize
	WithinLoanTx(ctx context.Context, loanID uint64, fn func(r Repos, l *loan.Loan) error) error
}
