package mysql

import (
	"context"

	"peerlend-backend/internal/domain/loan"
	"peerlend-backend/internal/domain/params"
	"peerlend-backend/internal/domain/transfer"
	"peerlend-backend/internal/domain/uow"

	"gorm.io/gorm"
)

// AssetFactory binds a transfer adapter to the transaction a unit of work
// runs in, so ledger movements roll back with the loan mutation.
type AssetFactory func(tx *gorm.DB) transfer.Adapter

type GormUoW struct {
	db       *gorm.DB
	defaults params.Params
	assets   AssetFactory
}

func NewGormUoW(db *gorm.DB, defaults params.Params, assets AssetFactory) *GormUoW {
	return &GormUoW{db: db, defaults: defaults, assets: assets}
}

func (u *GormUoW) repos(tx *gorm.DB) uow.Repos {
	r := uow.Repos{
		Loans:  &LoanRepository{db: tx},
		Params: &ParamsStore{db: tx, defaults: u.defaults},
	}
	if u.assets != nil {
		r.Assets = u.assets(tx)
	}
	return r
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(u.repos(tx))
	})
}

// WithinLoanTx locks the loan row up front so concurrent lifecycle calls on
// the same id serialize instead of both observing the old status.
func (u *GormUoW) WithinLoanTx(ctx context.Context, loanID uint64, fn func(r uow.Repos, l *loan.Loan) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := u.repos(tx)
		l, err := r.Loans.GetByLoanIDForUpdate(ctx, loanID)
		if err != nil {
			return err
		}
		return fn(r, l)
	})
}
