package mysql

import (
	"context"
	"errors"

	domain "peerlend-backend/internal/domain/loan"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

// Create appends the loan and assigns the next sequential loan_id, starting
// at 0. The id is claimed inside a transaction; the unique index backstops a
// race between two concurrent creates.
func (r *LoanRepository) Create(ctx context.Context, l *domain.Loan) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var next uint64
		if err := tx.Model(&domain.Loan{}).
			Select("COALESCE(MAX(loan_id)+1, 0)").
			Scan(&next).Error; err != nil {
			return err
		}
		l.LoanID = next
		return tx.Create(l).Error
	})
}

func (r *LoanRepository) Save(ctx context.Context, l *domain.Loan) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID uint64) (*domain.Loan, error) {
	var out domain.Loan
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}

// GetByLoanIDForUpdate locks the row for the rest of the surrounding
// transaction. SQLite (used in tests) serializes writers on its own and does
// not speak FOR UPDATE.
func (r *LoanRepository) GetByLoanIDForUpdate(ctx context.Context, loanID uint64) (*domain.Loan, error) {
	q := r.db.WithContext(ctx)
	if q.Dialector.Name() == "mysql" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var out domain.Loan
	res := q.Where("loan_id = ?", loanID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}
