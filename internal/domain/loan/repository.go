package loan

import "context"

// Repository is the loan ledger: identity-keyed, insertion-ordered, ids
// sequential from 0 and never reused. No transition validation lives here.
type Repository interface {
	// Create appends the loan and assigns the next sequential LoanID.
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID uint64) (*Loan, error)
	// GetByLoanIDForUpdate locks the row for the surrounding transaction.
	GetByLoanIDForUpdate(ctx context.Context, loanID uint64) (*Loan, error)
	Save(ctx context.Context, l *Loan) error
}
