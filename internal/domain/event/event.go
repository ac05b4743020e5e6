// Package event defines the lifecycle events observers subscribe to.
package event

import (
	"context"
	"time"

	"peerlend-backend/internal/domain/loan"
)

const (
	TypeLoanRequested  = "loan.requested"
	TypeLoanFunded     = "loan.funded"
	TypeLoanRepaid     = "loan.repaid"
	TypeLoanLiquidated = "loan.liquidated"
)

// Event is the wire envelope. Only the fields relevant to the event type are
// populated; Amount on a repaid event is the installment, not the cumulative
// total.
type Event struct {
	Type            string      `json:"type"`
	LoanID          uint64      `json:"loan_id"`
	Borrower        string      `json:"borrower,omitempty"`
	Lender          string      `json:"lender,omitempty"`
	Principal       uint64      `json:"principal,omitempty"`
	InterestRateBps uint64      `json:"interest_rate_bps,omitempty"`
	Collateral      uint64      `json:"collateral,omitempty"`
	CollateralAsset *loan.Asset `json:"collateral_asset,omitempty"`
	Amount          uint64      `json:"amount,omitempty"`
	Deadline        *time.Time  `json:"deadline,omitempty"`
	At              time.Time   `json:"at"`
}

// Emitter delivers events best-effort after a lifecycle operation commits.
// Emission failures must not fail the operation.
type Emitter interface {
	Emit(ctx context.Context, ev Event)
}

func Requested(l *loan.Loan, at time.Time) Event {
	asset := l.CollateralAsset
	deadline := l.Deadline
	return Event{
		Type:            TypeLoanRequested,
		LoanID:          l.LoanID,
		Borrower:        l.Borrower,
		Principal:       l.Principal,
		InterestRateBps: l.InterestRateBps,
		Collateral:      l.CollateralAmount,
		CollateralAsset: &asset,
		Deadline:        &deadline,
		At:              at,
	}
}

func Funded(l *loan.Loan, at time.Time) Event {
	return Event{Type: TypeLoanFunded, LoanID: l.LoanID, Lender: l.Lender, At: at}
}

func Repaid(l *loan.Loan, installment uint64, at time.Time) Event {
	return Event{Type: TypeLoanRepaid, LoanID: l.LoanID, Borrower: l.Borrower, Amount: installment, At: at}
}

func Liquidated(l *loan.Loan, at time.Time) Event {
	return Event{Type: TypeLoanLiquidated, LoanID: l.LoanID, Lender: l.Lender, At: at}
}
