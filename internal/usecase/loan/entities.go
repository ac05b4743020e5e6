package loan

import (
	"time"

	domain "peerlend-backend/internal/domain/loan"
)

type RequestLoanInput struct {
	Borrower         string
	Principal        uint64
	InterestRateBps  uint64
	Duration         time.Duration
	CollateralAmount uint64
	CollateralAsset  domain.Asset
	// SuppliedCollateral is the value attached to the call; for native
	// collateral it must equal CollateralAmount exactly. Token collateral is
	// pulled, not attached.
	SuppliedCollateral uint64
}

type FundLoanInput struct {
	LoanID uint64
	Lender string
	// SuppliedPrincipal must equal the requested principal; no partial funding.
	SuppliedPrincipal uint64
}

type RepayLoanInput struct {
	LoanID   uint64
	Borrower string
	Amount   uint64
}

type LiquidateLoanInput struct {
	LoanID uint64
	Lender string
}

type LoanDTO struct {
	LoanID           uint64       `json:"loan_id"`
	Borrower         string       `json:"borrower"`
	Lender           string       `json:"lender,omitempty"`
	Principal        uint64       `json:"principal"`
	InterestRateBps  uint64       `json:"interest_rate_bps"`
	Deadline         time.Time    `json:"deadline"`
	CollateralAmount uint64       `json:"collateral_amount"`
	CollateralAsset  domain.Asset `json:"collateral_asset"`
	RepaidAmount     uint64       `json:"repaid_amount"`
	TotalOwed        uint64       `json:"total_owed"`
	Status           string       `json:"status"`
	CreatedAt        time.Time    `json:"created_at"`
}

func toDTO(l *domain.Loan) *LoanDTO {
	return &LoanDTO{
		LoanID:           l.LoanID,
		Borrower:         l.Borrower,
		Lender:           l.Lender,
		Principal:        l.Principal,
		InterestRateBps:  l.InterestRateBps,
		Deadline:         l.Deadline,
		CollateralAmount: l.CollateralAmount,
		CollateralAsset:  l.CollateralAsset,
		RepaidAmount:     l.RepaidAmount,
		TotalOwed:        l.TotalOwed(),
		Status:           string(l.Status),
		CreatedAt:        l.CreatedAt,
	}
}
