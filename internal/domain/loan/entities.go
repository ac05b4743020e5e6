package loan

import (
	"time"
)

type Status string

const (
	StatusRequested  Status = "requested"
	StatusFunded     Status = "funded"
	StatusRepaid     Status = "repaid"
	StatusLiquidated Status = "liquidated"
)

// BpsDenominator: 10000 bps = 100%.
const BpsDenominator = 10000

const (
	AssetKindNative = "native"
	AssetKindToken  = "token"
)

// Asset is the tagged variant for an asset denomination: either native value
// (TokenID empty) or a specific fungible token.
type Asset struct {
	Kind    string `gorm:"size:16;column:asset_kind" json:"kind"`
	TokenID string `gorm:"size:32;column:asset_token_id" json:"token_id,omitempty"`
}

func NativeAsset() Asset         { return Asset{Kind: AssetKindNative} }
func TokenAsset(id string) Asset { return Asset{Kind: AssetKindToken, TokenID: id} }

func (a Asset) IsNative() bool { return a.Kind == AssetKindNative }

// Key is a stable string form, usable as a balance-account suffix.
func (a Asset) Key() string {
	if a.IsNative() {
		return AssetKindNative
	}
	return AssetKindToken + ":" + a.TokenID
}

type Loan struct {
	ID uint64 `gorm:"primaryKey;column:id" json:"-"`
	// Public sequential identifier, assigned by the ledger starting at 0,
	// never reused.
	LoanID           uint64    `gorm:"column:loan_id;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	Borrower         string    `gorm:"size:32;column:borrower;index:idx_loans_borrower" json:"borrower"`
	Lender           string    `gorm:"size:32;column:lender" json:"lender,omitempty"` // "" until funded
	Principal        uint64    `gorm:"column:principal" json:"principal"`
	InterestRateBps  uint64    `gorm:"column:interest_rate_bps" json:"interest_rate_bps"`
	Deadline         time.Time `gorm:"column:deadline" json:"deadline"`
	CollateralAmount uint64    `gorm:"column:collateral_amount" json:"collateral_amount"`
	CollateralAsset  Asset     `gorm:"embedded;embeddedPrefix:collateral_" json:"collateral_asset"`
	RepaidAmount     uint64    `gorm:"column:repaid_amount" json:"repaid_amount"`
	Status           Status    `gorm:"type:enum('requested','funded','repaid','liquidated');default:'requested';column:status" json:"status"`
	StatusUpdatedAt  time.Time `gorm:"column:status_updated_at" json:"status_updated_at"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }

// TotalOwed is principal plus simple interest, truncating division.
// Recomputed from immutable fields on every call so repeated reads agree.
func (l *Loan) TotalOwed() uint64 {
	return l.Principal + l.Principal*l.InterestRateBps/BpsDenominator
}

// Outstanding is what remains before the loan counts as fully repaid.
func (l *Loan) Outstanding() uint64 {
	return l.TotalOwed() - l.RepaidAmount
}

// PlatformFee splits the principal against the fee rate in force at funding
// time; integer division truncates toward the borrower's share.
func (l *Loan) PlatformFee(feeBps uint64) uint64 {
	return l.Principal * feeBps / BpsDenominator
}
