package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	transferadp "peerlend-backend/internal/adapter/transfer"
	domain "peerlend-backend/internal/domain/loan"
	"peerlend-backend/internal/domain/transfer"
	loanuc "peerlend-backend/internal/usecase/loan"

	"gorm.io/gorm"
)

// vetoDisbursement delegates to the tx-bound ledger but rejects payouts to
// one party, standing in for a transfer backend failing mid-operation.
type vetoDisbursement struct {
	transfer.Adapter
	party string
}

func (v *vetoDisbursement) Payout(ctx context.Context, asset domain.Asset, to string, amount uint64) error {
	if to == v.party {
		return errors.New("transfer backend rejected payout")
	}
	return v.Adapter.Payout(ctx, asset, to, amount)
}

// A transfer failing late in Fund must leave no trace: the fee already paid
// to the treasury and the principal pulled from the lender roll back together
// with the loan record.
func TestFund_FailedDisbursementRollsBackLedgerAndLoan(t *testing.T) {
	db := openUowTestDB(t)
	ledger := transferadp.NewLedger(db)
	if err := ledger.Migrate(); err != nil {
		t.Fatalf("migrate accounts: %v", err)
	}

	const (
		borrower = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
		lender   = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
		treasury = "cccccccccccccccccccccccccccccccc"
	)
	ctx := context.Background()
	native := domain.NativeAsset()

	if err := ledger.Deposit(ctx, native, borrower, 500); err != nil {
		t.Fatalf("seed borrower: %v", err)
	}
	if err := ledger.Deposit(ctx, native, lender, 10000); err != nil {
		t.Fatalf("seed lender: %v", err)
	}

	u := NewGormUoW(db, testDefaults(), func(tx *gorm.DB) transfer.Adapter {
		return &vetoDisbursement{Adapter: transferadp.TxAdapter(tx), party: borrower}
	})
	uc := loanuc.NewUsecase(NewLoanRepository(db), u, nil, nil, treasury)

	dto, err := uc.Request(ctx, loanuc.RequestLoanInput{
		Borrower:           borrower,
		Principal:          10000,
		InterestRateBps:    1000,
		Duration:           24 * time.Hour,
		CollateralAmount:   500,
		CollateralAsset:    native,
		SuppliedCollateral: 500,
	})
	if err != nil {
		t.Fatalf("request: %v", err)
	}

	_, err = uc.Fund(ctx, loanuc.FundLoanInput{LoanID: dto.LoanID, Lender: lender, SuppliedPrincipal: 10000})
	if err == nil {
		t.Fatal("expected fund to fail")
	}
	if !errors.Is(err, transfer.ErrTransferFailed) {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := NewLoanRepository(db).GetByLoanID(ctx, dto.LoanID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != domain.StatusRequested || got.Lender != "" {
		t.Fatalf("loan mutated after failed fund: status=%s lender=%q", got.Status, got.Lender)
	}

	// The lender keeps the principal, the treasury got no fee, escrow holds
	// only the collateral from the request.
	balances := []struct {
		owner string
		want  uint64
	}{
		{lender, 10000},
		{treasury, 0},
		{transferadp.EscrowOwner, 500},
		{borrower, 0},
	}
	for _, b := range balances {
		bal, err := ledger.Balance(ctx, native, b.owner)
		if err != nil {
			t.Fatalf("balance %s: %v", b.owner, err)
		}
		if bal != b.want {
			t.Fatalf("balance %s = %d, want %d", b.owner, bal, b.want)
		}
	}
}
