package loan

import (
	"context"
	"fmt"
	"time"

	"peerlend-backend/internal/domain/event"
	domain "peerlend-backend/internal/domain/loan"
	"peerlend-backend/internal/domain/oracle"
	"peerlend-backend/internal/domain/transfer"
	"peerlend-backend/internal/domain/uow"
)

// Usecase is the loan lifecycle engine. Every mutating operation runs inside
// the unit of work: validate, compute, perform the external transfer,
// re-validate status, and only then persist. A failed transfer aborts the
// whole call with the record untouched.
type Usecase struct {
	repo     domain.Repository
	uow      uow.UnitOfWork
	events   event.Emitter
	oracle   oracle.PriceOracle // declared dependency, unused by current logic
	treasury string
	now      func() time.Time
}

func NewUsecase(repo domain.Repository, tx uow.UnitOfWork, events event.Emitter, po oracle.PriceOracle, treasury string) *Usecase {
	return &Usecase{
		repo:     repo,
		uow:      tx,
		events:   events,
		oracle:   po,
		treasury: treasury,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// transferErr folds adapter failures into the transfer error kind so callers
// can dispatch on it regardless of the adapter implementation.
func transferErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, transfer.ErrTransferFailed, err)
}

// Request escrows the collateral and appends a new loan in requested state.
// Returns the new sequential loan id.
func (u *Usecase) Request(ctx context.Context, in RequestLoanInput) (*LoanDTO, error) {
	if in.Principal == 0 {
		return nil, domain.ErrInvalidAmount
	}
	if in.InterestRateBps == 0 || in.InterestRateBps >= domain.BpsDenominator {
		return nil, domain.ErrInvalidInterestRate
	}
	if in.Duration <= 0 {
		return nil, domain.ErrInvalidDuration
	}

	var (
		dto *LoanDTO
		ev  event.Event
	)
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		// Escrow first: the record is only created once the collateral is
		// in custody.
		if in.CollateralAsset.IsNative() {
			if in.SuppliedCollateral != in.CollateralAmount {
				return domain.ErrCollateralMismatch
			}
			if err := r.Assets.Escrow(ctx, in.CollateralAsset, in.Borrower, in.CollateralAmount); err != nil {
				return transferErr("escrow collateral", err)
			}
		} else {
			if err := r.Assets.PullFrom(ctx, in.CollateralAsset, in.Borrower, in.CollateralAmount); err != nil {
				return transferErr("pull collateral", err)
			}
		}

		now := u.now()
		l := &domain.Loan{
			Borrower:         in.Borrower,
			Principal:        in.Principal,
			InterestRateBps:  in.InterestRateBps,
			Deadline:         now.Add(in.Duration),
			CollateralAmount: in.CollateralAmount,
			CollateralAsset:  in.CollateralAsset,
			Status:           domain.StatusRequested,
			StatusUpdatedAt:  now,
		}
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
		ev = event.Requested(l, now)
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.emit(ctx, ev)
	return dto, nil
}

// Fund pays out principal minus the platform fee to the borrower, the fee to
// the treasury, and records the lender. The fee rate is read at funding time,
// so later fee changes never touch already-funded loans.
func (u *Usecase) Fund(ctx context.Context, in FundLoanInput) (*LoanDTO, error) {
	var (
		dto *LoanDTO
		ev  event.Event
	)
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domain.Loan) error {
		if l.Status != domain.StatusRequested {
			return domain.ErrAlreadyFunded
		}
		if in.SuppliedPrincipal != l.Principal {
			return domain.ErrAmountMismatch
		}

		p, err := r.Params.Get(ctx)
		if err != nil {
			return err
		}
		fee := l.PlatformFee(p.PlatformFeeBps)

		native := domain.NativeAsset()
		if err := r.Assets.Escrow(ctx, native, in.Lender, in.SuppliedPrincipal); err != nil {
			return transferErr("escrow principal", err)
		}
		if fee > 0 {
			if err := r.Assets.Payout(ctx, native, u.treasury, fee); err != nil {
				return transferErr("pay platform fee", err)
			}
		}
		if err := r.Assets.Payout(ctx, native, l.Borrower, l.Principal-fee); err != nil {
			return transferErr("disburse principal", err)
		}

		// Transfers are external; re-check nothing raced us before
		// finalizing the mutation.
		cur, err := r.Loans.GetByLoanIDForUpdate(ctx, in.LoanID)
		if err != nil {
			return err
		}
		if cur.Status != domain.StatusRequested {
			return domain.ErrConflict
		}

		now := u.now()
		l.Lender = in.Lender
		l.Status = domain.StatusFunded
		l.StatusUpdatedAt = now
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
		ev = event.Funded(l, now)
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.emit(ctx, ev)
	return dto, nil
}

// Repay moves one installment to the lender. Overpayment is rejected, never
// refunded as change. Reaching the total owed closes the loan and releases
// the full collateral back to the borrower.
func (u *Usecase) Repay(ctx context.Context, in RepayLoanInput) (*LoanDTO, error) {
	if in.Amount == 0 {
		return nil, domain.ErrInvalidAmount
	}

	var (
		dto *LoanDTO
		ev  event.Event
	)
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domain.Loan) error {
		if l.Status != domain.StatusFunded {
			return domain.ErrLoanNotActive
		}
		if l.Borrower != in.Borrower {
			return domain.ErrNotBorrower
		}

		p, err := r.Params.Get(ctx)
		if err != nil {
			return err
		}
		now := u.now()
		if now.After(l.Deadline.Add(p.GracePeriod)) {
			return domain.ErrDeadlinePassed
		}
		if in.Amount > l.Outstanding() {
			return domain.ErrRepaymentExceedsOwed
		}

		native := domain.NativeAsset()
		if err := r.Assets.Escrow(ctx, native, in.Borrower, in.Amount); err != nil {
			return transferErr("collect repayment", err)
		}
		if err := r.Assets.Payout(ctx, native, l.Lender, in.Amount); err != nil {
			return transferErr("forward repayment", err)
		}

		l.RepaidAmount += in.Amount
		if l.RepaidAmount >= l.TotalOwed() {
			// Full repayment: release the collateral exactly once, through
			// the adapter matching its asset kind.
			if err := r.Assets.Payout(ctx, l.CollateralAsset, l.Borrower, l.CollateralAmount); err != nil {
				return transferErr("release collateral", err)
			}
			l.Status = domain.StatusRepaid
			l.StatusUpdatedAt = now
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
		ev = event.Repaid(l, in.Amount, now)
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.emit(ctx, ev)
	return dto, nil
}

// Liquidate forfeits the full collateral to the lender once the grace period
// has elapsed. Partial prior repayment earns no collateral credit.
func (u *Usecase) Liquidate(ctx context.Context, in LiquidateLoanInput) (*LoanDTO, error) {
	var (
		dto *LoanDTO
		ev  event.Event
	)
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domain.Loan) error {
		if l.Status != domain.StatusFunded {
			return domain.ErrLoanNotActive
		}
		if l.Lender != in.Lender {
			return domain.ErrNotLender
		}

		p, err := r.Params.Get(ctx)
		if err != nil {
			return err
		}
		now := u.now()
		if !now.After(l.Deadline.Add(p.GracePeriod)) {
			return domain.ErrGracePeriodNotExpired
		}

		if err := r.Assets.Payout(ctx, l.CollateralAsset, l.Lender, l.CollateralAmount); err != nil {
			return transferErr("seize collateral", err)
		}

		l.Status = domain.StatusLiquidated
		l.StatusUpdatedAt = now
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
		ev = event.Liquidated(l, now)
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.emit(ctx, ev)
	return dto, nil
}

// Get returns the full current record, terminal loans included.
func (u *Usecase) Get(ctx context.Context, loanID uint64) (*LoanDTO, error) {
	l, err := u.repo.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	return toDTO(l), nil
}

func (u *Usecase) emit(ctx context.Context, ev event.Event) {
	if u.events != nil {
		u.events.Emit(ctx, ev)
	}
}
