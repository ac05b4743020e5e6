package admin

import (
	"context"
	"errors"
	"time"

	"peerlend-backend/internal/domain/loan"
	"peerlend-backend/internal/domain/params"
)

var ErrNotAdmin = errors.New("caller is not the platform administrator")

// IsAdminFn is the injected administrator identity check.
type IsAdminFn func(caller string) bool

// Usecase is the administration surface: owner-gated mutation of the global
// platform parameters. Grace period changes apply retroactively to
// outstanding loans; fee changes apply only to loans funded afterwards.
type Usecase struct {
	store   params.Store
	isAdmin IsAdminFn
}

func NewUsecase(store params.Store, isAdmin IsAdminFn) *Usecase {
	return &Usecase{store: store, isAdmin: isAdmin}
}

func (u *Usecase) SetPlatformFee(ctx context.Context, caller string, feeBps uint64) error {
	if !u.isAdmin(caller) {
		return ErrNotAdmin
	}
	if feeBps >= loan.BpsDenominator {
		return params.ErrInvalidFeeRate
	}
	return u.store.SetPlatformFeeBps(ctx, feeBps)
}

// SetGracePeriod has no upper bound on purpose; a negative duration is
// rejected as nonsense.
func (u *Usecase) SetGracePeriod(ctx context.Context, caller string, d time.Duration) error {
	if !u.isAdmin(caller) {
		return ErrNotAdmin
	}
	if d < 0 {
		return loan.ErrInvalidDuration
	}
	return u.store.SetGracePeriod(ctx, d)
}

func (u *Usecase) Get(ctx context.Context) (params.Params, error) {
	return u.store.Get(ctx)
}
