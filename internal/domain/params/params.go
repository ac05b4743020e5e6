// Package params holds the global platform parameters shared across all
// loans. The engine reads them at call time, never caches: a grace-period
// change applies retroactively to every outstanding loan, and a fee change
// applies to every loan funded after it.
package params

import (
	"context"
	"errors"
	"time"
)

var ErrInvalidFeeRate = errors.New("platform fee must be below 10000 bps")

type Params struct {
	PlatformFeeBps uint64
	GracePeriod    time.Duration
}

type Store interface {
	Get(ctx context.Context) (Params, error)
	SetPlatformFeeBps(ctx context.Context, bps uint64) error
	SetGracePeriod(ctx context.Context, d time.Duration) error
}
