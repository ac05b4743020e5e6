// Package oracle declares the price feed dependency. Current decision logic
// does not consult it; it is injected so collateral-ratio checks can land
// without rewiring.
package oracle

import (
	"context"

	"peerlend-backend/internal/domain/loan"
)

// PriceOracle quotes an asset in platform minor units.
type PriceOracle interface {
	Price(ctx context.Context, asset loan.Asset) (uint64, error)
}
