// Package transfer abstracts moving value of a given asset kind between two
// parties. The lifecycle engine consumes it; it never implements it.
package transfer

import (
	"context"
	"errors"

	"peerlend-backend/internal/domain/loan"
)

var (
	ErrTransferFailed      = errors.New("asset transfer failed")
	ErrInsufficientBalance = errors.New("insufficient balance or allowance")
	ErrUnknownAsset        = errors.New("no adapter for asset kind")
)

// Adapter is the capability set for one or more asset kinds. Escrow moves
// value from a party into contract custody, Payout moves custodied value out
// to a party, PullFrom debits a fungible-token balance the party has made
// available (transfer-from semantics). Native escrow is verified by the
// caller comparing the attached value, not pulled.
type Adapter interface {
	Escrow(ctx context.Context, asset loan.Asset, from string, amount uint64) error
	Payout(ctx context.Context, asset loan.Asset, to string, amount uint64) error
	PullFrom(ctx context.Context, asset loan.Asset, from string, amount uint64) error
}
