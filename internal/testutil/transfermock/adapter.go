// Package transfermock is a recording, function-backed asset transfer
// adapter. Unset function fields succeed; every call is recorded so tests
// can assert exactly which value moved where.
package transfermock

import (
	"context"
	"sync"

	"peerlend-backend/internal/domain/loan"
	"peerlend-backend/internal/domain/transfer"
)

var _ transfer.Adapter = (*Adapter)(nil)

type Call struct {
	Op     string // "escrow", "payout", "pull_from"
	Asset  loan.Asset
	Party  string
	Amount uint64
}

type Adapter struct {
	EscrowFn   func(ctx context.Context, asset loan.Asset, from string, amount uint64) error
	PayoutFn   func(ctx context.Context, asset loan.Asset, to string, amount uint64) error
	PullFromFn func(ctx context.Context, asset loan.Asset, from string, amount uint64) error

	mu    sync.Mutex
	Calls []Call
}

func (m *Adapter) record(op string, asset loan.Asset, party string, amount uint64) {
	m.mu.Lock()
	m.Calls = append(m.Calls, Call{Op: op, Asset: asset, Party: party, Amount: amount})
	m.mu.Unlock()
}

func (m *Adapter) Escrow(ctx context.Context, asset loan.Asset, from string, amount uint64) error {
	m.record("escrow", asset, from, amount)
	if m.EscrowFn != nil {
		return m.EscrowFn(ctx, asset, from, amount)
	}
	return nil
}

func (m *Adapter) Payout(ctx context.Context, asset loan.Asset, to string, amount uint64) error {
	m.record("payout", asset, to, amount)
	if m.PayoutFn != nil {
		return m.PayoutFn(ctx, asset, to, amount)
	}
	return nil
}

func (m *Adapter) PullFrom(ctx context.Context, asset loan.Asset, from string, amount uint64) error {
	m.record("pull_from", asset, from, amount)
	if m.PullFromFn != nil {
		return m.PullFromFn(ctx, asset, from, amount)
	}
	return nil
}

// Payouts returns the recorded payout calls to the given party.
func (m *Adapter) Payouts(party string) []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Call
	for _, c := range m.Calls {
		if c.Op == "payout" && c.Party == party {
			out = append(out, c)
		}
	}
	return out
}

func (m *Adapter) Reset() {
	m.mu.Lock()
	m.Calls = nil
	m.mu.Unlock()
}
