// Package memstore is an in-memory loan ledger + params store + unit of work
// for tests: an arena with sequential ids from 0, copy-on-read records, and
// write-back on Save, so an aborted operation leaves the stored record
// untouched exactly like a rolled-back transaction.
package memstore

import (
	"context"
	"sync"
	"time"

	"peerlend-backend/internal/domain/loan"
	"peerlend-backend/internal/domain/params"
	"peerlend-backend/internal/domain/transfer"
	"peerlend-backend/internal/domain/uow"
)

type Store struct {
	mu     sync.Mutex
	loans  []*loan.Loan
	params params.Params

	// Assets is handed to unit-of-work callbacks as the tx-bound adapter.
	Assets transfer.Adapter
}

func New(defaults params.Params) *Store {
	return &Store{params: defaults}
}

// ---- loan.Repository ----

func (s *Store) Create(_ context.Context, l *loan.Loan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l.LoanID = uint64(len(s.loans))
	cp := *l
	s.loans = append(s.loans, &cp)
	return nil
}

func (s *Store) GetByLoanID(_ context.Context, loanID uint64) (*loan.Loan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(loanID)
}

func (s *Store) GetByLoanIDForUpdate(ctx context.Context, loanID uint64) (*loan.Loan, error) {
	return s.GetByLoanID(ctx, loanID)
}

func (s *Store) Save(_ context.Context, l *loan.Loan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l.LoanID >= uint64(len(s.loans)) {
		return loan.ErrNotFound
	}
	cp := *l
	s.loans[l.LoanID] = &cp
	return nil
}

func (s *Store) getLocked(loanID uint64) (*loan.Loan, error) {
	if loanID >= uint64(len(s.loans)) {
		return nil, loan.ErrNotFound
	}
	cp := *s.loans[loanID]
	return &cp, nil
}

// ---- params.Store ----

func (s *Store) Get(_ context.Context) (params.Params, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params, nil
}

func (s *Store) SetPlatformFeeBps(_ context.Context, bps uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params.PlatformFeeBps = bps
	return nil
}

func (s *Store) SetGracePeriod(_ context.Context, d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params.GracePeriod = d
	return nil
}

// ---- uow.UnitOfWork ----

func (s *Store) repos() uow.Repos { return uow.Repos{Loans: s, Params: s, Assets: s.Assets} }

func (s *Store) WithinTx(_ context.Context, fn func(r uow.Repos) error) error {
	return fn(s.repos())
}

func (s *Store) WithinLoanTx(ctx context.Context, loanID uint64, fn func(r uow.Repos, l *loan.Loan) error) error {
	l, err := s.GetByLoanIDForUpdate(ctx, loanID)
	if err != nil {
		return err
	}
	return fn(s.repos(), l)
}
