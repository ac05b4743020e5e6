// Package transfer provides the book-entry asset ledger backing the transfer
// adapter: one balance row per (owner, asset), with the contract's custody
// held under a reserved escrow owner.
package transfer

import (
	"context"
	"fmt"

	domain "peerlend-backend/internal/domain/loan"
	"peerlend-backend/internal/domain/transfer"

	"gorm.io/gorm"
)

// EscrowOwner is the reserved account holding custodied funds.
const EscrowOwner = "escrow"

type account struct {
	ID      uint64 `gorm:"primaryKey;column:id"`
	Owner   string `gorm:"size:32;column:owner;uniqueIndex:ux_accounts_owner_asset"`
	Asset   string `gorm:"size:48;column:asset;uniqueIndex:ux_accounts_owner_asset"`
	Balance uint64 `gorm:"column:balance"`
}

func (account) TableName() string { return "accounts" }

type Ledger struct{ db *gorm.DB }

func NewLedger(db *gorm.DB) *Ledger { return &Ledger{db: db} }

// TxAdapter binds a Ledger to the given transaction handle; used as the
// unit-of-work asset factory so movements enroll in the caller's transaction.
func TxAdapter(tx *gorm.DB) transfer.Adapter { return NewLedger(tx) }

// Migrate creates the accounts table.
func (l *Ledger) Migrate() error { return l.db.AutoMigrate(&account{}) }

func (l *Ledger) Escrow(ctx context.Context, asset domain.Asset, from string, amount uint64) error {
	return l.move(ctx, asset, from, EscrowOwner, amount)
}

func (l *Ledger) Payout(ctx context.Context, asset domain.Asset, to string, amount uint64) error {
	return l.move(ctx, asset, EscrowOwner, to, amount)
}

func (l *Ledger) PullFrom(ctx context.Context, asset domain.Asset, from string, amount uint64) error {
	return l.move(ctx, asset, from, EscrowOwner, amount)
}

// Deposit credits an owner out of thin air. Seeding and tests only.
func (l *Ledger) Deposit(ctx context.Context, asset domain.Asset, owner string, amount uint64) error {
	return l.credit(l.db.WithContext(ctx), asset.Key(), owner, amount)
}

func (l *Ledger) Balance(ctx context.Context, asset domain.Asset, owner string) (uint64, error) {
	var out account
	res := l.db.WithContext(ctx).Where("owner = ? AND asset = ?", owner, asset.Key()).First(&out)
	if res.Error == gorm.ErrRecordNotFound {
		return 0, nil
	}
	if res.Error != nil {
		return 0, res.Error
	}
	return out.Balance, nil
}

// move debits from and credits to in one transaction. The guarded debit
// keeps balances from going negative under concurrent movements.
func (l *Ledger) move(ctx context.Context, asset domain.Asset, from, to string, amount uint64) error {
	if amount == 0 {
		return nil
	}
	key := asset.Key()
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&account{}).
			Where("owner = ? AND asset = ? AND balance >= ?", from, key, amount).
			Update("balance", gorm.Expr("balance - ?", amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: %s holds less than %d of %s", transfer.ErrInsufficientBalance, from, amount, key)
		}
		return l.credit(tx, key, to, amount)
	})
}

func (l *Ledger) credit(tx *gorm.DB, assetKey, owner string, amount uint64) error {
	acct := account{Owner: owner, Asset: assetKey}
	if err := tx.Where("owner = ? AND asset = ?", owner, assetKey).FirstOrCreate(&acct).Error; err != nil {
		return err
	}
	return tx.Model(&account{}).
		Where("owner = ? AND asset = ?", owner, assetKey).
		Update("balance", gorm.Expr("balance + ?", amount)).Error
}
