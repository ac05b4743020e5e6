package mysql

import (
	"context"
	"testing"
	"time"

	"peerlend-backend/internal/domain/params"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openParamsTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&platformParams{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func TestParamsStore_SeedsDefaults(t *testing.T) {
	db := openParamsTestDB(t)
	defaults := params.Params{PlatformFeeBps: 50, GracePeriod: 72 * time.Hour}
	store, err := NewParamsStore(db, defaults)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	got, err := store.Get(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != defaults {
		t.Fatalf("seeded params = %+v, want %+v", got, defaults)
	}
}

func TestParamsStore_SeedDoesNotClobberExistingRow(t *testing.T) {
	db := openParamsTestDB(t)
	if _, err := NewParamsStore(db, params.Params{PlatformFeeBps: 50, GracePeriod: time.Hour}); err != nil {
		t.Fatalf("first store: %v", err)
	}
	// simulate a restart with different defaults
	store, err := NewParamsStore(db, params.Params{PlatformFeeBps: 999, GracePeriod: 9 * time.Hour})
	if err != nil {
		t.Fatalf("second store: %v", err)
	}
	got, _ := store.Get(context.Background())
	if got.PlatformFeeBps != 50 || got.GracePeriod != time.Hour {
		t.Fatalf("restart clobbered stored params: %+v", got)
	}
}

func TestParamsStore_SetAndGet(t *testing.T) {
	db := openParamsTestDB(t)
	store, err := NewParamsStore(db, params.Params{PlatformFeeBps: 50, GracePeriod: time.Hour})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()
	if err := store.SetPlatformFeeBps(ctx, 200); err != nil {
		t.Fatalf("set fee: %v", err)
	}
	if err := store.SetGracePeriod(ctx, 48*time.Hour); err != nil {
		t.Fatalf("set grace: %v", err)
	}
	got, _ := store.Get(ctx)
	if got.PlatformFeeBps != 200 || got.GracePeriod != 48*time.Hour {
		t.Fatalf("params = %+v", got)
	}
}
