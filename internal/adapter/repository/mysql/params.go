package mysql

import (
	"context"
	"errors"
	"time"

	"peerlend-backend/internal/domain/params"

	"gorm.io/gorm"
)

// platformParams is the single-row settings table backing the global
// platform parameters.
type platformParams struct {
	ID              uint64    `gorm:"primaryKey;column:id"`
	PlatformFeeBps  uint64    `gorm:"column:platform_fee_bps"`
	GracePeriodSecs int64     `gorm:"column:grace_period_secs"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (platformParams) TableName() string { return "platform_params" }

const paramsRowID = 1

type ParamsStore struct {
	db       *gorm.DB
	defaults params.Params
}

// NewParamsStore seeds the settings row with the given defaults if absent.
func NewParamsStore(db *gorm.DB, defaults params.Params) (*ParamsStore, error) {
	s := &ParamsStore{db: db, defaults: defaults}
	row := platformParams{
		ID:              paramsRowID,
		PlatformFeeBps:  defaults.PlatformFeeBps,
		GracePeriodSecs: int64(defaults.GracePeriod / time.Second),
	}
	err := db.Where("id = ?", paramsRowID).FirstOrCreate(&row).Error
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (s *ParamsStore) Get(ctx context.Context) (params.Params, error) {
	var row platformParams
	res := s.db.WithContext(ctx).Where("id = ?", paramsRowID).First(&row)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return s.defaults, nil
	}
	if res.Error != nil {
		return params.Params{}, res.Error
	}
	return params.Params{
		PlatformFeeBps: row.PlatformFeeBps,
		GracePeriod:    time.Duration(row.GracePeriodSecs) * time.Second,
	}, nil
}

func (s *ParamsStore) SetPlatformFeeBps(ctx context.Context, bps uint64) error {
	return s.db.WithContext(ctx).Model(&platformParams{}).
		Where("id = ?", paramsRowID).
		Update("platform_fee_bps", bps).Error
}

func (s *ParamsStore) SetGracePeriod(ctx context.Context, d time.Duration) error {
	return s.db.WithContext(ctx).Model(&platformParams{}).
		Where("id = ?", paramsRowID).
		Update("grace_period_secs", int64(d/time.Second)).Error
}
