package mysql

import (
	domain "peerlend-backend/internal/domain/loan"

	"gorm.io/gorm"
)

// Migrate creates the loans and platform_params tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Loan{}, &platformParams{})
}
