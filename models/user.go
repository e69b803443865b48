package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account created on first Google sign-in. The (provider,
// provider_id) pair identifies the upstream identity; email is unique on its own.
type User struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email      string    `gorm:"uniqueIndex;not null" json:"email"`
	Name       string    `json:"name"`
	Provider   string    `gorm:"not null;uniqueIndex:idx_provider_identity" json:"provider"`
	ProviderID string    `gorm:"not null;uniqueIndex:idx_provider_identity" json:"-"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Migrate function for auto migration
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&User{}, &Product{}, &Cart{}, &CartItem{}, &Order{}, &OrderItem{})
}
