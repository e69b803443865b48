package models

import (
	"time"

	"github.com/google/uuid"
)

// Product categories carried over from the catalog.
const (
	CategorySaree        = "SAREE"
	CategoryLehenga      = "LEHENGA"
	CategoryKurta        = "KURTA"
	CategorySalwarKameez = "SALWAR_KAMEEZ"
)

// Product is a catalog entry. Prices are stored in paise to keep
// arithmetic integral.
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	PricePaise  int64     `gorm:"not null;check:price_paise >= 0" json:"price_paise"`
	Category    string    `gorm:"type:varchar(30);not null;index" json:"category"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}
