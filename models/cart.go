package models

import (
	"time"

	"github.com/google/uuid"
)

// Cart is the single server-side cart for a user, created lazily on the
// first add-to-cart call.
type Cart struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
}

// CartItem is one line of a cart. The (cart_id, product_id) unique index is
// what makes the quantity-merge upsert safe under concurrent adds.
type CartItem struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CartID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_product" json:"cart_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_product" json:"product_id"`
	Quantity  int64     `gorm:"not null;check:quantity >= 1" json:"quantity"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// CartView is the GET /api/cart response: the cart rows plus the totals the
// storefront renders (GST at 18%, rounded to the nearest paisa).
type CartView struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
	Items         []CartItem `json:"items"`
	SubtotalPaise int64      `json:"subtotal_paise"`
	GSTPaise      int64      `json:"gst_paise"`
	TotalPaise    int64      `json:"total_paise"`
}
