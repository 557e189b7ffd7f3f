package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"not null;index" json:"order_id"`
	// Omitting Order field from JSON to avoid recursive nesting
	Order      *Order          `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	MenuItemID *uint           `gorm:"index" json:"menu_item_id"`
	MenuItem   *MenuItem       `gorm:"foreignKey:MenuItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"menu_item,omitempty"`
	Quantity   int             `gorm:"not null;default:1" json:"quantity"`
	Price      decimal.Decimal `gorm:"type:decimal(7,2);not null" json:"price"`
	CreatedAt  time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"not null" json:"updated_at"`
}

// Subtotal uses the stored price snapshot.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
