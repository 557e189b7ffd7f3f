package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill.Total is derived from the order's items and is never written from user input.
type Bill struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	OrderID       uint            `gorm:"not null;index" json:"order_id"`
	Order         *Order          `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"order,omitempty"`
	IssuedAt      time.Time       `gorm:"autoCreateTime;not null;index" json:"issued_at"`
	Total         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	Paid          bool            `gorm:"not null;default:false" json:"paid"`
	PaymentMethod *string         `gorm:"type:varchar(30)" json:"payment_method,omitempty"`
	UpdatedAt     time.Time       `gorm:"not null" json:"updated_at"`
}
