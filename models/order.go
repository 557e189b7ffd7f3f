package models

import (
	"fmt"
	"time"
)

const OrderStatusOpen = "open"

type Order struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	CustomerID    *uint        `gorm:"index" json:"customer_id"`
	Customer      *Customer    `gorm:"foreignKey:CustomerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"customer,omitempty"`
	TableID       *uint        `gorm:"index" json:"table_id"`
	Table         *Table       `gorm:"foreignKey:TableID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"table,omitempty"`
	EmployeeID    *uint        `gorm:"index" json:"employee_id"`
	Employee      *Employee    `gorm:"foreignKey:EmployeeID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"employee,omitempty"`
	ReservationID *uint        `gorm:"index" json:"reservation_id"`
	Reservation   *Reservation `gorm:"foreignKey:ReservationID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"reservation,omitempty"`
	Status        string       `gorm:"type:varchar(30);not null;default:'open'" json:"status"`
	CreatedAt     time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"not null" json:"updated_at"`
	Items         []OrderItem  `gorm:"foreignKey:OrderID" json:"items"`
}

// Label is the human readable order reference used on receipts.
func (o *Order) Label() string {
	return fmt.Sprintf("Order #%d", o.ID)
}
