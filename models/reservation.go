package models

import "time"

const (
	ReservationStatusPending   = "pending"
	ReservationStatusConfirmed = "confirmed"
	ReservationStatusCancelled = "cancelled"
	ReservationStatusCompleted = "completed"
)

type Reservation struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CustomerID uint      `gorm:"not null;index" json:"customer_id"`
	Customer   *Customer `gorm:"foreignKey:CustomerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"customer,omitempty"`
	TableID    *uint     `gorm:"index" json:"table_id"`
	Table      *Table    `gorm:"foreignKey:TableID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"table,omitempty"`
	ReservedAt time.Time `gorm:"not null;index" json:"reserved_at"`
	Guests     int       `gorm:"not null" json:"guests"`
	Status     string    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Comment    *string   `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

func IsValidReservationStatus(s string) bool {
	switch s {
	case ReservationStatusPending, ReservationStatusConfirmed,
		ReservationStatusCancelled, ReservationStatusCompleted:
		return true
	}
	return false
}
