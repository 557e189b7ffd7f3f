package models

import "time"

const (
	TableStatusFree     = "free"
	TableStatusReserved = "reserved"
	TableStatusOccupied = "occupied"
)

type Table struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Number    int       `gorm:"uniqueIndex;not null" json:"number"`
	Seats     int       `gorm:"not null" json:"seats"`
	Status    string    `gorm:"type:varchar(20);not null;default:'free'" json:"status"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// IsValidTableStatus reports whether s belongs to the canonical table vocabulary.
func IsValidTableStatus(s string) bool {
	switch s {
	case TableStatusFree, TableStatusReserved, TableStatusOccupied:
		return true
	}
	return false
}
