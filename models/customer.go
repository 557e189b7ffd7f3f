package models

import (
	"time"
)

type Customer struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(100);not null" json:"name"`
	Phone        string    `gorm:"type:varchar(16);uniqueIndex;not null" json:"phone"`
	Email        *string   `gorm:"type:varchar(254)" json:"email,omitempty"`
	RegisteredAt time.Time `gorm:"autoCreateTime;not null" json:"registered_at"`
}
