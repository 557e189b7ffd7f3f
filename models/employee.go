package models

type Employee struct {
	ID    uint    `gorm:"primaryKey" json:"id"`
	Name  string  `gorm:"type:varchar(100);not null" json:"name"`
	Role  string  `gorm:"type:varchar(50);not null" json:"role"`
	Phone *string `gorm:"type:varchar(30)" json:"phone,omitempty"`
	Email *string `gorm:"type:varchar(254)" json:"email,omitempty"`
}
