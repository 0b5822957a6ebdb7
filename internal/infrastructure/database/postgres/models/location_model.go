package models

import "time"

// LocationModel represents the database model for Locations.
type LocationModel struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string    `gorm:"type:text"`
	Type        string    `gorm:"type:varchar(50)"`
	CreatedAt   time.Time `gorm:"not null"`
}

func (LocationModel) TableName() string {
	return "locations"
}
