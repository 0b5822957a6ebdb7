package models

import "time"

// DeviceModel represents the database model for Devices.
type DeviceModel struct {
	ID                uint           `gorm:"primaryKey"`
	Name              string         `gorm:"type:varchar(100);not null"`
	Description       string         `gorm:"type:text"`
	MacAddress        string         `gorm:"type:varchar(17);not null;uniqueIndex"`
	IPAddress         *string        `gorm:"type:varchar(45)"`
	Type              string         `gorm:"type:varchar(50);not null;index"`
	Model             *string        `gorm:"type:varchar(100)"`
	Online            bool           `gorm:"not null;default:false"`
	LastCommunication *time.Time     `gorm:"type:timestamp"`
	LocationID        *uint          `gorm:"index"`
	Location          *LocationModel `gorm:"foreignKey:LocationID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	CreatedAt         time.Time      `gorm:"not null"`
}

func (DeviceModel) TableName() string {
	return "devices"
}
