package models

import "time"

// TemperatureLimitModel is keyed by (location_id, sensor_type) for upserts.
type TemperatureLimitModel struct {
	ID         uint           `gorm:"primaryKey"`
	LocationID uint           `gorm:"not null;uniqueIndex:idx_limit_location_sensor"`
	Location   *LocationModel `gorm:"foreignKey:LocationID;constraint:OnDelete:CASCADE"`
	SensorType string         `gorm:"type:varchar(50);not null;uniqueIndex:idx_limit_location_sensor"`
	Maximum    float64        `gorm:"not null"`
	Minimum    float64        `gorm:"not null"`
	UpdatedAt  time.Time      `gorm:"not null"`
}

func (TemperatureLimitModel) TableName() string {
	return "temperature_limits"
}
