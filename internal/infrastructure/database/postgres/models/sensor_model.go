package models

import "time"

type SensorModel struct {
	ID           uint             `gorm:"primaryKey"`
	DataloggerID uint             `gorm:"not null;index"`
	Datalogger   *DataloggerModel `gorm:"foreignKey:DataloggerID;constraint:OnDelete:CASCADE"`
	Name         string           `gorm:"type:varchar(100);not null"`
	Type         string           `gorm:"type:varchar(50);not null"`
	Unit         string           `gorm:"type:varchar(20);not null"`
	Position     string           `gorm:"type:varchar(50);not null;index"`
	Address      *string          `gorm:"type:varchar(100)"`
}

func (SensorModel) TableName() string {
	return "sensors"
}

// SensorReadingModel rows are appended by the ingestion pipeline and never updated here.
type SensorReadingModel struct {
	ID        uint         `gorm:"primaryKey"`
	SensorID  uint         `gorm:"not null;index"`
	Sensor    *SensorModel `gorm:"foreignKey:SensorID;constraint:OnDelete:CASCADE"`
	Value     float64      `gorm:"not null"`
	Timestamp time.Time    `gorm:"not null;index"`
}

func (SensorReadingModel) TableName() string {
	return "sensor_readings"
}
