package models

import (
	"time"

	"gorm.io/datatypes"
)

// FeederModel is the feeder specialization of a device.
type FeederModel struct {
	ID              uint         `gorm:"primaryKey"`
	DeviceID        uint         `gorm:"not null;uniqueIndex"`
	Device          *DeviceModel `gorm:"foreignKey:DeviceID;constraint:OnDelete:CASCADE"`
	Capacity        float64      `gorm:"not null;default:0"`
	AverageFlowRate float64      `gorm:"not null;default:0"`
	MotorOn         bool         `gorm:"not null;default:false"`
}

func (FeederModel) TableName() string {
	return "feeders"
}

// FeederConfigModel holds the feeding schedule. feeder_id is the upsert key.
type FeederConfigModel struct {
	ID          uint            `gorm:"primaryKey"`
	FeederID    uint            `gorm:"not null;uniqueIndex"`
	Feeder      *FeederModel    `gorm:"foreignKey:FeederID;constraint:OnDelete:CASCADE"`
	StartTime   *datatypes.Time `gorm:"column:start_time"`
	EndTime     *datatypes.Time `gorm:"column:end_time"`
	Interval    *int            `gorm:"column:interval_minutes"`
	DailyWeight *float64        `gorm:"column:daily_weight"`
	Portions    *int            `gorm:"column:portions"`
	Active      bool            `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

func (FeederConfigModel) TableName() string {
	return "feeder_configs"
}

// FeederCalibrationModel stores calibration parameters as an opaque JSON document.
type FeederCalibrationModel struct {
	ID           uint           `gorm:"primaryKey"`
	FeederID     uint           `gorm:"not null;uniqueIndex"`
	Feeder       *FeederModel   `gorm:"foreignKey:FeederID;constraint:OnDelete:CASCADE"`
	Parameters   datatypes.JSON `gorm:"not null"`
	CalibratedAt *time.Time
}

func (FeederCalibrationModel) TableName() string {
	return "feeder_calibrations"
}
