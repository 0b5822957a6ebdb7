package models

import "time"

type AlertModel struct {
	ID        uint      `gorm:"primaryKey"`
	Type      string    `gorm:"type:varchar(50);not null"`
	Message   string    `gorm:"type:text;not null"`
	Timestamp time.Time `gorm:"not null;index"`
	Severity  string    `gorm:"type:varchar(20);not null"`
	Resolved  bool      `gorm:"not null;default:false;index"`
}

func (AlertModel) TableName() string {
	return "alerts"
}
