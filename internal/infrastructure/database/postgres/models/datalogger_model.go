package models

// DataloggerModel is the datalogger specialization of a device.
type DataloggerModel struct {
	ID              uint         `gorm:"primaryKey"`
	DeviceID        uint         `gorm:"not null;uniqueIndex"`
	Device          *DeviceModel `gorm:"foreignKey:DeviceID;constraint:OnDelete:CASCADE"`
	SensorCount     int          `gorm:"not null;default:0"`
	ReadingInterval int          `gorm:"not null;default:60"`
}

func (DataloggerModel) TableName() string {
	return "dataloggers"
}
