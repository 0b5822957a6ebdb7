package threshold

import "time"

// TemperatureLimit bounds the readings of one sensor position at a location.
type TemperatureLimit struct {
	ID         uint
	LocationID uint
	SensorType string
	Maximum    float64
	Minimum    float64
	UpdatedAt  time.Time
}

type Listing struct {
	ID           uint
	LocationName string
	SensorType   string
	Maximum      float64
	Minimum      float64
}
