package sensor

import "time"

// Sensor is a measurement point attached to a datalogger.
type Sensor struct {
	ID           uint
	DataloggerID uint
	Name         string
	Type         string
	Unit         string
	Position     string
	Address      *string
}

type Listing struct {
	ID             uint
	Name           string
	Type           string
	Position       string
	DataloggerName string
}

// Reading is a sensor reading joined with its location and datalogger.
type Reading struct {
	Location   string
	Position   string
	Value      float64
	Timestamp  time.Time
	Datalogger string
}

// ReadingFilter selects readings newer than Since. Location and Position are
// exact matches applied only when non-empty. Limit <= 0 means no cap.
type ReadingFilter struct {
	Since     time.Time
	Location  string
	Position  string
	Limit     int
	Ascending bool
}
