package feeder

import "time"

// Config is the feeding schedule of a feeder. There is at most one per feeder.
// StartTime and EndTime are offsets from midnight.
type Config struct {
	ID          uint
	FeederID    uint
	StartTime   *time.Duration
	EndTime     *time.Duration
	Interval    *int
	DailyWeight *float64
	Portions    *int
	Active      bool
	UpdatedAt   time.Time
}

type ConfigListing struct {
	ID          uint
	DeviceName  string
	StartTime   *time.Duration
	EndTime     *time.Duration
	DailyWeight *float64
	Active      bool
}
