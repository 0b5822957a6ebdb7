package device

import "time"

// Device represents a networked unit installed at a location
type Device struct {
	ID                uint
	Name              string
	Description       string
	MacAddress        string
	IPAddress         *string
	Type              Type
	Model             *string
	Online            bool
	LastCommunication *time.Time
	LocationID        *uint
	CreatedAt         time.Time
}

// Type is the device kind. Feeders and dataloggers get a specialization row.
type Type string

const (
	TypeFeeder     Type = "feeder"
	TypeDatalogger Type = "datalogger"
)

// Label returns the display name for the type.
func (t Type) Label() string {
	switch t {
	case TypeFeeder:
		return "Alimentador"
	case TypeDatalogger:
		return "Datalogger"
	default:
		return string(t)
	}
}

// Listing is a device row joined with its optional location name.
type Listing struct {
	ID                uint
	Name              string
	Type              Type
	MacAddress        string
	IPAddress         *string
	Online            bool
	LastCommunication *time.Time
	LocationName      *string
}

// FeederListing is a feeder with its device, location and optional config.
// ConfigActive and DailyWeight are nil when the feeder has no config row.
type FeederListing struct {
	ID              uint
	DeviceName      string
	LocationName    *string
	Capacity        float64
	AverageFlowRate float64
	MotorOn         bool
	Online          bool
	ConfigActive    *bool
	DailyWeight     *float64
}

type DataloggerListing struct {
	ID                uint
	DeviceName        string
	LocationName      *string
	SensorCount       int
	ReadingInterval   int
	Online            bool
	LastCommunication *time.Time
}

// Option identifies a feeder or datalogger in a registration form.
type Option struct {
	ID           uint
	DeviceName   string
	LocationName *string
}

type Statistics struct {
	TotalDevices     int64
	TotalFeeders     int64
	TotalDataloggers int64
	OnlineDevices    int64
}
