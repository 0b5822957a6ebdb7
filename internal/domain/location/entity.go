package location

import "time"

// Location is a physical site (barn, pen, shed) grouping devices.
type Location struct {
	ID          uint
	Name        string
	Description string
	Type        string
	CreatedAt   time.Time
}
