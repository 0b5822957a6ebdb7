package feeder

import "errors"

var (
	ErrFeederNotFound = errors.New("feeder not found")
)
