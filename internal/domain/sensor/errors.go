package sensor

import "errors"

var (
	ErrDataloggerNotFound = errors.New("datalogger not found")
)
