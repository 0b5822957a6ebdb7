package device

import "errors"

var (
	ErrDeviceAlreadyExists = errors.New("device with this MAC address already exists")
	ErrLocationNotFound    = errors.New("location not found")
)
