package threshold

import "errors"

var (
	ErrLimitNotFound    = errors.New("temperature limit not found")
	ErrLocationNotFound = errors.New("location not found")
)
