package location

import "errors"

var (
	ErrLocationAlreadyExists = errors.New("location already exists")
)
