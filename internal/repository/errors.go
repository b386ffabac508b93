package repository

import "errors"

// ErrNotFound is returned when a reservation id does not exist.
var ErrNotFound = errors.New("reservation not found")
