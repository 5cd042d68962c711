package domain

import "errors"

var (
	ErrEventNotFound = errors.New("event not found")
)

var (
	ErrNoAvailableSpots = errors.New("no available spots")
)

var (
	ErrValidation = errors.New("validation error")
)
