package domain

import "errors"

var (
	// Common domain errors
	ErrNotAuthenticated  = errors.New("not authenticated")
	ErrInvalidAuthScheme = errors.New("invalid authentication scheme")
	ErrInvalidAPIKey     = errors.New("invalid api key")
	ErrInvalidArgument   = errors.New("invalid argument")
)
