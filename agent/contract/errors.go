package contract

import "errors"

var (
	ErrEmptyInput           = errors.New("input is empty")
	ErrUnknownCountry       = errors.New("country is not in the capital table")
	ErrModelUnavailable     = errors.New("model unavailable")
	ErrMalformedResponse    = errors.New("model response is malformed")
	ErrStartupConfigMissing = errors.New("startup configuration is missing")
	ErrValidation           = errors.New("validation failed")
)
