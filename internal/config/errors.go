package config

import "errors"

var (
	// ErrUnknownOption reports an option name no layer recognizes.
	ErrUnknownOption = errors.New("unknown option")

	// ErrInvalidOption reports a value outside an option's domain.
	ErrInvalidOption = errors.New("invalid option value")
)
