package main

import (
	"errors"

	"github.com/eugenenazirov/apportionment/internal/apportion"
	"github.com/eugenenazirov/apportionment/internal/population"
)

// Process exit codes.
const (
	ExitSuccess       = 0 // every report matched its seat target
	ExitErrorGeneric  = 1
	ExitErrorMismatch = 3 // at least one allocation missed its seat target
	ExitErrorConfig   = 4 // bad flags, configuration, population table or seats
)

func exitCodeFor(err error) int {
	var inputErr *apportion.InvalidInputError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &inputErr),
		errors.Is(err, apportion.ErrUnknownMethod),
		errors.Is(err, population.ErrInvalidTable):
		return ExitErrorConfig
	default:
		return ExitErrorGeneric
	}
}
