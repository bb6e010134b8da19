package apportion

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyPopulation is returned when the distribution has no regions.
	ErrEmptyPopulation = errors.New("population distribution must contain at least one region")
	// ErrNegativePopulation is returned when any region has a population below zero.
	ErrNegativePopulation = errors.New("region populations must be non-negative")
	// ErrNonPositiveSeats is returned when the seat target is zero or negative.
	ErrNonPositiveSeats = errors.New("seats must be a positive integer")
	// ErrDuplicateRegion is returned when two regions share a name.
	ErrDuplicateRegion = errors.New("region names must be unique")
	// ErrZeroTotalPopulation is returned when every region has zero population.
	ErrZeroTotalPopulation = errors.New("total population must be positive")
	// ErrPopulationOverflow is returned when population times seats does not fit in int64.
	ErrPopulationOverflow = errors.New("population and seats are too large to apportion exactly")
	// ErrUnknownMethod is returned when a method name or value is not registered.
	ErrUnknownMethod = errors.New("unknown apportionment method")
)

// InputErrorKind classifies an InvalidInputError.
type InputErrorKind int

const (
	EmptyPopulation InputErrorKind = iota + 1
	NegativePopulation
	NonPositiveSeats
	DuplicateRegion
	ZeroTotalPopulation
	PopulationOverflow
)

var kindSentinels = map[InputErrorKind]error{
	EmptyPopulation:     ErrEmptyPopulation,
	NegativePopulation:  ErrNegativePopulation,
	NonPositiveSeats:    ErrNonPositiveSeats,
	DuplicateRegion:     ErrDuplicateRegion,
	ZeroTotalPopulation: ErrZeroTotalPopulation,
	PopulationOverflow:  ErrPopulationOverflow,
}

func (k InputErrorKind) String() string {
	switch k {
	case EmptyPopulation:
		return "EmptyPopulation"
	case NegativePopulation:
		return "NegativePopulation"
	case NonPositiveSeats:
		return "NonPositiveSeats"
	case DuplicateRegion:
		return "DuplicateRegion"
	case ZeroTotalPopulation:
		return "ZeroTotalPopulation"
	case PopulationOverflow:
		return "PopulationOverflow"
	default:
		return fmt.Sprintf("InputErrorKind(%d)", int(k))
	}
}

// InvalidInputError reports input rejected before any seats were computed.
// It matches the sentinel error of its Kind under errors.Is.
type InvalidInputError struct {
	Kind InputErrorKind
	// Region names the offending region, when there is one.
	Region string
}

func (e *InvalidInputError) Error() string {
	msg := e.Kind.String()
	if sentinel, ok := kindSentinels[e.Kind]; ok {
		msg = sentinel.Error()
	}
	if e.Region != "" {
		return fmt.Sprintf("invalid input: %s (region %q)", msg, e.Region)
	}
	return "invalid input: " + msg
}

// Is reports whether target is the sentinel error for e.Kind.
func (e *InvalidInputError) Is(target error) bool {
	sentinel, ok := kindSentinels[e.Kind]
	return ok && sentinel == target
}

func invalidInput(kind InputErrorKind, region string) error {
	return &InvalidInputError{Kind: kind, Region: region}
}
