package apportion

import (
	"errors"
	"maps"
	"testing"
)

func threeRegions() Distribution {
	return Distribution{
		{Name: "A", Population: 100000},
		{Name: "B", Population: 50000},
		{Name: "C", Population: 25000},
	}
}

func TestLargestRemainder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		dist  Distribution
		seats int
		want  map[string]int
	}{
		{
			name:  "WholeQuotas",
			dist:  threeRegions(),
			seats: 7,
			want:  map[string]int{"A": 4, "B": 2, "C": 1},
		},
		{
			name:  "RemainderSeatGoesToLargestFraction",
			dist:  Distribution{{Name: "A", Population: 5}, {Name: "B", Population: 3}, {Name: "C", Population: 2}},
			seats: 4,
			want:  map[string]int{"A": 2, "B": 1, "C": 1},
		},
		{
			name:  "EqualRemaindersKeepInputOrder",
			dist:  Distribution{{Name: "A", Population: 1}, {Name: "B", Population: 1}},
			seats: 1,
			want:  map[string]int{"A": 1, "B": 0},
		},
		{
			name:  "EqualRemaindersKeepInputOrderReversed",
			dist:  Distribution{{Name: "B", Population: 1}, {Name: "A", Population: 1}},
			seats: 1,
			want:  map[string]int{"A": 0, "B": 1},
		},
		{
			name:  "ZeroPopulationRegionGetsNothing",
			dist:  Distribution{{Name: "A", Population: 10}, {Name: "Z", Population: 0}},
			seats: 3,
			want:  map[string]int{"A": 3, "Z": 0},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := LargestRemainder{}.Apportion(tc.dist, tc.seats)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !maps.Equal(got.Seats, tc.want) {
				t.Fatalf("unexpected result: got %v want %v", got.Seats, tc.want)
			}
			if got.Total() != tc.seats || got.Inexact {
				t.Fatalf("expected exact total %d, got %d (inexact=%v)", tc.seats, got.Total(), got.Inexact)
			}
			if got.Method != MethodLargestRemainder {
				t.Fatalf("expected method %s, got %s", MethodLargestRemainder, got.Method)
			}
		})
	}
}

func TestLargestRemainderDivisorIsStandardDivisor(t *testing.T) {
	t.Parallel()

	got, err := LargestRemainder{}.Apportion(threeRegions(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Divisor != 25000 {
		t.Fatalf("expected divisor 25000, got %v", got.Divisor)
	}
}

func TestFixedDivisorFloor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		dist        Distribution
		seats       int
		floor       int64
		want        map[string]int
		wantDivisor float64
		wantInexact bool
	}{
		{
			name:        "StartingDivisorMatches",
			dist:        threeRegions(),
			seats:       7,
			floor:       0,
			want:        map[string]int{"A": 4, "B": 2, "C": 1},
			wantDivisor: 25000,
		},
		{
			name:        "SearchWalksDivisorDown",
			dist:        Distribution{{Name: "A", Population: 60000}, {Name: "B", Population: 40000}},
			seats:       3,
			floor:       0,
			want:        map[string]int{"A": 2, "B": 1},
			wantDivisor: 30000,
		},
		{
			name:        "FloorStopsSearchBeforeMatch",
			dist:        Distribution{{Name: "A", Population: 60000}, {Name: "B", Population: 40000}},
			seats:       3,
			floor:       DefaultDivisorFloor,
			want:        map[string]int{"A": 1, "B": 1},
			wantDivisor: 30001,
			wantInexact: true,
		},
		{
			name:        "StartAtOrBelowFloorKeepsOneSeatEach",
			dist:        threeRegions(),
			seats:       7,
			floor:       DefaultDivisorFloor,
			want:        map[string]int{"A": 1, "B": 1, "C": 1},
			wantDivisor: 0,
			wantInexact: true,
		},
		{
			name:        "MinimumOneSeat",
			dist:        Distribution{{Name: "A", Population: 1000}, {Name: "B", Population: 1000}, {Name: "Tiny", Population: 1}},
			seats:       5,
			floor:       0,
			want:        map[string]int{"A": 2, "B": 2, "Tiny": 1},
			wantDivisor: 400,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := FixedDivisorFloor{Floor: tc.floor}.Apportion(tc.dist, tc.seats)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !maps.Equal(got.Seats, tc.want) {
				t.Fatalf("unexpected result: got %v want %v", got.Seats, tc.want)
			}
			if got.Divisor != tc.wantDivisor {
				t.Fatalf("expected divisor %v, got %v", tc.wantDivisor, got.Divisor)
			}
			if got.Inexact != tc.wantInexact {
				t.Fatalf("expected inexact=%v, got %v", tc.wantInexact, got.Inexact)
			}
			if got.Divisor != 0 && got.Divisor <= float64(tc.floor) {
				t.Fatalf("divisor %v went to or below floor %d", got.Divisor, tc.floor)
			}
		})
	}
}

func TestRoundedDivisor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		dist        Distribution
		seats       int
		want        map[string]int
		wantDivisor float64
	}{
		{
			name:        "WholeQuotas",
			dist:        threeRegions(),
			seats:       7,
			want:        map[string]int{"A": 4, "B": 2, "C": 1},
			wantDivisor: 25000,
		},
		{
			name:        "RoundsHalfUp",
			dist:        Distribution{{Name: "A", Population: 55000}, {Name: "B", Population: 45000}},
			seats:       3,
			want:        map[string]int{"A": 2, "B": 1},
			wantDivisor: 33333,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := RoundedDivisor{}.Apportion(tc.dist, tc.seats)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !maps.Equal(got.Seats, tc.want) {
				t.Fatalf("unexpected result: got %v want %v", got.Seats, tc.want)
			}
			if got.Divisor != tc.wantDivisor || got.Inexact {
				t.Fatalf("expected exact divisor %v, got %v (inexact=%v)", tc.wantDivisor, got.Divisor, got.Inexact)
			}
			if got.Method != MethodRoundedDivisor {
				t.Fatalf("expected method %s, got %s", MethodRoundedDivisor, got.Method)
			}
		})
	}
}

func TestGeometricPriority(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		method      GeometricPriority
		dist        Distribution
		seats       int
		want        map[string]int
		wantInexact bool
	}{
		{
			name:   "ExactTieGoesToGreatestName",
			method: GeometricPriority{ExactTotal: true},
			dist:   Distribution{{Name: "A", Population: 100}, {Name: "B", Population: 100}},
			seats:  3,
			want:   map[string]int{"A": 1, "B": 2},
		},
		{
			name:        "DefaultAwardsOneSeatPastTarget",
			method:      GeometricPriority{},
			dist:        Distribution{{Name: "A", Population: 100}, {Name: "B", Population: 100}},
			seats:       3,
			want:        map[string]int{"A": 2, "B": 2},
			wantInexact: true,
		},
		{
			name:   "ExactProportional",
			method: GeometricPriority{ExactTotal: true},
			dist:   threeRegions(),
			seats:  7,
			want:   map[string]int{"A": 4, "B": 2, "C": 1},
		},
		{
			name:        "FewerSeatsThanRegions",
			method:      GeometricPriority{},
			dist:        threeRegions(),
			seats:       2,
			want:        map[string]int{"A": 1, "B": 1, "C": 1},
			wantInexact: true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.method.Apportion(tc.dist, tc.seats)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !maps.Equal(got.Seats, tc.want) {
				t.Fatalf("unexpected result: got %v want %v", got.Seats, tc.want)
			}
			if got.Inexact != tc.wantInexact {
				t.Fatalf("expected inexact=%v, got %v", tc.wantInexact, got.Inexact)
			}
			if got.Divisor != 0 {
				t.Fatalf("priority method should not report a divisor, got %v", got.Divisor)
			}
		})
	}
}

func TestInvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		dist     Distribution
		seats    int
		kind     InputErrorKind
		sentinel error
	}{
		{"EmptyPopulation", nil, 7, EmptyPopulation, ErrEmptyPopulation},
		{"ZeroSeats", threeRegions(), 0, NonPositiveSeats, ErrNonPositiveSeats},
		{"NegativeSeats", threeRegions(), -3, NonPositiveSeats, ErrNonPositiveSeats},
		{"NegativePopulation", Distribution{{Name: "A", Population: 10}, {Name: "B", Population: -1}}, 2, NegativePopulation, ErrNegativePopulation},
		{"DuplicateRegion", Distribution{{Name: "A", Population: 10}, {Name: "A", Population: 5}}, 2, DuplicateRegion, ErrDuplicateRegion},
		{"ZeroTotal", Distribution{{Name: "A", Population: 0}, {Name: "B", Population: 0}}, 2, ZeroTotalPopulation, ErrZeroTotalPopulation},
		{"Overflow", Distribution{{Name: "A", Population: 1 << 62}, {Name: "B", Population: 1 << 62}}, 2, PopulationOverflow, ErrPopulationOverflow},
	}

	registry := NewRegistry()
	for _, tc := range tests {
		tc := tc
		for _, m := range registry.Methods() {
			m := m
			t.Run(tc.name+"/"+m.String(), func(t *testing.T) {
				got, err := registry.Apportion(m, tc.dist, tc.seats)
				if !errors.Is(err, tc.sentinel) {
					t.Fatalf("expected %v, got %v", tc.sentinel, err)
				}
				var inputErr *InvalidInputError
				if !errors.As(err, &inputErr) || inputErr.Kind != tc.kind {
					t.Fatalf("expected InvalidInputError of kind %s, got %v", tc.kind, err)
				}
				if got.Seats != nil {
					t.Fatalf("expected no partial result, got %v", got.Seats)
				}
			})
		}
	}
}

func TestInvalidInputErrorMessageNamesRegion(t *testing.T) {
	t.Parallel()

	err := Validate(Distribution{{Name: "Atlantis", Population: -5}}, 1)
	if err == nil {
		t.Fatalf("expected error")
	}
	want := `invalid input: region populations must be non-negative (region "Atlantis")`
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}

func TestMethodsAreIdempotentAndDoNotMutateInput(t *testing.T) {
	t.Parallel()

	dist := threeRegions()
	original := dist.Clone()
	registry := NewRegistry(WithDivisorFloor(0))

	for _, m := range registry.Methods() {
		first, err := registry.Apportion(m, dist, 9)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", m, err)
		}
		second, err := registry.Apportion(m, dist, 9)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", m, err)
		}
		if !maps.Equal(first.Seats, second.Seats) || first.Divisor != second.Divisor || first.Inexact != second.Inexact {
			t.Fatalf("%s: results differ between calls: %+v vs %+v", m, first, second)
		}
	}

	for i := range dist {
		if dist[i] != original[i] {
			t.Fatalf("input distribution was mutated: %v", dist)
		}
	}
}

func TestResultNamesSorted(t *testing.T) {
	t.Parallel()

	res := Result{Seats: map[string]int{"b": 1, "c": 2, "a": 3}}
	names := res.Names()
	if len(names) != 3 || names[0] != "a" || names[1] != "b" || names[2] != "c" {
		t.Fatalf("unexpected order: %v", names)
	}
	if res.Total() != 6 {
		t.Fatalf("expected total 6, got %d", res.Total())
	}
}
