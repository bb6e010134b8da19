package apportion

import "math"

// GeometricPriority implements the Huntington-Hill method. Every region starts
// with one seat; each further seat goes to the region with the highest
// priority pop/sqrt(s*(s+1)). Equal priorities go to the lexicographically
// greatest name.
//
// By default the award loop keeps running while the remaining count is
// non-negative, which hands out one seat more than requested and marks the
// result Inexact. ExactTotal stops at the requested total instead.
type GeometricPriority struct {
	ExactTotal bool
}

func (m GeometricPriority) Apportion(dist Distribution, seats int) (Result, error) {
	if _, err := validate(dist, seats); err != nil {
		return Result{}, err
	}

	allocation := make(map[string]int, len(dist))
	for _, r := range dist {
		allocation[r.Name] = 1
	}
	assigned := len(dist)

	stopBelow := 0
	if m.ExactTotal {
		stopBelow = 1
	}
	for remaining := seats - assigned; remaining >= stopBelow; remaining = seats - assigned {
		allocation[nextPriority(dist, allocation)]++
		assigned++
	}

	return Result{
		Method:  MethodGeometricPriority,
		Seats:   allocation,
		Inexact: assigned != seats,
	}, nil
}

func nextPriority(dist Distribution, allocation map[string]int) string {
	var (
		best     string
		bestPrio = math.Inf(-1)
	)
	for _, r := range dist {
		prio := priority(r.Population, allocation[r.Name])
		if prio > bestPrio || (prio == bestPrio && r.Name > best) {
			best, bestPrio = r.Name, prio
		}
	}
	return best
}

func priority(population int64, seats int) float64 {
	s := float64(seats)
	return float64(population) / math.Sqrt(s*(s+1))
}
