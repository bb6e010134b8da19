package apportion

import "sort"

// Region is a named population unit that receives seats.
type Region struct {
	Name       string `json:"name" yaml:"name"`
	Population int64  `json:"population" yaml:"population"`
}

// Distribution is an ordered collection of regions. Methods treat it as
// read-only; input order is the tie-break of last resort for largest remainder.
type Distribution []Region

// Total returns the summed population of all regions.
func (d Distribution) Total() int64 {
	var total int64
	for _, r := range d {
		total += r.Population
	}
	return total
}

// Lookup returns the population of the named region.
func (d Distribution) Lookup(name string) (int64, bool) {
	for _, r := range d {
		if r.Name == name {
			return r.Population, true
		}
	}
	return 0, false
}

// Clone returns a copy that shares no backing array with d.
func (d Distribution) Clone() Distribution {
	if d == nil {
		return nil
	}
	out := make(Distribution, len(d))
	copy(out, d)
	return out
}

// Result is the seat allocation produced by a single method call.
type Result struct {
	Method Method
	Seats  map[string]int
	// Divisor is the divisor that produced Seats. Priority methods leave it zero.
	Divisor float64
	// Inexact marks allocations whose total differs from the requested seats.
	Inexact bool
}

// Total returns the number of seats allocated across all regions.
func (r Result) Total() int {
	total := 0
	for _, s := range r.Seats {
		total += s
	}
	return total
}

// Names returns region names in lexicographic order.
func (r Result) Names() []string {
	names := make([]string, 0, len(r.Seats))
	for name := range r.Seats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apportioner describes the behaviour required from an apportionment method.
type Apportioner interface {
	Apportion(dist Distribution, seats int) (Result, error)
}
