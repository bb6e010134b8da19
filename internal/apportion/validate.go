package apportion

import "math"

// validate checks the inputs shared by every method and returns the total
// population. Methods rely on total*seats fitting in int64 afterwards.
func validate(dist Distribution, seats int) (int64, error) {
	if len(dist) == 0 {
		return 0, invalidInput(EmptyPopulation, "")
	}
	if seats <= 0 {
		return 0, invalidInput(NonPositiveSeats, "")
	}

	seen := make(map[string]struct{}, len(dist))
	var total int64
	for _, r := range dist {
		if r.Population < 0 {
			return 0, invalidInput(NegativePopulation, r.Name)
		}
		if _, dup := seen[r.Name]; dup {
			return 0, invalidInput(DuplicateRegion, r.Name)
		}
		seen[r.Name] = struct{}{}
		if total > math.MaxInt64-r.Population {
			return 0, invalidInput(PopulationOverflow, r.Name)
		}
		total += r.Population
	}

	if total == 0 {
		return 0, invalidInput(ZeroTotalPopulation, "")
	}
	if total > math.MaxInt64/int64(seats) {
		return 0, invalidInput(PopulationOverflow, "")
	}
	return total, nil
}

// Validate reports whether dist and seats are acceptable to every method.
func Validate(dist Distribution, seats int) error {
	_, err := validate(dist, seats)
	return err
}
