package apportion

import "sort"

// LargestRemainder implements the Hamilton method: every region receives the
// floor of its quota, and the seats left over go to the largest fractional
// remainders. Equal remainders keep distribution order.
type LargestRemainder struct{}

func (LargestRemainder) Apportion(dist Distribution, seats int) (Result, error) {
	total, err := validate(dist, seats)
	if err != nil {
		return Result{}, err
	}

	// quota = pop / (total/seats) = pop*seats / total. Working on the integer
	// numerator keeps floors and remainders exact.
	type share struct {
		name      string
		floor     int
		remainder int64
	}
	shares := make([]share, len(dist))
	assigned := 0
	for i, r := range dist {
		scaled := r.Population * int64(seats)
		shares[i] = share{
			name:      r.Name,
			floor:     int(scaled / total),
			remainder: scaled % total,
		}
		assigned += shares[i].floor
	}

	shortfall := seats - assigned
	order := make([]int, len(shares))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return shares[order[a]].remainder > shares[order[b]].remainder
	})
	for _, idx := range order[:shortfall] {
		shares[idx].floor++
	}

	allocation := make(map[string]int, len(shares))
	for _, s := range shares {
		allocation[s.name] = s.floor
	}

	return Result{
		Method:  MethodLargestRemainder,
		Seats:   allocation,
		Divisor: float64(total) / float64(seats),
	}, nil
}
