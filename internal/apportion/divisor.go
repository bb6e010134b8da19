package apportion

// DefaultDivisorFloor is the divisor at or below which the divisor search
// gives up. It matches the scale of national census populations.
const DefaultDivisorFloor int64 = 30000

// FixedDivisorFloor implements the Jefferson method. It finds the largest
// divisor D, no greater than the truncated standard divisor, for which
// floor(pop/D), with a minimum of one seat per region, sums to the target.
// Divisors at or below Floor are never used; without an exact divisor above
// it, the allocation at Floor+1 is returned and marked Inexact.
//
// A zero Floor searches all the way down to a divisor of 1.
type FixedDivisorFloor struct {
	Floor int64
}

func (m FixedDivisorFloor) Apportion(dist Distribution, seats int) (Result, error) {
	total, err := validate(dist, seats)
	if err != nil {
		return Result{}, err
	}
	res := searchDivisor(dist, seats, total, m.Floor, floorSeats)
	res.Method = MethodFixedDivisorFloor
	return res, nil
}

// RoundedDivisor implements the Webster method. It shares the FixedDivisorFloor
// search but rounds each quota half up instead of flooring it.
type RoundedDivisor struct {
	Floor int64
}

func (m RoundedDivisor) Apportion(dist Distribution, seats int) (Result, error) {
	total, err := validate(dist, seats)
	if err != nil {
		return Result{}, err
	}
	res := searchDivisor(dist, seats, total, m.Floor, roundedSeats)
	res.Method = MethodRoundedDivisor
	return res, nil
}

type roundingFunc func(population, divisor int64) int

func floorSeats(population, divisor int64) int {
	return int(population / divisor)
}

// roundedSeats rounds population/divisor half up in integer arithmetic.
func roundedSeats(population, divisor int64) int {
	q, r := population/divisor, population%divisor
	if r >= divisor-r {
		q++
	}
	return int(q)
}

// searchDivisor returns the allocation at the largest divisor in
// (floor, total/seats] whose seats sum to the target. The seat sum never grows
// as the divisor grows, so a binary search lands on the same divisor a
// one-step-at-a-time walk down from total/seats would stop at. When no divisor
// in range is exact, the allocation at floor+1 is returned, where that walk
// would end. If the range is empty every region keeps a single seat.
func searchDivisor(dist Distribution, seats int, total, floor int64, round roundingFunc) Result {
	if floor < 0 {
		floor = 0
	}

	start := total / int64(seats)
	if start <= floor {
		allocation := make(map[string]int, len(dist))
		for _, r := range dist {
			allocation[r.Name] = 1
		}
		return Result{
			Seats:   allocation,
			Inexact: len(dist) != seats,
		}
	}

	// Largest divisor in [floor+1, start] allocating at least seats.
	lo, hi := floor+1, start
	if cappedSeatSum(dist, lo, round, seats) >= seats {
		for lo < hi {
			mid := lo + (hi-lo+1)/2
			if cappedSeatSum(dist, mid, round, seats) >= seats {
				lo = mid
			} else {
				hi = mid - 1
			}
		}
		if cappedSeatSum(dist, lo, round, seats) == seats {
			return Result{
				Seats:   allocateAt(dist, lo, round),
				Divisor: float64(lo),
			}
		}
	}

	last := floor + 1
	return Result{
		Seats:   allocateAt(dist, last, round),
		Divisor: float64(last),
		Inexact: true,
	}
}

// cappedSeatSum sums the allocation at divisor, stopping once it passes limit.
func cappedSeatSum(dist Distribution, divisor int64, round roundingFunc, limit int) int {
	sum := 0
	for _, r := range dist {
		n := max(round(r.Population, divisor), 1)
		if n > limit-sum {
			return limit + 1
		}
		sum += n
	}
	return sum
}

func allocateAt(dist Distribution, divisor int64, round roundingFunc) map[string]int {
	allocation := make(map[string]int, len(dist))
	for _, r := range dist {
		allocation[r.Name] = max(round(r.Population, divisor), 1)
	}
	return allocation
}
