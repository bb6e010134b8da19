package report

import (
	"sort"

	"github.com/eugenenazirov/apportionment/internal/apportion"
)

// SenatorsPerRegion is the number of electors each region receives on top of
// its seats.
const SenatorsPerRegion = 2

// Row holds the fairness figures for one region.
//
// RepDeviation compares the region's people-per-seat with the national
// average: positive values mean the region is over-represented.
// ElectoralDeviation does the same for electors (seats + senators).
type Row struct {
	Region             string  `json:"region"`
	Population         int64   `json:"population"`
	Seats              int     `json:"seats"`
	Electors           int     `json:"electors"`
	RepDeviation       float64 `json:"repDeviationPct"`
	ElectoralDeviation float64 `json:"electoralDeviationPct"`
	ZeroSeats          bool    `json:"zeroSeats,omitempty"`
}

// Report is the presentation of a single apportionment result.
type Report struct {
	Method          apportion.Method `json:"method"`
	Historical      string           `json:"historical"`
	RequestedSeats  int              `json:"requestedSeats"`
	AllocatedSeats  int              `json:"allocatedSeats"`
	TotalPopulation int64            `json:"totalPopulation"`
	Divisor         float64          `json:"divisor,omitempty"`
	Inexact         bool             `json:"inexact"`
	Rows            []Row            `json:"rows"`
}

// Mismatch reports whether the allocation misses the requested seat count.
func (r Report) Mismatch() bool {
	return r.Inexact || r.AllocatedSeats != r.RequestedSeats
}

// Build computes fairness metrics for res, which must have been produced from
// dist with the given seat target. Rows are ordered by region name.
func Build(dist apportion.Distribution, seats int, res apportion.Result) Report {
	total := dist.Total()
	fairRep := float64(total) / float64(seats)
	fairElc := float64(total) / float64(seats+SenatorsPerRegion*len(dist))

	rows := make([]Row, 0, len(dist))
	for _, region := range dist {
		allocated := res.Seats[region.Name]
		row := Row{
			Region:     region.Name,
			Population: region.Population,
			Seats:      allocated,
			Electors:   allocated + SenatorsPerRegion,
		}
		if allocated > 0 {
			repfair := fairRep - float64(region.Population)/float64(allocated)
			elcfair := fairElc - float64(region.Population)/float64(allocated+SenatorsPerRegion)
			row.RepDeviation = 100 * repfair / fairRep
			row.ElectoralDeviation = 100 * elcfair / fairElc
		} else {
			row.ZeroSeats = true
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Region < rows[j].Region
	})

	return Report{
		Method:          res.Method,
		Historical:      res.Method.Historical(),
		RequestedSeats:  seats,
		AllocatedSeats:  res.Total(),
		TotalPopulation: total,
		Divisor:         res.Divisor,
		Inexact:         res.Inexact,
		Rows:            rows,
	}
}
