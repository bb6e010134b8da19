package main

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/eugenenazirov/apportionment/internal/apportion"
	"github.com/eugenenazirov/apportionment/internal/report"
)

// computeReports runs every (seat target, method) pair concurrently and
// returns the reports in seat-major order. The first failing pair in that
// order decides the error.
func computeReports(registry *apportion.Registry, dist apportion.Distribution, seatTargets []int, methods []apportion.Method) ([]report.Report, error) {
	type job struct {
		seats  int
		method apportion.Method
	}
	jobs := make([]job, 0, len(seatTargets)*len(methods))
	for _, seats := range seatTargets {
		for _, method := range methods {
			jobs = append(jobs, job{seats: seats, method: method})
		}
	}

	reports := make([]report.Report, len(jobs))
	errs := make([]error, len(jobs))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, j := range jobs {
		idx, current := i, j
		g.Go(func() error {
			res, err := registry.Apportion(current.method, dist, current.seats)
			if err != nil {
				errs[idx] = fmt.Errorf("%s with %d seats: %w", current.method, current.seats, err)
				return errs[idx]
			}
			reports[idx] = report.Build(dist, current.seats, res)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		// Wait reports whichever job failed first in time; pick the first in
		// seat-major order instead so output does not depend on scheduling.
		for _, jobErr := range errs {
			if jobErr != nil {
				return nil, jobErr
			}
		}
		return nil, err
	}
	return reports, nil
}
