// Package report turns apportionment results into fairness reports: how far
// each region's people-per-seat and people-per-elector sit from the national
// average, rendered as a text table or JSON.
package report
