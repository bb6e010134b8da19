// Package apportion distributes a fixed number of seats across regions in
// proportion to their populations. It implements the largest remainder
// (Hamilton), fixed divisor with floor rounding (Jefferson), geometric mean
// priority (Huntington-Hill) and rounded divisor (Webster) methods behind the
// Apportioner interface, and a Registry that selects among them by Method.
//
// Every method is a pure function of its inputs: no logging, no I/O and no
// shared state, so a Registry may be used from many goroutines at once.
package apportion
