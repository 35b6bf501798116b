// Package runner simulates a facility offline: it advances the clock a fixed
// number of units and prints the resulting reports.
package runner
