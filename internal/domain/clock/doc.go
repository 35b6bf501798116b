// Package clock drives simulated time.
//
// A Registry keeps every timed item in registration order and advances all of
// them by one unit per AdvanceOneUnit call. Registries are plain values so that
// each simulation (and each test) owns an independent clock.
package clock
