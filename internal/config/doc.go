// Package config defines the settings shared by the simulation binaries and
// provides helpers to load, validate and save them in YAML format.
//
// Settings point at the facility layout, the gRPC server address and the
// pace of the simulated clock.
package config
