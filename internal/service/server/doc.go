// Package server runs the simulation behind the FacilityService gRPC API and
// advances its clock in real time.
package server
