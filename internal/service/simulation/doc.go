// Package simulation runs a facility against a simulated clock.
//
// A Simulation owns the registry and the building built from a layout and
// serializes every access behind one lock, so the domain types stay free of
// synchronization while the gRPC server and the ticker share them.
package simulation
