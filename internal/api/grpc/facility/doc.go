// Package facility implements the gRPC transport for the simulation service.
//
// The bms.v1.FacilityService is declared by hand on top of the protobuf
// well-known types, so no generated code is needed: snapshots travel as
// google.protobuf.Struct, commands as wrappers and empties.
package facility
