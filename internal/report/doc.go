// Package report turns a building into a point-in-time snapshot and renders it.
//
// A Snapshot is a plain value detached from the live facility, so it can be
// printed, encoded as JSON or sent over gRPC as a google.protobuf.Struct.
package report
