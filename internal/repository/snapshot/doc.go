// Package snapshot stores report snapshots on disk.
//
// The FileRepository writes a snapshot together with the time it was taken as
// protobuf JSON, the same encoding the gRPC transport uses.
package snapshot
