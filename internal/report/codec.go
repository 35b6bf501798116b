package report

import (
	"encoding/json"
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// errNilStruct is returned when there is nothing to decode.
var errNilStruct = errors.New("snapshot struct is nil")

// MarshalIndent encodes the snapshot as indented JSON.
func (s *Snapshot) MarshalIndent() ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	return data, nil
}

// ToStruct converts the snapshot to a google.protobuf.Struct for the wire.
func (s *Snapshot) ToStruct() (*structpb.Struct, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	result := new(structpb.Struct)
	if err = protojson.Unmarshal(data, result); err != nil {
		return nil, fmt.Errorf("convert snapshot to struct: %w", err)
	}

	return result, nil
}

// FromStruct is the inverse of ToStruct.
func FromStruct(st *structpb.Struct) (*Snapshot, error) {
	if st == nil {
		return nil, errNilStruct
	}

	data, err := protojson.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("convert struct to json: %w", err)
	}

	snap := new(Snapshot)
	if err = json.Unmarshal(data, snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}

	return snap, nil
}
