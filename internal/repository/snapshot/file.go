package snapshot

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/oshokin/bms-sim/internal/config"
	"github.com/oshokin/bms-sim/internal/report"
)

// Record is a snapshot and the moment it was taken.
type Record struct {
	SavedAt  time.Time
	Snapshot *report.Snapshot
}

// Repository defines persistence operations for snapshots.
type Repository interface {
	Load(ctx context.Context) (*Record, error)
	Save(ctx context.Context, record *Record) error
}

// FileRepository persists one snapshot record to a JSON file.
type FileRepository struct {
	// path is the filesystem location of the JSON file.
	path string
	// mu serializes access to the file.
	mu sync.Mutex
}

const (
	savedAtField  = "saved_at"
	snapshotField = "snapshot"
)

var (
	// ErrNotFound is returned when the snapshot file does not exist yet.
	ErrNotFound = errors.New("snapshot not found")
	// errMalformed is returned when the file lacks a required field.
	errMalformed = errors.New("malformed snapshot file")
)

// NewFileRepository creates a repository that reads/writes JSON at the provided path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Path returns the file location.
func (r *FileRepository) Path() string {
	return r.path
}

// Load reads the record from disk.
func (r *FileRepository) Load(_ context.Context) (*Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read snapshot file: %w", err)
	}

	var envelope structpb.Struct
	if err = protojson.Unmarshal(contents, &envelope); err != nil {
		return nil, fmt.Errorf("decode snapshot file: %w", err)
	}

	return fromEnvelope(&envelope)
}

// Save writes the record to disk, replacing any previous one.
func (r *FileRepository) Save(_ context.Context, record *Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	envelope, err := toEnvelope(record)
	if err != nil {
		return err
	}

	marshalOptions := protojson.MarshalOptions{
		Multiline: true,
		Indent:    "  ",
	}

	data, err := marshalOptions.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	if err = os.WriteFile(r.path, data, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write snapshot file: %w", err)
	}

	return nil
}

// toEnvelope wraps the snapshot struct with its timestamp.
func toEnvelope(record *Record) (*structpb.Struct, error) {
	if record == nil || record.Snapshot == nil {
		return nil, fmt.Errorf("%w: nothing to save", errMalformed)
	}

	body, err := record.Snapshot.ToStruct()
	if err != nil {
		return nil, err
	}

	return &structpb.Struct{
		Fields: map[string]*structpb.Value{
			savedAtField:  structpb.NewStringValue(record.SavedAt.UTC().Format(time.RFC3339Nano)),
			snapshotField: structpb.NewStructValue(body),
		},
	}, nil
}

// fromEnvelope is the inverse of toEnvelope.
func fromEnvelope(envelope *structpb.Struct) (*Record, error) {
	fields := envelope.GetFields()

	body := fields[snapshotField].GetStructValue()
	if body == nil {
		return nil, fmt.Errorf("%w: missing %s", errMalformed, snapshotField)
	}

	savedAt, err := time.Parse(time.RFC3339Nano, fields[savedAtField].GetStringValue())
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errMalformed, savedAtField, err)
	}

	snap, err := report.FromStruct(body)
	if err != nil {
		return nil, err
	}

	return &Record{
		SavedAt:  savedAt,
		Snapshot: snap,
	}, nil
}
