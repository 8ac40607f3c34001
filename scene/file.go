package scene

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/plus3/sandbox/ecs"
)

// Save captures the scene and writes it to path, creating parent
// directories as needed.
func (s *Serializer) Save(storage *ecs.Storage, path string) error {
	snap, err := s.Capture(storage)
	if err != nil {
		return err
	}
	data, err := EncodeDocument(snap)
	if err != nil {
		return &FileError{Op: "encode", Path: path, Err: err}
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &FileError{Op: "mkdir", Path: dir, Err: err}
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &FileError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// ReadFile loads the snapshot stored at path.
func ReadFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileError{Op: "read", Path: path, Err: err}
	}
	snap, err := DecodeDocument(data)
	if err != nil {
		return nil, &FileError{Op: "decode", Path: path, Err: errors.WithMessage(err, filepath.Base(path))}
	}
	return snap, nil
}

// Load replaces the current scene with the one stored at path. The world is
// unchanged if the file cannot be read or decoded.
func (s *Serializer) Load(storage *ecs.Storage, path string) error {
	snap, err := ReadFile(path)
	if err != nil {
		return err
	}
	return s.Restore(storage, snap)
}

// SpawnPrefab adds the entities stored at path to the current scene.
func (s *Serializer) SpawnPrefab(storage *ecs.Storage, path string) ([]ecs.EntityId, error) {
	snap, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return s.Instantiate(storage, snap)
}
