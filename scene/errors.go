package scene

import (
	"errors"
	"fmt"

	"github.com/plus3/sandbox/ecs"
)

var (
	ErrNoCodec            = errors.New("no codec registered for component type")
	ErrUnknownType        = errors.New("unknown component type")
	ErrUnregistered       = errors.New("component type is not registered with the world")
	ErrDanglingLink       = errors.New("link points outside the snapshot")
	ErrEmptyRecord        = errors.New("entity record has no components")
	ErrDuplicateToken     = errors.New("duplicate entity token")
	ErrDuplicateComponent = errors.New("component type appears twice on one entity")
	ErrUnsupportedVersion = errors.New("unsupported scene document version")
	ErrNoScenePath        = errors.New("scene has no file path")
	ErrCodecConflict      = errors.New("codec already registered")
)

// CaptureError reports a component that could not be encoded. Capture stops
// at the first one.
type CaptureError struct {
	Entity ecs.EntityId
	Type   string
	Err    error
}

func (e *CaptureError) Error() string {
	return fmt.Sprintf("capture entity %d: component %s: %v", e.Entity, e.Type, e.Err)
}

func (e *CaptureError) Unwrap() error {
	return e.Err
}

// RestoreError reports a record that could not be rebuilt. The world is left
// untouched when one is returned.
type RestoreError struct {
	Token Token
	Type  string
	Err   error
}

func (e *RestoreError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("restore record %d: %v", e.Token, e.Err)
	}
	return fmt.Sprintf("restore record %d: component %s: %v", e.Token, e.Type, e.Err)
}

func (e *RestoreError) Unwrap() error {
	return e.Err
}

// FileError wraps a failure reading or writing a scene file.
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *FileError) Unwrap() error {
	return e.Err
}
