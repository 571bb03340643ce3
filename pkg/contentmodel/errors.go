package contentmodel

import (
	"errors"
	"fmt"
)

// Error types
var (
	// ErrTypeNotFound indicates no type is registered under an id
	ErrTypeNotFound = errors.New("content type not found")

	// ErrInstanceNotFound indicates an instance id is unknown
	ErrInstanceNotFound = errors.New("content instance not found")

	// ErrInvalidManifest indicates a manifest failed validation
	ErrInvalidManifest = errors.New("invalid manifest")
)

// TypeError represents an error related to a content type
type TypeError struct {
	TypeID string
	Op     string
	Err    error
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("type operation %s failed for type %s: %v", e.Op, e.TypeID, e.Err)
}

func (e *TypeError) Unwrap() error {
	return e.Err
}
