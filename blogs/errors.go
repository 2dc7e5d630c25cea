package blogs

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrInvalidID = errors.New("invalid blog id")
	ErrNotFound  = errors.New("blog not found")
)

// ValidationError lists the offending form fields. Nothing has been written
// when it is returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func invalidField(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// StorageError is a document store failure.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("%s blog: %v", e.Op, e.Err) }
func (e *StorageError) Unwrap() error { return e.Err }

// storageErr passes ErrNotFound through untouched and wraps everything else.
func storageErr(op string, err error) error {
	if err == nil || errors.Is(err, ErrNotFound) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

// AttachmentError is a failure of the attachment storage backend.
type AttachmentError struct {
	Op  string
	Err error
}

func (e *AttachmentError) Error() string { return fmt.Sprintf("%s image: %v", e.Op, e.Err) }
func (e *AttachmentError) Unwrap() error { return e.Err }
