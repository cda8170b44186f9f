package docstore

import (
	"errors"
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/qri-io/jsonpointer"
)

// ErrNoSuchField is returned by Snapshot.Get for fields the document does not contain
var ErrNoSuchField = errors.New("no such field")

// Snapshot is a point-in-time read of a document.
// A snapshot of a missing document has Exists() == false and nil Data().
type Snapshot struct {
	ref        Path
	data       map[string]any
	CreateTime time.Time
	UpdateTime time.Time
}

// NewSnapshot returns a snapshot of ref holding data.
// A nil data map produces a snapshot of a missing document.
func NewSnapshot(ref Path, data map[string]any) Snapshot {
	return Snapshot{ref: ref, data: data}
}

// Ref returns the path the snapshot was read from
func (s Snapshot) Ref() Path {
	return s.ref
}

// ID returns the document ID
func (s Snapshot) ID() string {
	return s.ref.ID
}

// Exists reports whether the document existed when read
func (s Snapshot) Exists() bool {
	return s.data != nil
}

// Data returns a shallow copy of the document fields
func (s Snapshot) Data() map[string]any {
	if s.data == nil {
		return nil
	}
	return maps.Clone(s.data)
}

// Get returns a single field. field is either a JSON Pointer ("/address/city")
// or a dotted field path ("address.city").
func (s Snapshot) Get(field string) (any, error) {
	if s.data == nil {
		return nil, fmt.Errorf("%w: %s: document does not exist", ErrNoSuchField, field)
	}

	ptr, err := jsonpointer.Parse(fieldPointer(field))
	if err != nil {
		return nil, fmt.Errorf("invalid field path %q: %w", field, err)
	}

	value, err := ptr.Eval(s.data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchField, field)
	}
	// Eval returns (nil, nil) for nonexistent keys
	if value == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchField, field)
	}
	return value, nil
}

// GetString returns a string field
func (s Snapshot) GetString(field string) (string, error) {
	value, err := s.Get(field)
	if err != nil {
		return "", err
	}
	str, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("field %s is %T, not string", field, value)
	}
	return str, nil
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func fieldPointer(field string) string {
	if field == "" || strings.HasPrefix(field, "/") {
		return field
	}
	segments := strings.Split(field, ".")
	for i, seg := range segments {
		segments[i] = pointerEscaper.Replace(seg)
	}
	return "/" + strings.Join(segments, "/")
}
