package trigger

import (
	"errors"
	"fmt"
	"time"
)

// Event types carried in EventContext.EventType
const (
	EventTypeDocumentCreate = "document.create"
	EventTypeUserCreate     = "user.create"
)

// ErrMissingParam is returned when a handler needs a path parameter the
// context does not carry
var ErrMissingParam = errors.New("missing path parameter")

// AuthContext identifies the caller of a callable or the subject of an event
type AuthContext struct {
	UID   string         `json:"uid"`
	Token map[string]any `json:"token,omitempty"`
}

// EventContext is the out-of-band metadata delivered with a trigger payload.
// Params holds the values captured by the wildcards of the trigger's path
// pattern; it is the only source of the triggering document's ID.
type EventContext struct {
	EventID   string
	Timestamp time.Time
	EventType string
	Resource  string
	Params    map[string]string
	Auth      *AuthContext
}

// Param returns a captured path parameter
func (c EventContext) Param(name string) (string, error) {
	v, ok := c.Params[name]
	if !ok || v == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingParam, name)
	}
	return v, nil
}
