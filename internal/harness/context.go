package harness

import (
	"maps"
	"time"

	"github.com/WhatsThatItsPat/quickstart-testing/internal/trigger"
	"github.com/google/uuid"
)

// LocalUserPoolID is the user pool reported by simulated user-create events
const LocalUserPoolID = "local_userpool"

// ContextOptions is the out-of-band metadata a test supplies with a
// simulated trigger. Params must name every wildcard of the trigger's
// pattern; nothing is inferred from the payload.
type ContextOptions struct {
	Params    map[string]string
	EventID   string    // random when empty
	Timestamp time.Time // now when zero
	Auth      *trigger.AuthContext
	UserPool  string // LocalUserPoolID when empty
}

// Param returns ContextOptions with a single path parameter set
func Param(name, value string) ContextOptions {
	return ContextOptions{Params: map[string]string{name: value}}
}

func (o ContextOptions) eventContext(eventType, resource string) trigger.EventContext {
	ec := trigger.EventContext{
		EventID:   o.EventID,
		Timestamp: o.Timestamp,
		EventType: eventType,
		Resource:  resource,
		Params:    maps.Clone(o.Params),
		Auth:      o.Auth,
	}
	if ec.EventID == "" {
		ec.EventID = uuid.NewString()
	}
	if ec.Timestamp.IsZero() {
		ec.Timestamp = time.Now().UTC()
	}
	if ec.Params == nil {
		ec.Params = map[string]string{}
	}
	return ec
}
