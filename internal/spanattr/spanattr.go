// Package spanattr holds the span attributes for document and user events.
// Handler spans themselves come from the shared tracing package.
package spanattr

import "go.opentelemetry.io/otel/attribute"

// EventID returns an attribute for the trigger event ID
func EventID(id string) attribute.KeyValue {
	return attribute.String("event_id", id)
}

// DocumentPath returns an attribute for the document path
func DocumentPath(path string) attribute.KeyValue {
	return attribute.String("document.path", path)
}

// UserID returns an attribute for the auth user ID
func UserID(uid string) attribute.KeyValue {
	return attribute.String("user.uid", uid)
}

// ErrorStatus returns an attribute for the callable error status
func ErrorStatus(status string) attribute.KeyValue {
	return attribute.String("error.status", status)
}
