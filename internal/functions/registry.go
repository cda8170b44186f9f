package functions

import (
	"errors"
	"fmt"
	"slices"
	"sort"
)

// Kind is the trigger a function is bound to
type Kind string

const (
	KindHTTP           Kind = "http"
	KindCallable       Kind = "callable"
	KindDocumentCreate Kind = "document.create"
	KindUserCreate     Kind = "user.create"
)

// Registered function names
const (
	NameSimpleHTTP         = "simpleHttp"
	NameSimpleCallable     = "simpleCallable"
	NameFirestoreUppercase = "firestoreUppercase"
	NameUserSaver          = "userSaver"
)

// ErrUnknownFunction is returned when a function name is not registered
var ErrUnknownFunction = errors.New("unknown function")

// Definition describes a deployed function
type Definition struct {
	Name     string
	Kind     Kind
	Resource string // path pattern for document triggers, empty otherwise
	Lambda   string // deployed Lambda function name
}

// Registry holds function definitions by name
type Registry struct {
	defs map[string]Definition
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]Definition)}
}

// Add registers a definition. Names must be unique.
func (r *Registry) Add(def Definition) error {
	if def.Name == "" {
		return errors.New("function name is required")
	}
	if _, exists := r.defs[def.Name]; exists {
		return fmt.Errorf("function %s already registered", def.Name)
	}
	r.defs[def.Name] = def
	return nil
}

// Get returns the definition for name
func (r *Registry) Get(name string) (Definition, error) {
	def, ok := r.defs[name]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %s", ErrUnknownFunction, name)
	}
	return def, nil
}

// Names returns the registered names in sorted order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ByKind returns the definitions bound to kind, sorted by name
func (r *Registry) ByKind(kind Kind) []Definition {
	var out []Definition
	for _, name := range r.Names() {
		if def := r.defs[name]; def.Kind == kind {
			out = append(out, def)
		}
	}
	return slices.Clip(out)
}

// Definitions returns the registry of the application's functions
func Definitions() *Registry {
	r := NewRegistry()
	for _, def := range []Definition{
		{Name: NameSimpleHTTP, Kind: KindHTTP, Lambda: "simple-http"},
		{Name: NameSimpleCallable, Kind: KindCallable, Lambda: "simple-callable"},
		{Name: NameFirestoreUppercase, Kind: KindDocumentCreate, Resource: LowercasePattern, Lambda: "document-uppercase"},
		{Name: NameUserSaver, Kind: KindUserCreate, Lambda: "user-saver"},
	} {
		// names above are distinct
		_ = r.Add(def)
	}
	return r
}
