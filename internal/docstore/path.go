package docstore

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPath is returned for paths that do not name a document
var ErrInvalidPath = errors.New("invalid document path")

// Path addresses a document as /collection/id.
// Only top-level collections are supported.
type Path struct {
	Collection string
	ID         string
}

// Doc returns the path of document id in collection
func Doc(collection, id string) Path {
	return Path{Collection: collection, ID: id}
}

// ParsePath parses "/collection/id". The leading slash is optional.
func ParsePath(s string) (Path, error) {
	parts := strings.Split(strings.Trim(s, "/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Path{}, fmt.Errorf("%w: %q: expected /{collection}/{id}", ErrInvalidPath, s)
	}
	return Path{Collection: parts[0], ID: parts[1]}, nil
}

// IsZero reports whether p is the zero path
func (p Path) IsZero() bool {
	return p.Collection == "" && p.ID == ""
}

func (p Path) String() string {
	return "/" + p.Collection + "/" + p.ID
}
