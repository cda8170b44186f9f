package docstore

import (
	"errors"
	"testing"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		in   string
		want Path
	}{
		{"/lowercase/foo", Path{Collection: "lowercase", ID: "foo"}},
		{"uppercase/bar", Path{Collection: "uppercase", ID: "bar"}},
		{"/users/u-1/", Path{Collection: "users", ID: "u-1"}},
	}

	for _, tt := range tests {
		got, err := ParsePath(tt.in)
		if err != nil {
			t.Errorf("ParsePath(%q) returned error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePath(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParsePath_Invalid(t *testing.T) {
	for _, in := range []string{"", "/", "/lowercase", "/a/b/c", "//foo"} {
		if _, err := ParsePath(in); !errors.Is(err, ErrInvalidPath) {
			t.Errorf("ParsePath(%q): expected ErrInvalidPath, got %v", in, err)
		}
	}
}

func TestPath_String(t *testing.T) {
	if got := Doc("uppercase", "foo").String(); got != "/uppercase/foo" {
		t.Errorf("expected /uppercase/foo, got %s", got)
	}
}
