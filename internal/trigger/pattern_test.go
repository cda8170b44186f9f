package trigger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePattern(t *testing.T) {
	p, err := ParsePattern("/lowercase/{id}")
	require.NoError(t, err)

	assert.Equal(t, "/lowercase/{id}", p.String())
	assert.Equal(t, []string{"id"}, p.Wildcards())
}

func TestParsePattern_Invalid(t *testing.T) {
	for _, s := range []string{"", "/", "/a//b", "/a/{}", "/a/{x}/{x}", "/a/b{c}"} {
		_, err := ParsePattern(s)
		assert.ErrorIs(t, err, ErrInvalidPattern, "pattern %q", s)
	}
}

func TestPattern_Match(t *testing.T) {
	p := MustParsePattern("/lowercase/{id}")

	params, ok := p.Match("/lowercase/foo")
	require.True(t, ok)
	assert.Equal(t, map[string]string{"id": "foo"}, params)

	_, ok = p.Match("/uppercase/foo")
	assert.False(t, ok, "different collection")

	_, ok = p.Match("/lowercase")
	assert.False(t, ok, "too short")

	_, ok = p.Match("/lowercase/foo/bar")
	assert.False(t, ok, "too long")
}

func TestPattern_Expand(t *testing.T) {
	p := MustParsePattern("/rooms/{room}/messages/{msg}")

	path, err := p.Expand(map[string]string{"room": "r1", "msg": "m1"})
	require.NoError(t, err)
	assert.Equal(t, "/rooms/r1/messages/m1", path)

	_, err = p.Expand(map[string]string{"room": "r1"})
	assert.True(t, errors.Is(err, ErrMissingParam))
}

func TestMustParsePattern_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParsePattern("") })
}

func TestEventContext_Param(t *testing.T) {
	ec := EventContext{Params: map[string]string{"id": "foo", "empty": ""}}

	v, err := ec.Param("id")
	require.NoError(t, err)
	assert.Equal(t, "foo", v)

	_, err = ec.Param("missing")
	assert.ErrorIs(t, err, ErrMissingParam)

	_, err = ec.Param("empty")
	assert.ErrorIs(t, err, ErrMissingParam)
}
