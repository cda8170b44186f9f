package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseData_Inline(t *testing.T) {
	data, err := parseData(`{"a":1,"b":2}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": float64(1), "b": float64(2)}, data)
}

func TestParseData_Empty(t *testing.T) {
	data, err := parseData("")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestParseData_InvalidJSON(t *testing.T) {
	_, err := parseData(`{"a":`)
	assert.Error(t, err)
}

func TestParseData_Files(t *testing.T) {
	dir := t.TempDir()
	yamlFile := filepath.Join(dir, "doc.yml")
	jsonFile := filepath.Join(dir, "doc.json")
	require.NoError(t, os.WriteFile(yamlFile, []byte("text: hello\n"), 0o600))
	require.NoError(t, os.WriteFile(jsonFile, []byte(`{"text":"hello"}`), 0o600))

	for _, file := range []string{yamlFile, jsonFile} {
		data, err := parseData("@" + file)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"text": "hello"}, data)
	}
}

func TestParseData_MissingFile(t *testing.T) {
	_, err := parseData("@" + filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestDataObject(t *testing.T) {
	fields, err := dataObject(nil)
	require.NoError(t, err)
	assert.Empty(t, fields)

	_, err = dataObject([]any{1, 2})
	assert.Error(t, err)
}
