package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// parseData decodes a --data value: inline JSON, or @file with a .json,
// .yaml or .yml extension. An empty value decodes to nil.
func parseData(value string) (any, error) {
	if value == "" {
		return nil, nil
	}

	name, isFile := strings.CutPrefix(value, "@")
	if !isFile {
		var data any
		if err := json.Unmarshal([]byte(value), &data); err != nil {
			return nil, fmt.Errorf("invalid --data JSON: %w", err)
		}
		return data, nil
	}

	raw, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	var data any
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &data)
	default:
		err = json.Unmarshal(raw, &data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return data, nil
}

// dataObject returns data as document fields
func dataObject(data any) (map[string]any, error) {
	if data == nil {
		return map[string]any{}, nil
	}
	fields, ok := data.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("--data must be an object, got %T", data)
	}
	return fields, nil
}

// decodeInto converts decoded data into v through its JSON tags
func decodeInto(data any, v any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}
