package postgres

import (
	"bytes"
	"encoding/json"

	"github.com/mitchellh/mapstructure"
)

var jsonNull = []byte("null")

func isEmptyJSON(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, jsonNull)
}

// decodeVector reads a JSON array of numbers. Numbers stored as strings are
// accepted.
func decodeVector(raw []byte) ([]float64, error) {
	if isEmptyJSON(raw) {
		return nil, nil
	}

	var generic []any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}

	var vector []float64
	if err := mapstructure.WeakDecode(generic, &vector); err != nil {
		return nil, err
	}
	return vector, nil
}

func decodeProfile(raw []byte) (map[string]any, error) {
	if isEmptyJSON(raw) {
		return nil, nil
	}

	var profile map[string]any
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// encodeJSON marshals v for a JSONB column; empty values are stored as NULL.
func encodeJSON(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if isEmptyJSON(raw) {
		return nil, nil
	}
	return raw, nil
}
