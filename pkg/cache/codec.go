package cache

import (
	"bytes"
	"encoding/base64"
	"encoding/gob"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrCorruptedEntry indicates a cached value that failed both decode
// paths. Fetchers treat it as a miss and overwrite on the next
// write-through, but it is surfaced so the condition can be logged.
var ErrCorruptedEntry = errors.New("corrupted cache entry")

// Encode serializes a value to the store's string representation.
//
// The primary path is JSON, which covers every typed domain model and is
// readable by other deployments sharing the store. Values that resist
// JSON fall back to gob wrapped in standard base64.
func Encode(v any) (string, error) {
	data, jsonErr := json.Marshal(v)
	if jsonErr == nil {
		return string(data), nil
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return "", fmt.Errorf("encode cache value: json: %v, gob: %w", jsonErr, err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Decode deserializes a stored string into out. JSON is tried first; on
// failure the base64+gob fallback is attempted. A value failing both
// paths returns ErrCorruptedEntry.
func Decode(s string, out any) error {
	jsonErr := json.Unmarshal([]byte(s), out)
	if jsonErr == nil {
		return nil
	}

	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		CacheCorrupted.Inc()
		return fmt.Errorf("%w: json: %v, base64: %v", ErrCorruptedEntry, jsonErr, err)
	}

	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(out); err != nil {
		CacheCorrupted.Inc()
		return fmt.Errorf("%w: json: %v, gob: %v", ErrCorruptedEntry, jsonErr, err)
	}
	return nil
}
