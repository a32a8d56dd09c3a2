package storage

import (
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Marshal serializes v for persistence.
func Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// DecodeInto unmarshals raw into v and reports whether it succeeded.
// Corrupt or empty payloads yield false and leave the caller to fall back
// to a zero value; decode failures never propagate past this boundary.
func DecodeInto(raw []byte, v any) bool {
	if len(raw) == 0 {
		return false
	}
	return json.Unmarshal(raw, v) == nil
}
