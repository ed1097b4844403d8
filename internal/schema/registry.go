// Package schema centralizes the JSON schema version tags used across the
// pipeline's serialized artifacts (error reports, interface artifacts,
// dependency manifests) and a deterministic JSON marshaler shared by all of
// them, so two compiles of identical input produce byte-identical output.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Schema version tags. Every serialized artifact stamps one of these so a
// consumer can distinguish future incompatible revisions.
const (
	ErrorV1    = "corelang.error/v1"
	IfaceV1    = "corelang.iface/v1"
	ManifestV1 = "corelang.manifest/v1"
)

// Accepts reports whether a schema version is forward-compatible with an
// expected major version prefix (e.g. "corelang.iface/v1.2" accepts
// "corelang.iface/v1").
func Accepts(got, wantPrefix string) bool {
	if got == wantPrefix {
		return true
	}
	return len(got) > len(wantPrefix) && got[:len(wantPrefix)+1] == wantPrefix+"."
}

// MarshalDeterministic marshals a value to JSON with object keys sorted
// lexically at every nesting level, so re-serializing the same value always
// produces the same bytes regardless of Go map iteration order. This is
// the mechanism behind the interface artifact's byte-stability requirement.
func MarshalDeterministic(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}
	data := bytes.TrimRight(buf.Bytes(), "\n")

	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return data, nil
	}
	return marshalSorted(generic)
}

func marshalSorted(v any) ([]byte, error) {
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var out bytes.Buffer
		out.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				out.WriteByte(',')
			}
			keyJSON, err := encodeScalar(k)
			if err != nil {
				return nil, err
			}
			valJSON, err := marshalSorted(val[k])
			if err != nil {
				return nil, err
			}
			out.Write(keyJSON)
			out.WriteByte(':')
			out.Write(valJSON)
		}
		out.WriteByte('}')
		return out.Bytes(), nil

	case []any:
		var out bytes.Buffer
		out.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				out.WriteByte(',')
			}
			itemJSON, err := marshalSorted(item)
			if err != nil {
				return nil, err
			}
			out.Write(itemJSON)
		}
		out.WriteByte(']')
		return out.Bytes(), nil

	default:
		return encodeScalar(val)
	}
}

func encodeScalar(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// FormatJSON indents deterministic JSON bytes for human-readable output.
// Artifacts are stored compact; this is used only by diagnostics.
func FormatJSON(data []byte) ([]byte, error) {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, data, "", "  "); err != nil {
		return nil, err
	}
	return pretty.Bytes(), nil
}
