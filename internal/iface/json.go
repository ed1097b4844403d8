package iface

import (
	"encoding/json"

	"github.com/sunholo/corelang/internal/schema"
)

// Marshal renders i as byte-stable JSON: each section was sorted by name
// in Build, and schema.MarshalDeterministic sorts every object's keys
// lexically (struct field order plays no part), so two Builds over
// identical inputs produce byte-identical output regardless of Go's map
// iteration order.
func (i *Iface) Marshal() ([]byte, error) {
	return schema.MarshalDeterministic(i)
}

// Unmarshal parses a previously-serialized interface artifact, as read
// back from a dependency's build cache.
func Unmarshal(data []byte) (*Iface, error) {
	var out Iface
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
