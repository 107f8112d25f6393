package store

import (
	"encoding/json"
	"fmt"
)

// Encode serializes a collection as a JSON array. An empty or nil collection
// encodes as [].
func Encode[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encoding collection: %w", err)
	}
	return data, nil
}

// Decode parses a JSON array produced by Encode. A JSON null decodes to an
// empty collection.
func Decode[T any](data []byte) ([]T, error) {
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decoding collection: %w", err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}
