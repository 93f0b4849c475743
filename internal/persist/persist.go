// Package persist provides whole-state snapshot persistence for the store.
//
// Every adapter serializes the entire models.State into a single slot keyed
// by a fixed name. There is no incremental persistence and no multi-writer
// coordination.
package persist

import (
	"context"
	"encoding/json"
	"errors"

	"sadat/internal/models"
)

// ErrNoSnapshot is returned by Load when the slot is empty or its payload
// cannot be decoded. Callers initialize a default state in response.
var ErrNoSnapshot = errors.New("persist: no usable snapshot")

// Adapter loads and saves the whole store state, synchronously.
type Adapter interface {
	Load(ctx context.Context) (*models.State, error)
	Save(ctx context.Context, state *models.State) error
}

// Encode serializes a state snapshot.
func Encode(state *models.State) ([]byte, error) {
	return json.Marshal(state)
}

// Decode deserializes a state snapshot. Malformed payloads map to
// ErrNoSnapshot so the store resets to defaults instead of failing.
func Decode(data []byte) (*models.State, error) {
	if len(data) == 0 {
		return nil, ErrNoSnapshot
	}
	var state models.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, ErrNoSnapshot
	}
	return &state, nil
}
