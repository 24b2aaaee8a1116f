package query

import (
	"encoding/json"
	"errors"
)

// ErrNotFound is returned by Storage.Get for a missing key.
var ErrNotFound = errors.New("storage: key not found")

// Storage is a string-keyed key-value store used to persist engine state
// across sessions. Implementations must be safe for concurrent use.
type Storage interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// URLState is the state the engine mirrors into the address bar as the
// page, pageSize and state query parameters.
type URLState struct {
	// Page and PageSize are zero when pagination is off.
	Page     int
	PageSize int

	// State is the storage key; empty leaves the address's state untouched.
	State string
}

// URLStateWriter mirrors state into the current address without navigating.
type URLStateWriter interface {
	Replace(state URLState)
}

// persistedState is the JSON blob stored under Options.StorageKey.
type persistedState struct {
	SortConfig *persistedSort `json:"sortConfig"`
	Pagination *Pagination    `json:"pagination"`
}

type persistedSort struct {
	Key       string    `json:"key"`
	Direction Direction `json:"direction"`
}

// encodeState serializes the sort and pagination. Only KeySort survives;
// comparator and derived sorts hold functions and are stored as null.
func encodeState[T any](spec SortSpec[T], p *Pagination) (string, error) {
	state := persistedState{Pagination: p}
	if ks, ok := spec.(KeySort[T]); ok {
		state.SortConfig = &persistedSort{Key: ks.Key, Direction: ks.Direction}
	}

	data, err := json.Marshal(state)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// decodeState parses a stored blob. Sort keys not present in keys are dropped.
func decodeState[T any](raw string, keys map[string]Accessor[T]) (SortSpec[T], *Pagination, error) {
	var state persistedState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, nil, err
	}

	var spec SortSpec[T]
	if s := state.SortConfig; s != nil {
		dir, err := parseDirection(string(s.Direction))
		if _, ok := keys[s.Key]; ok && err == nil {
			spec = KeySort[T]{Key: s.Key, Direction: dir}
		}
	}

	var p *Pagination
	if state.Pagination != nil {
		np := state.Pagination.Normalize()
		p = &np
	}
	return spec, p, nil
}

// urlState builds the state mirrored by the engine.
func urlState(p *Pagination, storageKey string) URLState {
	s := URLState{State: storageKey}
	if p != nil {
		s.Page = p.Page
		s.PageSize = p.PageSize
	}
	return s
}
