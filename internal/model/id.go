package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// NewID returns a creation-time id (Unix milliseconds) that taken does not
// report as used, bumping by one until it is free
func NewID(now time.Time, taken func(int64) bool) int64 {
	id := now.UnixMilli()
	for taken != nil && taken(id) {
		id++
	}
	return id
}

// decodeID reads an id written either as an integer or as a fractional
// millisecond timestamp, truncating the fraction
func decodeID(raw json.RawMessage) (int64, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, fmt.Errorf("invalid id %s: %w", raw, err)
	}
	return int64(f), nil
}

// UnmarshalJSON accepts fractional ids from older logs
func (n *Notification) UnmarshalJSON(data []byte) error {
	type plain Notification
	aux := struct {
		*plain
		ID json.RawMessage `json:"id"`
	}{plain: (*plain)(n)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	id, err := decodeID(aux.ID)
	if err != nil {
		return err
	}
	n.ID = id
	return nil
}

// UnmarshalJSON accepts fractional ids from older logs
func (m *Message) UnmarshalJSON(data []byte) error {
	type plain Message
	aux := struct {
		*plain
		ID json.RawMessage `json:"id"`
	}{plain: (*plain)(m)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	id, err := decodeID(aux.ID)
	if err != nil {
		return err
	}
	m.ID = id
	return nil
}
