// Package common holds the primitive identifier and time types shared by
// the domain, persistence and wire layers.
package common

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ID identifies a generated document.  New values are UUID v4, but the
// type accepts any non-empty string so externally supplied IDs round-trip
// through storage unchanged.
type ID string

// NewID returns a fresh UUID v4 identifier.
func NewID() ID {
	return ID(uuid.New().String())
}

// Validate reports whether the ID is a well-formed UUID.
func (id ID) Validate() error {
	if id == "" {
		return fmt.Errorf("ID cannot be empty")
	}
	if _, err := uuid.Parse(string(id)); err != nil {
		return fmt.Errorf("invalid ID format: %w", err)
	}
	return nil
}

// Timestamp wraps time.Time with RFC 3339 JSON encoding, keeping wire
// and storage representations identical regardless of the host's zone.
type Timestamp time.Time

// NewTimestamp returns the current instant in UTC.
func NewTimestamp() Timestamp {
	return Timestamp(time.Now().UTC())
}

// MarshalJSON encodes the timestamp as an RFC 3339 string with
// nanosecond precision.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(t).Format(time.RFC3339Nano))
}

// UnmarshalJSON accepts RFC 3339 with or without fractional seconds and
// normalises to UTC.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		parsed, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return err
		}
	}
	*t = Timestamp(parsed.UTC())
	return nil
}

//Personal.AI order the ending
