package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// JSONText carries an arbitrary JSON document between a text column and the
// API without forcing a schema on it.
type JSONText []byte

// MarshalJSON emits the stored document verbatim, or null when empty.
func (j JSONText) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("null"), nil
	}
	return j, nil
}

// UnmarshalJSON validates and stores the raw document.
func (j *JSONText) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*j = nil
		return nil
	}
	if !json.Valid(trimmed) {
		return fmt.Errorf("invalid JSON document")
	}
	*j = append((*j)[0:0], trimmed...)
	return nil
}

func (j JSONText) String() string {
	return string(j)
}
