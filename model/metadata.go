package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/siherrmann/ranker/helper"
)

// Metadata holds free-form vertex and edge properties, stored as JSONB
type Metadata map[string]interface{}

// Value implements the driver.Valuer interface for database storage.
// A nil map is stored as an empty object.
func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return m.Marshal()
}

// Scan implements the sql.Scanner interface for database retrieval
func (m *Metadata) Scan(value interface{}) error {
	return m.Unmarshal(value)
}

// Marshal converts Metadata to JSON bytes
func (m Metadata) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

// Unmarshal accepts JSON as bytes or string, a Metadata value or nil
func (m *Metadata) Unmarshal(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*m = Metadata{}
		return nil
	case Metadata:
		*m = v
		return nil
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return helper.NewError("metadata type assertion", fmt.Errorf("unsupported type %T", value))
	}
}
