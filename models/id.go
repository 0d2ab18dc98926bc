package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID - идентификатор строки. Хранилище может отдавать его числом или строкой,
// поэтому исходная форма сохраняется при обратной сериализации.
type ID struct {
	value   string
	numeric bool
}

// NewID builds an ID from a path parameter or other textual source.
func NewID(s string) ID {
	return ID{value: s}
}

func (id ID) String() string { return id.value }

// IsZero reports whether the id is absent: empty string or numeric zero.
func (id ID) IsZero() bool {
	if id.value == "" {
		return true
	}
	if id.numeric {
		f, err := strconv.ParseFloat(id.value, 64)
		return err == nil && f == 0
	}
	return false
}

func (id ID) MarshalJSON() ([]byte, error) {
	if id.value == "" && !id.numeric {
		return []byte("null"), nil
	}
	if id.numeric {
		return []byte(id.value), nil
	}
	return json.Marshal(id.value)
}

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*id = ID{}
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID{value: s}
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("id must be a string or a number: %w", err)
		}
		*id = ID{value: n.String(), numeric: true}
		return nil
	}
}

// Scan implements sql.Scanner.
func (id *ID) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*id = ID{}
	case int64:
		*id = ID{value: strconv.FormatInt(v, 10), numeric: true}
	case string:
		*id = ID{value: v}
	case []byte:
		*id = ID{value: string(v)}
	default:
		return fmt.Errorf("cannot scan %T into models.ID", src)
	}
	return nil
}

// Value implements driver.Valuer. Postgres infers the column type from the query.
func (id ID) Value() (driver.Value, error) {
	if id.value == "" {
		return nil, nil
	}
	return id.value, nil
}
