package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// IDList maps a jsonb array of id strings onto a string slice.
type IDList []string

func (l IDList) Value() (driver.Value, error) {
	if l == nil {
		l = IDList{}
	}
	return json.Marshal(l)
}

func (l *IDList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = IDList{}
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into IDList", src)
	}
}
