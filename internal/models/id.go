package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// ID is a backend identifier. Some services send strings, some numbers.
type ID string

// UnmarshalJSON accepts a string, a number or null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string {
	return string(id)
}

// IDFromInt formats a numeric identifier.
func IDFromInt(n int) ID {
	return ID(strconv.Itoa(n))
}

// mongoID extracts the "_id" member some services use instead of "id".
func mongoID(data []byte) ID {
	var doc struct {
		ID ID `json:"_id"`
	}
	_ = json.Unmarshal(data, &doc)
	return doc.ID
}
