package urbanapi

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
)

// TerritoryType is the administrative level a question is scoped to
type TerritoryType string

const (
	TerritoryCity         TerritoryType = "city"
	TerritoryDistrict     TerritoryType = "district"
	TerritoryMunicipality TerritoryType = "municipality"
	TerritoryBlock        TerritoryType = "block"
	TerritoryNone         TerritoryType = ""
)

// NameOrID holds a territory name or numeric id. Both JSON strings and
// numbers decode into it.
type NameOrID string

func (n *NameOrID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = NameOrID(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return err
	}
	*n = NameOrID(num.String())
	return nil
}

func (n NameOrID) String() string {
	return string(n)
}

// Territory is the geographic scope of a question
type Territory struct {
	Type        TerritoryType `json:"territory_type"`
	NameID      NameOrID      `json:"territory_name_id"`
	Coordinates any           `json:"coordinates"`
}

// HasName reports whether a non-blank name or id is set
func (t Territory) HasName() bool {
	return strings.TrimSpace(string(t.NameID)) != ""
}

// HasCoordinates treats nil and empty lists of any element type as absent
func (t Territory) HasCoordinates() bool {
	if t.Coordinates == nil {
		return false
	}
	rv := reflect.ValueOf(t.Coordinates)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv.Len() > 0
	}
	return true
}
