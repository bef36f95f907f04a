package servicedef

import (
	"encoding/json"
	"fmt"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// ID is a resource identifier as returned by the service. Depending on the resource and the
// backend version it may be encoded as a JSON string or a JSON number; either form decodes
// to the same string.
type ID string

func (id ID) String() string {
	return string(id)
}

// IsDefined returns true if the ID is non-empty.
func (id ID) IsDefined() bool {
	return id != ""
}

func (id *ID) UnmarshalJSON(data []byte) error {
	var v ldvalue.Value
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch v.Type() {
	case ldvalue.StringType:
		*id = ID(v.StringValue())
	case ldvalue.NumberType:
		*id = ID(v.JSONString())
	case ldvalue.NullType:
		*id = ""
	default:
		return fmt.Errorf("ID must be a string or number, got %s", v.JSONString())
	}
	return nil
}
