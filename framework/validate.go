package framework

import (
	"encoding/json"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const (
	msgInvalidJSON     = "invalid JSON response"
	msgNotObjectOrList = "response is not an object or list of objects"
	msgListNotObjects  = "list elements are not objects"
)

// HasFields checks that a JSON body has each of the given top-level properties.
//
// If the body is an array, only its first element is checked, on the assumption that all
// elements have the same shape. An empty array is considered valid. If the body cannot be
// checked at all, the returned list holds a single diagnostic instead of field names.
func HasFields(body []byte, fields ...string) (bool, []string) {
	value, ok := parseJSON(body)
	if !ok {
		return false, []string{msgInvalidJSON}
	}
	var target ldvalue.Value
	switch value.Type() {
	case ldvalue.ObjectType:
		target = value
	case ldvalue.ArrayType:
		if value.Count() == 0 {
			return true, nil
		}
		target = value.GetByIndex(0)
		if target.Type() != ldvalue.ObjectType {
			return false, []string{msgListNotObjects}
		}
	default:
		return false, []string{msgNotObjectOrList}
	}
	present := make(map[string]bool)
	for _, k := range target.Keys() {
		present[k] = true
	}
	var missing []string
	for _, f := range fields {
		if !present[f] {
			missing = append(missing, f)
		}
	}
	return len(missing) == 0, missing
}

// ParseList parses a body that is expected to be a JSON array.
func ParseList(body []byte) (ldvalue.Value, bool) {
	value, ok := parseJSON(body)
	if !ok || value.Type() != ldvalue.ArrayType {
		return ldvalue.Null(), false
	}
	return value, true
}

// ParseObject parses a body that is expected to be a JSON object.
func ParseObject(body []byte) (ldvalue.Value, bool) {
	value, ok := parseJSON(body)
	if !ok || value.Type() != ldvalue.ObjectType {
		return ldvalue.Null(), false
	}
	return value, true
}

func parseJSON(body []byte) (ldvalue.Value, bool) {
	var value ldvalue.Value
	if len(body) == 0 || json.Unmarshal(body, &value) != nil {
		return ldvalue.Null(), false
	}
	return value, true
}
