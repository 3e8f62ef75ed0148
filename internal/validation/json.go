package validation

import (
	"bytes"
	"encoding/json"

	validation "github.com/jellydator/validation"
)

// JSONObject validates that a json.RawMessage (or []byte) holds a JSON object, empty
// or not. Empty values are left to validation.Required.
var JSONObject = validation.By(func(value any) error {
	_, err := objectMembers(value)
	return err
})

// NonEmptyJSONObject is JSONObject that also rejects `{}`.
var NonEmptyJSONObject = validation.By(func(value any) error {
	members, err := objectMembers(value)
	if err != nil {
		return err
	}
	if members == 0 {
		return validation.NewError("validation_json_object_empty", "must not be an empty object")
	}
	return nil
})

// objectMembers counts the members of a JSON object. Blank input reports -1.
func objectMembers(value any) (int, error) {
	var raw []byte
	switch v := value.(type) {
	case json.RawMessage:
		raw = v
	case []byte:
		raw = v
	default:
		return 0, validation.NewError("validation_json_object_type", "must be a JSON document")
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return -1, nil
	}

	var members map[string]json.RawMessage
	if raw[0] != '{' || json.Unmarshal(raw, &members) != nil {
		return 0, validation.NewError("validation_json_object", "must be a JSON object")
	}
	return len(members), nil
}
