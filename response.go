package forge

import (
	"encoding/json"
)

// Resource is one API object, decoded without a fixed schema.
// Accessors tolerate unknown and missing keys so the SDK keeps working when
// the API grows new fields.
type Resource map[string]any

// Get returns the raw value for name, and whether the key exists.
func (r Resource) Get(name string) (any, bool) {
	v, ok := r[name]
	return v, ok
}

// String returns the value for name as a string, or "" when absent or not a
// string.
func (r Resource) String(name string) string {
	if v, ok := r[name].(string); ok {
		return v
	}
	return ""
}

// Int returns the value for name as an int64. JSON numbers decode as float64,
// so both forms are accepted. Returns 0 when absent or non-numeric.
func (r Resource) Int(name string) int64 {
	switch v := r[name].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case json.Number:
		n, _ := v.Int64()
		return n
	}
	return 0
}

// Bool returns the value for name as a bool, or false when absent or not a
// bool.
func (r Resource) Bool(name string) bool {
	if v, ok := r[name].(bool); ok {
		return v
	}
	return false
}

// RawResponse is what the transport hands back: a status code and the
// undecoded body. Ephemeral, scoped to one invocation.
type RawResponse struct {
	Status int
	Body   json.RawMessage
}

// mapSingle decodes a single-resource response body.
// An empty body yields a nil Resource (e.g. 204 on an update).
func mapSingle(raw *RawResponse) (Resource, *Error) {
	if len(raw.Body) == 0 {
		return nil, nil
	}
	var res Resource
	if err := json.Unmarshal(raw.Body, &res); err != nil {
		return nil, Errorf(CodeService, "malformed response body: %v", err).
			WithDetail("status", raw.Status)
	}
	return res, nil
}

// mapSequence decodes an ordered-sequence response body. When onEach is
// supplied it is invoked once per element, in order, before the sequence is
// returned; it observes only and never short-circuits or transforms the
// result. An empty body yields an empty sequence.
func mapSequence(raw *RawResponse, onEach func(Resource)) ([]Resource, *Error) {
	if len(raw.Body) == 0 {
		return []Resource{}, nil
	}
	var seq []Resource
	if err := json.Unmarshal(raw.Body, &seq); err != nil {
		return nil, Errorf(CodeService, "malformed response body: expected array: %v", err).
			WithDetail("status", raw.Status)
	}
	// A literal null body decodes to a nil slice; treat it like no body.
	if seq == nil {
		return []Resource{}, nil
	}
	if onEach != nil {
		for _, r := range seq {
			onEach(r)
		}
	}
	return seq, nil
}
