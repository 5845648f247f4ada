package schema

import (
	"encoding/json"
	"math"
	"net/url"
	"strings"

	"github.com/spf13/cast"
)

// Kind selects the coercion rule applied to a field
type Kind int

const (
	KindString Kind = iota
	KindNullableString
	KindInt
	KindBool
)

// Mode selects between insert and partial-update semantics
type Mode int

const (
	// ModeCreate requires every Required field and fills defaults
	ModeCreate Mode = iota
	// ModePatch only coerces fields that are present
	ModePatch
)

// maxInt matches the range of a PostgreSQL integer column
const maxInt = math.MaxInt32

// FieldRule declares how one input field is coerced
type FieldRule struct {
	Name     string
	Kind     Kind
	Required bool
	Default  any
}

// Raw is untrusted input keyed by field name
type Raw map[string]any

// Values holds coerced input. Only present (or defaulted) fields are set.
type Values map[string]any

// DecodeRaw decodes a JSON object body into Raw
func DecodeRaw(body []byte) (Raw, error) {
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, &ValidationError{Message: "Request body is required"}
	}
	var raw Raw
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &ValidationError{Message: "Invalid JSON body"}
	}
	if raw == nil {
		return nil, &ValidationError{Message: "Expected object, received null"}
	}
	return raw, nil
}

// RawFromForm converts HTML form values into Raw. Every value stays a string;
// coercion rules take it from there.
func RawFromForm(form url.Values) Raw {
	raw := make(Raw, len(form))
	for k, v := range form {
		if len(v) > 0 {
			raw[k] = v[0]
		}
	}
	return raw
}

// Coerce applies rules to raw in declaration order and stops at the first
// failure. Keys without a rule are dropped.
func Coerce(raw Raw, rules []FieldRule, mode Mode) (Values, error) {
	out := make(Values, len(rules))
	for _, rule := range rules {
		v, present := raw[rule.Name]
		if !present {
			if mode == ModeCreate {
				if rule.Required {
					return nil, fieldError(rule.Name, "Required")
				}
				if rule.Default != nil {
					out[rule.Name] = rule.Default
				}
			}
			continue
		}

		coerced, err := coerceValue(rule, v)
		if err != nil {
			return nil, err
		}
		out[rule.Name] = coerced
	}
	return out, nil
}

func coerceValue(rule FieldRule, v any) (any, error) {
	var (
		out any
		msg string
	)
	switch rule.Kind {
	case KindString:
		s, ok := CoerceString(v)
		out, msg = s, boolMsg(ok, "Expected string")
	case KindNullableString:
		s, ok := CoerceNullableString(v)
		out, msg = s, boolMsg(ok, "Expected string")
	case KindInt:
		n, m := CoerceInt(v)
		out, msg = n, m
	case KindBool:
		b, ok := CoerceBool(v)
		out, msg = b, boolMsg(ok, "Expected boolean")
	}
	if msg != "" {
		return nil, fieldError(rule.Name, msg)
	}
	return out, nil
}

func boolMsg(ok bool, msg string) string {
	if ok {
		return ""
	}
	return msg
}

// CoerceString accepts string values only
func CoerceString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// CoerceNullableString accepts strings and null. Blank strings become null,
// which is what an empty optional form field means.
func CoerceNullableString(v any) (*string, bool) {
	if v == nil {
		return nil, true
	}
	s, ok := v.(string)
	if !ok {
		return nil, false
	}
	if strings.TrimSpace(s) == "" {
		return nil, true
	}
	return &s, true
}

// CoerceInt converts JSON numbers and numeric strings to an int. The returned
// message is empty on success.
func CoerceInt(v any) (int, string) {
	switch t := v.(type) {
	case nil, bool:
		return 0, "Expected number"
	case string:
		if strings.TrimSpace(t) == "" {
			return 0, "Expected number"
		}
		v = strings.TrimSpace(t)
	}

	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, "Expected number"
	}
	if f != math.Trunc(f) {
		return 0, "Expected integer"
	}
	if f > maxInt {
		return 0, "Number must be less than or equal to 2147483647"
	}
	if f < -maxInt {
		return 0, "Number must be greater than or equal to -2147483647"
	}
	return int(f), ""
}

// CoerceBool converts booleans, "true"/"false" style strings and checkbox
// values ("on"/"off") to a bool.
func CoerceBool(v any) (bool, bool) {
	switch t := v.(type) {
	case nil:
		return false, false
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "on":
			return true, true
		case "off":
			return false, true
		}
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return false, false
	}
	return b, true
}

func (v Values) str(name string) string {
	s, _ := v[name].(string)
	return s
}

func (v Values) strPtr(name string) *string {
	s, ok := v[name].(string)
	if !ok {
		return nil
	}
	return &s
}

func (v Values) nullable(name string) *string {
	s, _ := v[name].(*string)
	return s
}

func (v Values) nullablePatch(name string) NullableString {
	raw, ok := v[name]
	if !ok {
		return NullableString{}
	}
	s, _ := raw.(*string)
	return NullableString{Set: true, Value: s}
}

func (v Values) integer(name string) int {
	n, _ := v[name].(int)
	return n
}

func (v Values) intPtr(name string) *int {
	n, ok := v[name].(int)
	if !ok {
		return nil
	}
	return &n
}

func (v Values) boolean(name string) bool {
	b, _ := v[name].(bool)
	return b
}

func (v Values) boolPtr(name string) *bool {
	b, ok := v[name].(bool)
	if !ok {
		return nil
	}
	return &b
}
