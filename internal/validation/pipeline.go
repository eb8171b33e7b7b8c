package validation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// LocationBody marks a field read from the request body
const LocationBody = "body"

var validate = validator.New()

// Fields holds the raw request fields by name. Absent fields are missing from the map.
type Fields map[string]interface{}

// FieldError describes one failed rule
type FieldError struct {
	Value    interface{} `json:"value,omitempty"`
	Msg      string      `json:"msg"`
	Param    string      `json:"param"`
	Location string      `json:"location"`
}

// Rule checks one aspect of the input. It returns nil on success.
type Rule func(fields Fields) *FieldError

// Pipeline runs its rules in order
type Pipeline []Rule

// Run executes every rule and collects failures in rule order
func (p Pipeline) Run(fields Fields) []FieldError {
	var errs []FieldError
	for _, rule := range p {
		if fe := rule(fields); fe != nil {
			errs = append(errs, *fe)
		}
	}
	return errs
}

// String returns the field as text. Scalars are formatted, anything else is empty.
func (f Fields) String(name string) string {
	switch v := f[name].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64, bool, json.Number:
		return fmt.Sprint(v)
	default:
		return ""
	}
}

// NotEmpty fails when the trimmed field is empty
func NotEmpty(name, msg string) Rule {
	return func(fields Fields) *FieldError {
		value := strings.TrimSpace(fields.String(name))
		if err := validate.Var(value, "required"); err != nil {
			return &FieldError{
				Value:    fields[name],
				Msg:      msg,
				Param:    name,
				Location: LocationBody,
			}
		}
		return nil
	}
}

// FieldsFromJSON decodes a JSON object body. A body that is not an object yields no fields.
func FieldsFromJSON(body []byte) Fields {
	fields := Fields{}
	if len(body) == 0 {
		return fields
	}
	if err := json.Unmarshal(body, &fields); err != nil {
		return Fields{}
	}
	return fields
}
