package contract

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"breeder-site-backend/internal/schema"
)

// Validator checks a raw response body
type Validator func(body []byte) error

// MessageBody is the body of 401, 404, 409 and 500 responses
type MessageBody struct {
	Message string `json:"message" validate:"required"`
}

// ValidationBody is the body of a 400 response
type ValidationBody struct {
	Message string `json:"message" validate:"required"`
	Field   string `json:"field,omitempty"`
}

// DecodeStrict decodes body into v, rejecting unknown fields and trailing data
func DecodeStrict(body []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("failed to decode %T: %w", v, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return fmt.Errorf("unexpected trailing data after %T", v)
	}
	return nil
}

// Body accepts a single JSON object of type T that passes schema validation
func Body[T any]() Validator {
	return func(body []byte) error {
		var v T
		if err := DecodeStrict(body, &v); err != nil {
			return err
		}
		return schema.Validate(&v)
	}
}

// List accepts a JSON array whose elements each satisfy Body[T]
func List[T any]() Validator {
	return func(body []byte) error {
		var items []T
		if err := DecodeStrict(body, &items); err != nil {
			return err
		}
		if items == nil {
			return errors.New("expected array, received null")
		}
		for i := range items {
			if err := schema.Validate(&items[i]); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
		}
		return nil
	}
}

// NullOr accepts the JSON literal null or a body satisfying Body[T]
func NullOr[T any]() Validator {
	inner := Body[T]()
	return func(body []byte) error {
		if string(bytes.TrimSpace(body)) == "null" {
			return nil
		}
		return inner(body)
	}
}

// Empty accepts only an empty body
func Empty() Validator {
	return func(body []byte) error {
		if len(bytes.TrimSpace(body)) != 0 {
			return errors.New("expected empty body")
		}
		return nil
	}
}

var (
	validationError = Body[ValidationBody]()
	messageError    = Body[MessageBody]()
)
