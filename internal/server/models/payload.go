package models

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/Shiwantha-I-Rodrigo/watch-tower/pkg/gateway"
)

// Payload is the decoded body of a create or partial update request.
// A key that is absent means "leave unchanged", a key that is present
// with a null value means "clear"
type Payload map[string]any

// GetString returns (value, isSet, err); a null value yields a nil
// pointer with isSet true
func (p Payload) GetString(key string) (*string, bool, error) {
	raw, ok := p[key]
	if !ok {
		return nil, false, nil
	}
	if raw == nil {
		return nil, true, nil
	}
	value, ok := raw.(string)
	if !ok {
		return nil, true, fmt.Errorf("field[%s] should be a string: %w", key, ErrorInvalidInput)
	}
	return &value, true, nil
}

// GetClearableString is for text columns that cannot hold NULL: a null
// value resets the field to the empty string instead
func (p Payload) GetClearableString(key string) (string, bool, error) {
	value, isSet, err := p.GetString(key)
	if err != nil || !isSet {
		return "", isSet, err
	}
	if value == nil {
		return "", true, nil
	}
	return *value, true, nil
}

func (p Payload) GetInt64(key string) (*int64, bool, error) {
	raw, ok := p[key]
	if !ok {
		return nil, false, nil
	}
	if raw == nil {
		return nil, true, nil
	}
	switch value := raw.(type) {
	case float64:
		converted := int64(value)
		if float64(converted) != value {
			return nil, true, fmt.Errorf("field[%s] should be an integer: %w", key, ErrorInvalidInput)
		}
		return &converted, true, nil
	case json.Number:
		converted, err := value.Int64()
		if err != nil {
			return nil, true, fmt.Errorf("field[%s] should be an integer: %w", key, ErrorInvalidInput)
		}
		return &converted, true, nil
	case int64:
		return &value, true, nil
	}
	return nil, true, fmt.Errorf("field[%s] should be an integer: %w", key, ErrorInvalidInput)
}

func (p Payload) GetBool(key string) (*bool, bool, error) {
	raw, ok := p[key]
	if !ok {
		return nil, false, nil
	}
	if raw == nil {
		return nil, true, nil
	}
	value, ok := raw.(bool)
	if !ok {
		return nil, true, fmt.Errorf("field[%s] should be a boolean: %w", key, ErrorInvalidInput)
	}
	return &value, true, nil
}

func (p Payload) GetInt64Slice(key string) ([]int64, bool, error) {
	raw, ok := p[key]
	if !ok {
		return nil, false, nil
	}
	if raw == nil {
		return []int64{}, true, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, true, fmt.Errorf("field[%s] should be a list of integers: %w", key, ErrorInvalidInput)
	}
	values := []int64{}
	for _, item := range items {
		switch number := item.(type) {
		case float64:
			if float64(int64(number)) != number {
				return nil, true, fmt.Errorf("field[%s] should be a list of integers: %w", key, ErrorInvalidInput)
			}
			values = append(values, int64(number))
		case json.Number:
			converted, err := number.Int64()
			if err != nil {
				return nil, true, fmt.Errorf("field[%s] should be a list of integers: %w", key, ErrorInvalidInput)
			}
			values = append(values, converted)
		default:
			return nil, true, fmt.Errorf("field[%s] should be a list of integers: %w", key, ErrorInvalidInput)
		}
	}
	return values, true, nil
}

// GetRaw re-encodes a structured value so it can be stored verbatim
func (p Payload) GetRaw(key string) (json.RawMessage, bool, error) {
	raw, ok := p[key]
	if !ok {
		return nil, false, nil
	}
	if raw == nil {
		return nil, true, nil
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, true, fmt.Errorf("field[%s] should be valid json: %w", key, ErrorInvalidInput)
	}
	return encoded, true, nil
}

// GetSeverity canonicalises the severity field, accepting both the
// canonical labels and the legacy numeric levels
func (p Payload) GetSeverity(key string) (*gateway.Severity, bool, error) {
	raw, ok := p[key]
	if !ok {
		return nil, false, nil
	}
	if raw == nil {
		return nil, true, nil
	}
	var label string
	switch value := raw.(type) {
	case string:
		label = value
	case float64:
		label = strconv.FormatInt(int64(value), 10)
	case json.Number:
		label = value.String()
	default:
		return nil, true, fmt.Errorf("field[%s] should be a severity: %w", key, ErrorInvalidInput)
	}
	severity, err := gateway.ParseSeverity(label)
	if err != nil {
		return nil, true, fmt.Errorf("field[%s]: %w: %w", key, err, ErrorInvalidInput)
	}
	return &severity, true, nil
}

func requireString(p Payload, key string) (string, error) {
	value, isSet, err := p.GetString(key)
	if err != nil {
		return "", err
	}
	if !isSet || value == nil || *value == "" {
		return "", fmt.Errorf("field[%s] is required: %w", key, ErrorInvalidInput)
	}
	return *value, nil
}
