package domain

import (
	"encoding/json"
	"fmt"
	"math/big"
)

// ValidateArgs checks an argument bag against an object-typed input schema:
// every required property must be present, and every declared property that
// is present must match its declared primitive kind. Properties not declared
// in the schema are passed through untouched; rejecting them is the backend's
// business, not ours.
func (s JSONSchemaProps) ValidateArgs(args map[string]any) error {
	if s.Type != "object" {
		return nil
	}
	for _, name := range s.Required {
		if _, ok := args[name]; !ok {
			return fmt.Errorf("missing required argument %q", name)
		}
	}
	for name, prop := range s.Properties {
		value, ok := args[name]
		if !ok || value == nil {
			continue
		}
		if err := prop.validateValue(name, value); err != nil {
			return err
		}
	}
	return nil
}

func (s JSONSchemaProps) validateValue(name string, value any) error {
	switch s.Type {
	case "string":
		if _, ok := value.(string); !ok {
			return typeMismatch(name, "string", value)
		}
	case "boolean":
		if _, ok := value.(bool); !ok {
			return typeMismatch(name, "boolean", value)
		}
	case "number", "integer":
		if !isNumeric(value) {
			return typeMismatch(name, s.Type, value)
		}
	case "object":
		nested, ok := value.(map[string]any)
		if !ok {
			return typeMismatch(name, "object", value)
		}
		return s.ValidateArgs(nested)
	case "array":
		items, ok := value.([]any)
		if !ok {
			return typeMismatch(name, "array", value)
		}
		if s.Items != nil {
			for i, item := range items {
				if err := s.Items.validateValue(fmt.Sprintf("%s[%d]", name, i), item); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// isNumeric accepts the representations a JSON decoder or an in-process
// caller may hand us for a numeric argument.
func isNumeric(value any) bool {
	switch value.(type) {
	case float64, float32, int, int32, int64, json.Number, *big.Int:
		return true
	}
	return false
}

func typeMismatch(name, want string, got any) error {
	return fmt.Errorf("argument %q must be of type %s, got %T", name, want, got)
}
