package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abaplab/adtbridge/internal/domain"
)

func TestJSONSchemaProps_ValidateArgs(t *testing.T) {
	schema := domain.ObjectSchema(map[string]domain.JSONSchemaProps{
		"url":     {Type: "string"},
		"line":    {Type: "number"},
		"active":  {Type: "boolean"},
		"options": {Type: "object", Properties: map[string]domain.JSONSchemaProps{"depth": {Type: "number"}}},
		"tags":    {Type: "array", Items: &domain.JSONSchemaProps{Type: "string"}},
	}, "url")

	tests := []struct {
		name    string
		args    map[string]any
		wantErr string
	}{
		{
			name: "valid args",
			args: map[string]any{"url": "/x", "line": 3.0, "active": true},
		},
		{
			name: "json decoder numeric form accepted",
			args: map[string]any{"url": "/x", "line": json.Number("3")},
		},
		{
			name:    "missing required argument",
			args:    map[string]any{"line": 3.0},
			wantErr: `missing required argument "url"`,
		},
		{
			name:    "mistyped string",
			args:    map[string]any{"url": 42},
			wantErr: `argument "url" must be of type string`,
		},
		{
			name:    "mistyped boolean",
			args:    map[string]any{"url": "/x", "active": "yes"},
			wantErr: `argument "active" must be of type boolean`,
		},
		{
			name:    "mistyped number",
			args:    map[string]any{"url": "/x", "line": "three"},
			wantErr: `argument "line" must be of type number`,
		},
		{
			name:    "mistyped nested object field",
			args:    map[string]any{"url": "/x", "options": map[string]any{"depth": "deep"}},
			wantErr: `argument "depth" must be of type number`,
		},
		{
			name:    "mistyped array item",
			args:    map[string]any{"url": "/x", "tags": []any{"a", 1}},
			wantErr: `argument "tags[1]" must be of type string`,
		},
		{
			name: "undeclared properties pass through",
			args: map[string]any{"url": "/x", "extra": struct{}{}},
		},
		{
			name: "explicit null is treated as absent",
			args: map[string]any{"url": "/x", "line": nil},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := schema.ValidateArgs(tt.args)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}
