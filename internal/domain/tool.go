package domain

// Tool represents a callable operation exposed to MCP clients,
// compliant with the Model Context Protocol (MCP).
// Based on MCP Spec 2025-03-26: https://modelcontextprotocol.io/specification/2025-03-26
type Tool struct {
	// Name is the stable identifier used for routing.
	// It MUST be unique across the whole aggregated catalog.
	Name string `json:"name"`

	// Description provides a natural language explanation of what the tool does.
	// This is crucial for the LLM to understand when to use the tool.
	Description string `json:"description"`

	// InputSchema defines the structure of the data the tool expects.
	// Uses JSON Schema format.
	InputSchema JSONSchemaProps `json:"inputSchema"`
}

// JSONSchemaProps represents the properties of a JSON schema,
// used for the input definitions of MCP tools.
// This is a simplified subset; nested objects and arrays are supported,
// everything else a full JSON schema library would add is not needed for
// the static catalog this server carries.
type JSONSchemaProps struct {
	Type        string                     `json:"type"` // "object", "string", "number", "integer", "boolean", "array"
	Description string                     `json:"description,omitempty"`
	Properties  map[string]JSONSchemaProps `json:"properties,omitempty"` // For type "object"
	Required    []string                   `json:"required,omitempty"`   // For type "object"
	Items       *JSONSchemaProps           `json:"items,omitempty"`      // For type "array"
}

// ObjectSchema is a convenience constructor for the common case of an
// object-typed input schema.
func ObjectSchema(properties map[string]JSONSchemaProps, required ...string) JSONSchemaProps {
	return JSONSchemaProps{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}
