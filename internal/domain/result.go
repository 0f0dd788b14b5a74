package domain

// TextContent is a single text block inside a call result.
type TextContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// CallResult is the uniform envelope returned for every invocation.
// Exactly one of the two shapes is produced: a success carrying serialized
// content, or a failure carrying a message and a protocol error code.
type CallResult struct {
	Content []TextContent `json:"content"`
	IsError bool          `json:"isError,omitempty"`
	Code    int           `json:"code,omitempty"` // set only when IsError
}

// SuccessResult wraps serialized payload text in a success envelope.
func SuccessResult(text string) CallResult {
	return CallResult{
		Content: []TextContent{{Type: "text", Text: text}},
	}
}

// FailureResult wraps a classified failure in an error envelope.
func FailureResult(code int, message string) CallResult {
	return CallResult{
		Content: []TextContent{{Type: "text", Text: message}},
		IsError: true,
		Code:    code,
	}
}

// Text returns the first content block's text, or "" for an empty envelope.
func (r CallResult) Text() string {
	if len(r.Content) == 0 {
		return ""
	}
	return r.Content[0].Text
}
