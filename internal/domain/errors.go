package domain

import "fmt"

// JSON-RPC error codes used on the MCP wire.
const (
	CodeParseError     = -32700
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// RedactedInternalMessage is the fixed message returned for faults that no
// handler classified. Raw internal details must never reach the caller.
const RedactedInternalMessage = "Internal server error"

// ProtocolError is a fault that carries a protocol error code. The envelope
// codec surfaces its code and message verbatim; every other error is mapped
// to CodeInternalError with RedactedInternalMessage.
type ProtocolError struct {
	Code    int
	Message string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol error %d: %s", e.Code, e.Message)
}

// NewMethodNotFoundError reports an invocation of a tool name absent from
// the routing table. This is a normal, expected outcome, never a fault that
// may escape the dispatcher.
func NewMethodNotFoundError(name string) *ProtocolError {
	return &ProtocolError{
		Code:    CodeMethodNotFound,
		Message: fmt.Sprintf("Method not found: %s", name),
	}
}

// NewInvalidParamsError reports an argument bag that failed validation
// against the tool's declared input schema.
func NewInvalidParamsError(reason string) *ProtocolError {
	return &ProtocolError{
		Code:    CodeInvalidParams,
		Message: fmt.Sprintf("Invalid params: %s", reason),
	}
}

// NewBackendError classifies a backend operation failure. The message is
// assembled by the handler group from the backend fault and is considered
// safe to surface.
func NewBackendError(message string) *ProtocolError {
	return &ProtocolError{
		Code:    CodeInternalError,
		Message: message,
	}
}
