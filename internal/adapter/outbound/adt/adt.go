// Package adt talks to an ABAP Development Tools (ADT) REST backend.
// The handler groups consume the Client interface; the HTTP implementation
// below is deliberately thin plumbing around the backend's endpoints.
package adt

import "context"

// Client is the named collection of backend operations the handler groups
// dispatch to. Every operation returns opaque structured data (decoded JSON)
// or fails with an error; failures originating from the backend are *Error
// values carrying the backend's message and optional nested details.
//
// The client is stateful: it tracks an authenticated session shared by all
// callers. EnsureSession is safe to call concurrently; overlapping callers
// await a single in-flight login.
type Client interface {
	// Session lifecycle.
	EnsureSession(ctx context.Context) error
	DropSession(ctx context.Context) (any, error)

	// Object metadata.
	ObjectStructure(ctx context.Context, objectURL, version string) (any, error)
	ObjectSource(ctx context.Context, sourceURL, version string) (any, error)
	SearchObject(ctx context.Context, query, objectType string, maxResults int) (any, error)
	Revisions(ctx context.Context, objectURL, include string) (any, error)

	// Class and type introspection.
	ClassComponents(ctx context.Context, classURL string) (any, error)
	ClassIncludes(ctx context.Context, className string) (any, error)
	TypeHierarchy(ctx context.Context, objectURL string, line, column int, superTypes bool) (any, error)

	// Code analysis and cross-reference.
	UsageReferences(ctx context.Context, objectURL string, line, column int) (any, error)
	FindDefinition(ctx context.Context, objectURL string, line, startColumn, endColumn int, implementation bool) (any, error)
	SyntaxCheck(ctx context.Context, objectURL, code string) (any, error)

	// Dictionary and data access.
	TableContents(ctx context.Context, tableName string, rowNumber int) (any, error)
	RunQuery(ctx context.Context, sqlQuery string, rowNumber int) (any, error)
	DDICElement(ctx context.Context, path string, targetForAssociation bool) (any, error)

	// Discovery.
	FeatureDetails(ctx context.Context, title string) (any, error)
	Discovery(ctx context.Context) (any, error)
}

// Error is a backend operation failure. Message holds the top-level error
// text; Details may carry structured fields extracted from the response
// body, including a nested "message" that is usually more specific than the
// top-level one.
type Error struct {
	StatusCode int
	Message    string
	Details    map[string]any
}

func (e *Error) Error() string {
	return e.Message
}

// DetailMessage returns the most specific human-readable message available,
// preferring the nested structured message over the top-level one.
func (e *Error) DetailMessage() string {
	if e.Details != nil {
		if m, ok := e.Details["message"].(string); ok && m != "" {
			return m
		}
	}
	return e.Message
}
