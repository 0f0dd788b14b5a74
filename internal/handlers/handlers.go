// Package handlers contains the tool handler groups. Each group contributes
// a slice of descriptors to the catalog and executes the invocations it
// declares: one session-ensure step, exactly one backend call, and a tagged
// success payload whose key is part of the operation's public contract.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"github.com/abaplab/adtbridge/internal/adapter/outbound/adt"
	"github.com/abaplab/adtbridge/internal/domain"
)

// Group is a cohesive set of tools sharing a backend-domain affinity.
// The set of names in Tools() must exactly match the set Handle accepts;
// a name routed here but not implemented is a defect surfaced as an error,
// never silently ignored.
type Group interface {
	Name() string
	Tools() []domain.Tool
	Handle(ctx context.Context, toolName string, args map[string]any) (any, error)
}

// success tags a backend result with the operation's payload key.
func success(payloadKey string, result any) map[string]any {
	return map[string]any{
		"status":   "success",
		payloadKey: result,
	}
}

// backendFailure classifies a backend fault. Structured backend errors keep
// their human-readable message (preferring the nested one); anything else
// stays unclassified and gets redacted at the envelope codec.
func backendFailure(action string, err error) error {
	var adtErr *adt.Error
	if errors.As(err, &adtErr) {
		return domain.NewBackendError(fmt.Sprintf("%s: %s", action, adtErr.DetailMessage()))
	}
	return fmt.Errorf("%s: %w", action, err)
}

// errUnknownTool reports a routing-table defect: the dispatcher sent this
// group a name it never declared.
func errUnknownTool(group, toolName string) error {
	return fmt.Errorf("tool %q is not implemented by the %s group", toolName, group)
}

func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

// intArg tolerates the numeric representations a JSON decoder or an
// in-process caller may produce. Absent or unusable values fall back to the
// default.
func intArg(args map[string]any, key string, def int) int {
	switch v := args[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return int(i)
		}
	case *big.Int:
		if v.IsInt64() {
			return int(v.Int64())
		}
	}
	return def
}

func boolArg(args map[string]any, key string) bool {
	b, _ := args[key].(bool)
	return b
}
