// Package envelope serializes invocation outcomes into the uniform
// success/failure envelope every caller receives.
package envelope

import (
	"encoding/json"
	"errors"
	"math/big"
	"strings"

	"github.com/abaplab/adtbridge/internal/domain"
)

// maxSafeInteger is the largest integer an IEEE-754 double represents
// exactly. Integers beyond it must not be emitted as JSON numbers.
const maxSafeInteger = 1<<53 - 1

// EncodeSuccess serializes a payload into a success envelope. Values of
// arbitrary-precision-integer kind are converted to their decimal string
// form first; if serialization fails for any other reason the codec degrades
// to an internal-error envelope instead of propagating the fault.
func EncodeSuccess(value any) domain.CallResult {
	data, err := json.Marshal(normalize(value))
	if err != nil {
		return domain.FailureResult(domain.CodeInternalError, domain.RedactedInternalMessage)
	}
	return domain.SuccessResult(string(data))
}

// EncodeFailure serializes a fault into a failure envelope. Faults carrying
// a protocol error code surface their code and message verbatim; everything
// else maps to a generic internal error with a fixed, non-leaking message.
func EncodeFailure(err error) domain.CallResult {
	var perr *domain.ProtocolError
	if errors.As(err, &perr) {
		return domain.FailureResult(perr.Code, perr.Message)
	}
	return domain.FailureResult(domain.CodeInternalError, domain.RedactedInternalMessage)
}

// normalize walks a decoded value and rewrites anything plain JSON
// marshaling would mangle: big integers become decimal strings, and
// json.Number values keep their exact textual form (or become strings when
// they exceed the safe-integer range).
func normalize(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = normalize(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normalize(item)
		}
		return out
	case *big.Int:
		return v.String()
	case big.Int:
		return v.String()
	case json.Number:
		return normalizeNumber(v)
	default:
		return value
	}
}

func normalizeNumber(n json.Number) any {
	s := string(n)
	if strings.ContainsAny(s, ".eE") {
		// Fractional or exponent form; emit verbatim.
		return json.RawMessage(s)
	}
	i, err := n.Int64()
	if err != nil || i > maxSafeInteger || i < -maxSafeInteger {
		return s
	}
	return json.RawMessage(s)
}
