package envelope_test

import (
	"encoding/json"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abaplab/adtbridge/internal/domain"
	"github.com/abaplab/adtbridge/internal/envelope"
)

func TestEncodeSuccess(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		wantText string
	}{
		{
			name:     "plain map",
			value:    map[string]any{"status": "success"},
			wantText: `{"status":"success"}`,
		},
		{
			name: "big integer becomes its decimal string",
			value: map[string]any{
				"count": new(big.Int).SetUint64(9007199254740993),
			},
			wantText: `{"count":"9007199254740993"}`,
		},
		{
			name: "oversized json.Number becomes a string",
			value: map[string]any{
				"count": json.Number("9007199254740993"),
			},
			wantText: `{"count":"9007199254740993"}`,
		},
		{
			name: "safe json.Number stays numeric",
			value: map[string]any{
				"count": json.Number("42"),
			},
			wantText: `{"count":42}`,
		},
		{
			name: "fractional json.Number stays numeric",
			value: map[string]any{
				"ratio": json.Number("0.25"),
			},
			wantText: `{"ratio":0.25}`,
		},
		{
			name: "nested values are normalized",
			value: map[string]any{
				"rows": []any{
					map[string]any{"id": json.Number("18446744073709551617")},
				},
			},
			wantText: `{"rows":[{"id":"18446744073709551617"}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := envelope.EncodeSuccess(tt.value)
			require.False(t, result.IsError)
			assert.Equal(t, tt.wantText, result.Text())
		})
	}
}

// A value json cannot marshal must degrade to an internal-error envelope,
// never propagate the serialization fault.
func TestEncodeSuccess_UnmarshalableValueDegrades(t *testing.T) {
	result := envelope.EncodeSuccess(map[string]any{"bad": make(chan int)})

	assert.True(t, result.IsError)
	assert.Equal(t, domain.CodeInternalError, result.Code)
	assert.Equal(t, domain.RedactedInternalMessage, result.Text())
}

func TestEncodeFailure(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    int
		wantMessage string
	}{
		{
			name:        "protocol error surfaces code and message verbatim",
			err:         domain.NewMethodNotFoundError("unknownTool"),
			wantCode:    domain.CodeMethodNotFound,
			wantMessage: "Method not found: unknownTool",
		},
		{
			name:        "wrapped protocol error is still classified",
			err:         errorsJoin(domain.NewInvalidParamsError(`missing required argument "url"`)),
			wantCode:    domain.CodeInvalidParams,
			wantMessage: `Invalid params: missing required argument "url"`,
		},
		{
			name:        "unclassified error is redacted",
			err:         errors.New("dial tcp: connection refused"),
			wantCode:    domain.CodeInternalError,
			wantMessage: domain.RedactedInternalMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := envelope.EncodeFailure(tt.err)
			assert.True(t, result.IsError)
			assert.Equal(t, tt.wantCode, result.Code)
			assert.Equal(t, tt.wantMessage, result.Text())
		})
	}
}

func errorsJoin(err error) error {
	return errors.Join(errors.New("handler: call failed"), err)
}
