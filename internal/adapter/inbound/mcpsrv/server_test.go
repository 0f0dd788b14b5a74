package mcpsrv_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	mcpGoServer "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abaplab/adtbridge/internal/adapter/inbound/mcpsrv"
	"github.com/abaplab/adtbridge/internal/domain"
	"github.com/abaplab/adtbridge/internal/handlers"
	"github.com/abaplab/adtbridge/internal/telemetry"
	"github.com/abaplab/adtbridge/internal/usecase"
)

type staticGroup struct{}

func (staticGroup) Name() string { return "static" }

func (staticGroup) Tools() []domain.Tool {
	return []domain.Tool{{
		Name:        "echo",
		Description: "Echo the given value back.",
		InputSchema: domain.ObjectSchema(map[string]domain.JSONSchemaProps{
			"value": {Type: "string"},
		}, "value"),
	}}
}

func (staticGroup) Handle(ctx context.Context, toolName string, args map[string]any) (any, error) {
	return map[string]any{"status": "success", "value": args["value"]}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRegister(t *testing.T) {
	dispatcher := usecase.NewDispatcher(
		[]handlers.Group{staticGroup{}}, telemetry.NewRecorder(), testLogger())
	srv := mcpGoServer.NewMCPServer("adtbridge-test", "0.0.0")

	require.NoError(t, mcpsrv.Register(srv, dispatcher, testLogger()))
}

func TestToMCPResult(t *testing.T) {
	tests := []struct {
		name      string
		result    domain.CallResult
		wantError bool
		wantText  string
	}{
		{
			name:     "success maps to text content",
			result:   domain.SuccessResult(`{"status":"success"}`),
			wantText: `{"status":"success"}`,
		},
		{
			name:      "failure maps to an error result",
			result:    domain.FailureResult(domain.CodeMethodNotFound, "Method not found: nope"),
			wantError: true,
			wantText:  "Method not found: nope",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := mcpsrv.ToMCPResult(tt.result)

			assert.Equal(t, tt.wantError, out.IsError)
			require.Len(t, out.Content, 1)
			text, ok := out.Content[0].(mcp.TextContent)
			require.True(t, ok)
			assert.Equal(t, tt.wantText, text.Text)
		})
	}
}
