// Package mcpsrv registers the dispatcher's catalog on a mark3labs/mcp-go
// server and adapts between the domain envelope and the MCP wire types.
package mcpsrv

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	mcpGoServer "github.com/mark3labs/mcp-go/server"

	"github.com/abaplab/adtbridge/internal/domain"
	"github.com/abaplab/adtbridge/internal/usecase"
)

// Register adds every catalog tool to the MCP server. Each handler func
// delegates to the dispatcher, which owns routing, validation and envelope
// conversion; no error ever propagates through the handler return value.
func Register(srv *mcpGoServer.MCPServer, dispatcher *usecase.Dispatcher, logger *slog.Logger) error {
	log := logger.With("component", "mcpsrv")

	for _, tool := range dispatcher.ListTools() {
		raw, err := json.Marshal(tool.InputSchema)
		if err != nil {
			return fmt.Errorf("failed to marshal input schema for tool %q: %w", tool.Name, err)
		}

		name := tool.Name
		srv.AddTool(mcp.NewToolWithRawSchema(tool.Name, tool.Description, raw),
			func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return ToMCPResult(dispatcher.Invoke(ctx, name, req.GetArguments())), nil
			})
		log.Debug("Registered tool.", slog.String("tool", name))
	}

	log.Info("Tool catalog registered.", slog.Int("count", len(dispatcher.ListTools())))
	return nil
}

// ToMCPResult converts the domain envelope into the mcp-go result type.
// The protocol error code stays inside the envelope; on the MCP wire only
// the isError flag and the message travel.
func ToMCPResult(result domain.CallResult) *mcp.CallToolResult {
	if result.IsError {
		return mcp.NewToolResultError(result.Text())
	}
	return mcp.NewToolResultText(result.Text())
}
