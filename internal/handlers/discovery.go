package handlers

import (
	"context"
	"log/slog"

	"github.com/abaplab/adtbridge/internal/adapter/outbound/adt"
	"github.com/abaplab/adtbridge/internal/domain"
)

// DiscoveryGroup exposes backend discovery and session operations.
type DiscoveryGroup struct {
	client adt.Client
	logger *slog.Logger
}

func NewDiscoveryGroup(client adt.Client, logger *slog.Logger) *DiscoveryGroup {
	return &DiscoveryGroup{
		client: client,
		logger: logger.With("component", "discovery_handlers"),
	}
}

func (g *DiscoveryGroup) Name() string { return "discovery" }

func (g *DiscoveryGroup) Tools() []domain.Tool {
	return []domain.Tool{
		{
			Name:        "featureDetails",
			Description: "Describe a backend feature by its discovery title.",
			InputSchema: domain.ObjectSchema(map[string]domain.JSONSchemaProps{
				"title": {Type: "string", Description: "Feature title as listed by the discovery service"},
			}, "title"),
		},
		{
			Name:        "adtDiscovery",
			Description: "Read the backend's discovery document listing all available services.",
			InputSchema: domain.ObjectSchema(nil),
		},
		{
			Name:        "dropSession",
			Description: "Terminate the current backend session. The next call logs in again.",
			InputSchema: domain.ObjectSchema(nil),
		},
	}
}

func (g *DiscoveryGroup) Handle(ctx context.Context, toolName string, args map[string]any) (any, error) {
	// dropSession must work without establishing a session first.
	if toolName == "dropSession" {
		result, err := g.client.DropSession(ctx)
		if err != nil {
			return nil, backendFailure("failed to drop session", err)
		}
		return success("result", result), nil
	}

	if err := g.client.EnsureSession(ctx); err != nil {
		return nil, backendFailure("failed to establish session", err)
	}

	switch toolName {
	case "featureDetails":
		result, err := g.client.FeatureDetails(ctx, stringArg(args, "title"))
		if err != nil {
			return nil, backendFailure("failed to read feature details", err)
		}
		return success("features", result), nil

	case "adtDiscovery":
		result, err := g.client.Discovery(ctx)
		if err != nil {
			return nil, backendFailure("failed to read discovery document", err)
		}
		return success("discovery", result), nil

	default:
		return nil, errUnknownTool(g.Name(), toolName)
	}
}
