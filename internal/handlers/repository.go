package handlers

import (
	"context"
	"log/slog"

	"github.com/abaplab/adtbridge/internal/adapter/outbound/adt"
	"github.com/abaplab/adtbridge/internal/domain"
)

// RepositoryGroup exposes object-metadata operations: structure, source,
// search and revision history of repository objects.
type RepositoryGroup struct {
	client adt.Client
	logger *slog.Logger
}

func NewRepositoryGroup(client adt.Client, logger *slog.Logger) *RepositoryGroup {
	return &RepositoryGroup{
		client: client,
		logger: logger.With("component", "repository_handlers"),
	}
}

func (g *RepositoryGroup) Name() string { return "repository" }

func (g *RepositoryGroup) Tools() []domain.Tool {
	return []domain.Tool{
		{
			Name:        "objectStructure",
			Description: "Read the structure of a repository object (components, includes, metadata).",
			InputSchema: domain.ObjectSchema(map[string]domain.JSONSchemaProps{
				"objectUrl": {Type: "string", Description: "ADT URL of the object, e.g. /sap/bc/adt/programs/programs/zexample"},
				"version":   {Type: "string", Description: "Object version: active or inactive"},
			}, "objectUrl"),
		},
		{
			Name:        "objectSource",
			Description: "Read the source code of a repository object.",
			InputSchema: domain.ObjectSchema(map[string]domain.JSONSchemaProps{
				"objectSourceUrl": {Type: "string", Description: "ADT source URL, e.g. .../source/main"},
				"version":         {Type: "string", Description: "Object version: active or inactive"},
			}, "objectSourceUrl"),
		},
		{
			Name:        "searchObject",
			Description: "Search repository objects by name pattern.",
			InputSchema: domain.ObjectSchema(map[string]domain.JSONSchemaProps{
				"query":      {Type: "string", Description: "Search pattern, wildcards allowed"},
				"objectType": {Type: "string", Description: "Restrict to an object type, e.g. CLAS/OC"},
				"max":        {Type: "number", Description: "Maximum number of results (default 100)"},
			}, "query"),
		},
		{
			Name:        "revisions",
			Description: "List the revision history of a repository object.",
			InputSchema: domain.ObjectSchema(map[string]domain.JSONSchemaProps{
				"objectUrl": {Type: "string", Description: "ADT URL of the object"},
				"include":   {Type: "string", Description: "Class include to inspect, e.g. definitions or testclasses"},
			}, "objectUrl"),
		},
	}
}

func (g *RepositoryGroup) Handle(ctx context.Context, toolName string, args map[string]any) (any, error) {
	if err := g.client.EnsureSession(ctx); err != nil {
		return nil, backendFailure("failed to establish session", err)
	}

	switch toolName {
	case "objectStructure":
		result, err := g.client.ObjectStructure(ctx, stringArg(args, "objectUrl"), stringArg(args, "version"))
		if err != nil {
			return nil, backendFailure("failed to read object structure", err)
		}
		return success("structure", result), nil

	case "objectSource":
		result, err := g.client.ObjectSource(ctx, stringArg(args, "objectSourceUrl"), stringArg(args, "version"))
		if err != nil {
			return nil, backendFailure("failed to read object source", err)
		}
		return success("source", result), nil

	case "searchObject":
		result, err := g.client.SearchObject(ctx, stringArg(args, "query"), stringArg(args, "objectType"), intArg(args, "max", 100))
		if err != nil {
			return nil, backendFailure("failed to search objects", err)
		}
		return success("results", result), nil

	case "revisions":
		result, err := g.client.Revisions(ctx, stringArg(args, "objectUrl"), stringArg(args, "include"))
		if err != nil {
			return nil, backendFailure("failed to read revisions", err)
		}
		return success("revisions", result), nil

	default:
		return nil, errUnknownTool(g.Name(), toolName)
	}
}
