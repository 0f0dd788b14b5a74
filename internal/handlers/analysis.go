package handlers

import (
	"context"
	"log/slog"

	"github.com/abaplab/adtbridge/internal/adapter/outbound/adt"
	"github.com/abaplab/adtbridge/internal/domain"
)

// AnalysisGroup exposes code-analysis and cross-reference operations.
type AnalysisGroup struct {
	client adt.Client
	logger *slog.Logger
}

func NewAnalysisGroup(client adt.Client, logger *slog.Logger) *AnalysisGroup {
	return &AnalysisGroup{
		client: client,
		logger: logger.With("component", "analysis_handlers"),
	}
}

func (g *AnalysisGroup) Name() string { return "analysis" }

func (g *AnalysisGroup) Tools() []domain.Tool {
	return []domain.Tool{
		{
			Name:        "usageReferences",
			Description: "Find all usages of the symbol at a source position (where-used list).",
			InputSchema: domain.ObjectSchema(map[string]domain.JSONSchemaProps{
				"url":    {Type: "string", Description: "ADT URL of the source"},
				"line":   {Type: "number", Description: "Line of the symbol"},
				"column": {Type: "number", Description: "Column of the symbol"},
			}, "url"),
		},
		{
			Name:        "findDefinition",
			Description: "Navigate to the definition (or implementation) of the symbol at a source position.",
			InputSchema: domain.ObjectSchema(map[string]domain.JSONSchemaProps{
				"url":            {Type: "string", Description: "ADT URL of the source"},
				"line":           {Type: "number", Description: "Line of the symbol"},
				"startColumn":    {Type: "number", Description: "Start column of the symbol"},
				"endColumn":      {Type: "number", Description: "End column of the symbol"},
				"implementation": {Type: "boolean", Description: "Navigate to the implementation instead of the definition"},
			}, "url", "line", "startColumn", "endColumn"),
		},
		{
			Name:        "syntaxCheck",
			Description: "Run a syntax check on a source object.",
			InputSchema: domain.ObjectSchema(map[string]domain.JSONSchemaProps{
				"url":  {Type: "string", Description: "ADT URL of the source"},
				"code": {Type: "string", Description: "Source code to check instead of the saved version"},
			}, "url"),
		},
	}
}

func (g *AnalysisGroup) Handle(ctx context.Context, toolName string, args map[string]any) (any, error) {
	if err := g.client.EnsureSession(ctx); err != nil {
		return nil, backendFailure("failed to establish session", err)
	}

	switch toolName {
	case "usageReferences":
		result, err := g.client.UsageReferences(ctx, stringArg(args, "url"),
			intArg(args, "line", 1), intArg(args, "column", 1))
		if err != nil {
			return nil, backendFailure("failed to find usage references", err)
		}
		return success("references", result), nil

	case "findDefinition":
		result, err := g.client.FindDefinition(ctx, stringArg(args, "url"),
			intArg(args, "line", 1), intArg(args, "startColumn", 1), intArg(args, "endColumn", 1),
			boolArg(args, "implementation"))
		if err != nil {
			return nil, backendFailure("failed to find definition", err)
		}
		return success("definition", result), nil

	case "syntaxCheck":
		result, err := g.client.SyntaxCheck(ctx, stringArg(args, "url"), stringArg(args, "code"))
		if err != nil {
			return nil, backendFailure("failed to run syntax check", err)
		}
		return success("messages", result), nil

	default:
		return nil, errUnknownTool(g.Name(), toolName)
	}
}
