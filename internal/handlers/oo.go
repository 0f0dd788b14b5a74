package handlers

import (
	"context"
	"log/slog"

	"github.com/abaplab/adtbridge/internal/adapter/outbound/adt"
	"github.com/abaplab/adtbridge/internal/domain"
)

// OOGroup exposes class and type introspection operations.
type OOGroup struct {
	client adt.Client
	logger *slog.Logger
}

func NewOOGroup(client adt.Client, logger *slog.Logger) *OOGroup {
	return &OOGroup{
		client: client,
		logger: logger.With("component", "oo_handlers"),
	}
}

func (g *OOGroup) Name() string { return "oo" }

func (g *OOGroup) Tools() []domain.Tool {
	return []domain.Tool{
		{
			Name:        "classComponents",
			Description: "List the components (methods, attributes, events) of a class.",
			InputSchema: domain.ObjectSchema(map[string]domain.JSONSchemaProps{
				"url": {Type: "string", Description: "ADT URL of the class"},
			}, "url"),
		},
		{
			Name:        "classIncludes",
			Description: "List the source includes of a class (definitions, implementations, macros, test classes).",
			InputSchema: domain.ObjectSchema(map[string]domain.JSONSchemaProps{
				"clas": {Type: "string", Description: "Class name"},
			}, "clas"),
		},
		{
			Name:        "typeHierarchy",
			Description: "Resolve the type hierarchy (super or sub types) at a source position.",
			InputSchema: domain.ObjectSchema(map[string]domain.JSONSchemaProps{
				"url":        {Type: "string", Description: "ADT URL of the source"},
				"line":       {Type: "number", Description: "Line of the type reference"},
				"column":     {Type: "number", Description: "Column of the type reference"},
				"superTypes": {Type: "boolean", Description: "Resolve super types instead of sub types"},
			}, "url", "line", "column"),
		},
	}
}

func (g *OOGroup) Handle(ctx context.Context, toolName string, args map[string]any) (any, error) {
	if err := g.client.EnsureSession(ctx); err != nil {
		return nil, backendFailure("failed to establish session", err)
	}

	switch toolName {
	case "classComponents":
		result, err := g.client.ClassComponents(ctx, stringArg(args, "url"))
		if err != nil {
			return nil, backendFailure("failed to read class components", err)
		}
		return success("components", result), nil

	case "classIncludes":
		result, err := g.client.ClassIncludes(ctx, stringArg(args, "clas"))
		if err != nil {
			return nil, backendFailure("failed to read class includes", err)
		}
		return success("includes", result), nil

	case "typeHierarchy":
		result, err := g.client.TypeHierarchy(ctx, stringArg(args, "url"),
			intArg(args, "line", 1), intArg(args, "column", 1), boolArg(args, "superTypes"))
		if err != nil {
			return nil, backendFailure("failed to resolve type hierarchy", err)
		}
		return success("hierarchy", result), nil

	default:
		return nil, errUnknownTool(g.Name(), toolName)
	}
}
