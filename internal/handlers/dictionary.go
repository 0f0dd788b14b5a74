package handlers

import (
	"context"
	"log/slog"

	"github.com/abaplab/adtbridge/internal/adapter/outbound/adt"
	"github.com/abaplab/adtbridge/internal/domain"
)

// DictionaryGroup exposes data-dictionary and data-access operations.
type DictionaryGroup struct {
	client adt.Client
	logger *slog.Logger
}

func NewDictionaryGroup(client adt.Client, logger *slog.Logger) *DictionaryGroup {
	return &DictionaryGroup{
		client: client,
		logger: logger.With("component", "dictionary_handlers"),
	}
}

func (g *DictionaryGroup) Name() string { return "dictionary" }

func (g *DictionaryGroup) Tools() []domain.Tool {
	return []domain.Tool{
		{
			Name:        "tableContents",
			Description: "Read the contents of a database table or view.",
			InputSchema: domain.ObjectSchema(map[string]domain.JSONSchemaProps{
				"ddicEntityName": {Type: "string", Description: "Name of the table or view"},
				"rowNumber":      {Type: "number", Description: "Maximum number of rows to return (default 100)"},
			}, "ddicEntityName"),
		},
		{
			Name:        "runQuery",
			Description: "Run a freestyle SQL query against the backend.",
			InputSchema: domain.ObjectSchema(map[string]domain.JSONSchemaProps{
				"sqlQuery":  {Type: "string", Description: "SQL query text"},
				"rowNumber": {Type: "number", Description: "Maximum number of rows to return (default 100)"},
			}, "sqlQuery"),
		},
		{
			Name:        "ddicElement",
			Description: "Describe a dictionary element (table, structure, data element or CDS entity).",
			InputSchema: domain.ObjectSchema(map[string]domain.JSONSchemaProps{
				"path":                    {Type: "string", Description: "Element path, e.g. a table name or entity.field"},
				"getTargetForAssociation": {Type: "boolean", Description: "Resolve the association target instead of the element"},
			}, "path"),
		},
	}
}

func (g *DictionaryGroup) Handle(ctx context.Context, toolName string, args map[string]any) (any, error) {
	if err := g.client.EnsureSession(ctx); err != nil {
		return nil, backendFailure("failed to establish session", err)
	}

	switch toolName {
	case "tableContents":
		result, err := g.client.TableContents(ctx, stringArg(args, "ddicEntityName"), intArg(args, "rowNumber", 100))
		if err != nil {
			return nil, backendFailure("failed to read table contents", err)
		}
		return success("contents", result), nil

	case "runQuery":
		result, err := g.client.RunQuery(ctx, stringArg(args, "sqlQuery"), intArg(args, "rowNumber", 100))
		if err != nil {
			return nil, backendFailure("failed to run query", err)
		}
		return success("result", result), nil

	case "ddicElement":
		result, err := g.client.DDICElement(ctx, stringArg(args, "path"), boolArg(args, "getTargetForAssociation"))
		if err != nil {
			return nil, backendFailure("failed to describe dictionary element", err)
		}
		return success("element", result), nil

	default:
		return nil, errUnknownTool(g.Name(), toolName)
	}
}
