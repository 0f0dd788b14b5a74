// Package usecase contains the dispatch core: catalog aggregation, routing,
// validation, envelope conversion and metrics observation.
package usecase

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/abaplab/adtbridge/internal/domain"
	"github.com/abaplab/adtbridge/internal/envelope"
	"github.com/abaplab/adtbridge/internal/handlers"
	"github.com/abaplab/adtbridge/internal/telemetry"
)

const tracerName = "github.com/abaplab/adtbridge"

// HealthcheckToolName is the built-in liveness probe. It never touches a
// handler group or the backend.
const HealthcheckToolName = "healthcheck"

func healthcheckTool() domain.Tool {
	return domain.Tool{
		Name:        HealthcheckToolName,
		Description: "Check that the server is alive. Performs no backend call.",
		InputSchema: domain.ObjectSchema(nil),
	}
}

// Dispatcher is the single entry point for invocations. The routing table
// is built once at construction from each group's declared names; no fault
// may cross the Invoke boundary unconverted.
type Dispatcher struct {
	groups  []handlers.Group
	routes  map[string]handlers.Group
	schemas map[string]domain.JSONSchemaProps
	metrics *telemetry.Recorder
	logger  *slog.Logger
	tracer  trace.Tracer
	now     func() time.Time
}

// NewDispatcher builds the routing table. Tool names are globally unique by
// construction; a collision is a configuration defect, resolved
// first-registered-wins and logged loudly rather than recovered from.
func NewDispatcher(groups []handlers.Group, metrics *telemetry.Recorder, logger *slog.Logger) *Dispatcher {
	d := &Dispatcher{
		groups:  groups,
		routes:  make(map[string]handlers.Group),
		schemas: make(map[string]domain.JSONSchemaProps),
		metrics: metrics,
		logger:  logger.With("usecase", "Dispatcher"),
		tracer:  otel.Tracer(tracerName),
		now:     time.Now,
	}
	for _, g := range groups {
		for _, tool := range g.Tools() {
			if existing, ok := d.routes[tool.Name]; ok {
				d.logger.Error("Duplicate tool name in catalog, keeping first registration.",
					slog.String("tool", tool.Name),
					slog.String("kept_group", existing.Name()),
					slog.String("ignored_group", g.Name()))
				continue
			}
			d.routes[tool.Name] = g
			d.schemas[tool.Name] = tool.InputSchema
		}
	}
	return d
}

// ListTools returns the aggregated catalog: each group's contribution in
// registration order, with the liveness probe appended last. Pure and safe
// to call concurrently.
func (d *Dispatcher) ListTools() []domain.Tool {
	var tools []domain.Tool
	for _, g := range d.groups {
		tools = append(tools, g.Tools()...)
	}
	return append(tools, healthcheckTool())
}

// Invoke routes one invocation to its handler group and always returns
// exactly one well-formed envelope. Every handled invocation reports one
// metrics observation, with the start time captured before any backend work
// begins.
func (d *Dispatcher) Invoke(ctx context.Context, toolName string, args map[string]any) domain.CallResult {
	ctx, span := d.tracer.Start(ctx, "tools/call",
		trace.WithAttributes(attribute.String("tool.name", toolName)))
	defer span.End()

	start := d.now()
	log := d.logger.With(slog.String("tool", toolName))

	if toolName == HealthcheckToolName {
		d.metrics.Observe(ctx, toolName, start, true)
		return envelope.EncodeSuccess(map[string]any{
			"status":    "healthy",
			"timestamp": d.now().UTC().Format(time.RFC3339),
		})
	}

	group, ok := d.routes[toolName]
	if !ok {
		log.Warn("Unknown tool invoked.")
		d.metrics.Observe(ctx, toolName, start, false)
		return envelope.EncodeFailure(domain.NewMethodNotFoundError(toolName))
	}

	if args == nil {
		args = map[string]any{}
	}
	if err := d.schemas[toolName].ValidateArgs(args); err != nil {
		log.Warn("Argument validation failed.", slog.Any("error", err))
		d.metrics.Observe(ctx, toolName, start, false)
		return envelope.EncodeFailure(domain.NewInvalidParamsError(err.Error()))
	}

	result, err := group.Handle(ctx, toolName, args)
	d.metrics.Observe(ctx, toolName, start, err == nil)
	if err != nil {
		log.Error("Tool invocation failed.", slog.Any("error", err))
		return envelope.EncodeFailure(err)
	}

	log.Debug("Tool invocation succeeded.", slog.Duration("elapsed", time.Since(start)))
	return envelope.EncodeSuccess(result)
}
