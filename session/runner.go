package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"moodbites"
	"moodbites/tools"
)

// Runner executes a script of tool calls in order, logging each one.
type Runner struct {
	provider moodbites.ToolProvider
	logger   moodbites.ActionLogger
	tracer   trace.Tracer

	calls    metric.Int64Counter
	failures metric.Int64Counter
	duration metric.Float64Histogram
}

// NewRunner initializes a runner. A nil logger discards action logs.
func NewRunner(tp moodbites.ToolProvider, log moodbites.ActionLogger) *Runner {
	if log == nil {
		log = moodbites.NewNoOpActionLogger()
	}

	meter := otel.Meter(moodbites.TracerName)
	calls, _ := meter.Int64Counter("tool_calls_total",
		metric.WithDescription("Total number of tool calls executed"))
	failures, _ := meter.Int64Counter("tool_calls_failed_total",
		metric.WithDescription("Total number of tool calls that failed"))
	duration, _ := meter.Float64Histogram("tool_execution_time_seconds",
		metric.WithDescription("Time taken to execute individual tools in seconds"))

	return &Runner{
		provider: tp,
		logger:   log,
		tracer:   otel.Tracer(moodbites.TracerName),
		calls:    calls,
		failures: failures,
		duration: duration,
	}
}

// Run executes calls until one fails. Results cover every call attempted,
// including the failing one; the returned error wraps its cause.
func (r *Runner) Run(ctx context.Context, calls []tools.Call) ([]moodbites.CallResult, error) {
	ctx, span := r.tracer.Start(ctx, "Runner.Run", trace.WithAttributes(attribute.Int("calls", len(calls))))
	defer span.End()

	slog.Info("SESSION: Starting run", "calls", len(calls))

	results := make([]moodbites.CallResult, 0, len(calls))
	for i, call := range calls {
		res, err := r.runOne(ctx, i+1, call)
		results = append(results, res)
		if err != nil {
			span.SetStatus(codes.Error, "tool call failed")
			span.RecordError(err)
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
	}

	slog.Info("SESSION: Run complete", "calls", len(results))
	return results, nil
}

func (r *Runner) runOne(ctx context.Context, step int, call tools.Call) (moodbites.CallResult, error) {
	ctx, span := r.tracer.Start(ctx, "Runner.Call", trace.WithAttributes(
		attribute.String("tool.name", call.Name),
		attribute.Int("step", step),
	))
	defer span.End()

	slog.Info("SESSION: Handling tool call", "name", call.Name, "step", step)

	start := time.Now()
	output, err := r.provider.Execute(ctx, call)
	elapsed := time.Since(start)

	attrs := metric.WithAttributes(attribute.String("tool", call.Name))
	r.calls.Add(ctx, 1, attrs)
	r.duration.Record(ctx, elapsed.Seconds(), attrs)

	entry := moodbites.ActionLog{
		Step:      step,
		Timestamp: start,
		Tool:      call.Name,
		Input:     call.Input,
		Output:    output,
		Duration:  elapsed,
	}
	res := moodbites.CallResult{Tool: call.Name, Output: output}

	if err != nil {
		r.failures.Add(ctx, 1, attrs)
		span.SetStatus(codes.Error, "tool failed")
		span.RecordError(err)
		slog.Error("SESSION: Tool failed", "name", call.Name, "step", step, "error", err)

		entry.Error = err.Error()
		res.Error = err.Error()
		r.logAction(entry)
		return res, fmt.Errorf("run tool %q: %w", call.Name, err)
	}

	r.logAction(entry)
	return res, nil
}

func (r *Runner) logAction(action moodbites.ActionLog) {
	if err := r.logger.LogAction(action); err != nil {
		slog.Error("Failed to log session action", "error", err, "step", action.Step)
	}
}
