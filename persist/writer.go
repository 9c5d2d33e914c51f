package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"moodbites/storage"
)

const instrumentationName = "moodbites/persist"

// ErrNotFound is returned by Read when the key has never been written.
var ErrNotFound = errors.New("snapshot not found")

// Writer owns one key of a KV and writes full snapshots to it.
// Each scheduled write carries a sequence number; a write older than the last
// committed one is skipped, so the stored value never regresses.
type Writer struct {
	kv  storage.KV
	key string

	tracer     trace.Tracer
	writes     metric.Int64Counter
	failures   metric.Int64Counter
	superseded metric.Int64Counter
	duration   metric.Float64Histogram

	seq       atomic.Uint64
	mu        sync.Mutex
	committed uint64

	inflightMu sync.Mutex
	inflight   map[uint64]chan struct{}
}

type Option func(*Writer)

func WithTracer(tp trace.TracerProvider) Option {
	return func(w *Writer) { w.tracer = tp.Tracer(instrumentationName) }
}

// WithMeter overrides the global meter provider; instruments are recreated from it.
func WithMeter(mp metric.MeterProvider) Option {
	return func(w *Writer) { w.initInstruments(mp.Meter(instrumentationName)) }
}

func NewWriter(kv storage.KV, key string, opts ...Option) *Writer {
	w := &Writer{
		kv:       kv,
		key:      key,
		tracer:   otel.Tracer(instrumentationName),
		inflight: map[uint64]chan struct{}{},
	}
	w.initInstruments(otel.Meter(instrumentationName))
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Writer) initInstruments(meter metric.Meter) {
	w.writes, _ = meter.Int64Counter("persist_writes_total",
		metric.WithDescription("Total number of snapshot writes committed"))
	w.failures, _ = meter.Int64Counter("persist_write_failures_total",
		metric.WithDescription("Total number of snapshot writes that failed"))
	w.superseded, _ = meter.Int64Counter("persist_writes_superseded_total",
		metric.WithDescription("Total number of snapshot writes skipped because a newer snapshot was committed"))
	w.duration, _ = meter.Float64Histogram("persist_write_duration_seconds",
		metric.WithDescription("Time taken to write a snapshot in seconds"))
}

// Read decodes the stored snapshot into dst. It returns ErrNotFound for a missing key.
func (w *Writer) Read(ctx context.Context, dst any) error {
	ctx, span := w.tracer.Start(ctx, "persist.Read", trace.WithAttributes(attribute.String("persist.key", w.key)))
	defer span.End()

	raw, ok, err := w.kv.Get(ctx, w.key)
	if err != nil {
		span.SetStatus(codes.Error, "read failed")
		span.RecordError(err)
		return fmt.Errorf("read %s: %w", w.key, err)
	}
	if !ok || raw == "" {
		return ErrNotFound
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		span.SetStatus(codes.Error, "malformed snapshot")
		span.RecordError(err)
		return fmt.Errorf("parse %s: %w", w.key, err)
	}
	return nil
}

// Schedule serializes snapshot now and writes it in the background.
// The returned task reports the outcome; callers may ignore it.
func (w *Writer) Schedule(ctx context.Context, snapshot any) *Task {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		err = fmt.Errorf("marshal %s: %w", w.key, err)
		slog.Error("PERSIST: Failed to serialize snapshot", "key", w.key, "error", err)
		return Completed(err)
	}

	seq := w.seq.Add(1)
	t := newTask()
	finished := make(chan struct{})
	w.inflightMu.Lock()
	w.inflight[seq] = finished
	w.inflightMu.Unlock()

	go func() {
		defer func() {
			w.inflightMu.Lock()
			delete(w.inflight, seq)
			w.inflightMu.Unlock()
			close(finished)
		}()
		w.write(context.WithoutCancel(ctx), seq, string(payload), t)
	}()
	return t
}

func (w *Writer) write(ctx context.Context, seq uint64, payload string, t *Task) {
	ctx, span := w.tracer.Start(ctx, "persist.Write", trace.WithAttributes(
		attribute.String("persist.key", w.key),
		attribute.Int64("persist.seq", int64(seq)),
		attribute.Int("persist.payload_bytes", len(payload)),
	))
	defer span.End()

	w.mu.Lock()
	defer w.mu.Unlock()

	if seq < w.committed {
		w.superseded.Add(ctx, 1, metric.WithAttributes(attribute.String("persist.key", w.key)))
		span.AddEvent("superseded", trace.WithAttributes(attribute.Int64("persist.committed", int64(w.committed))))
		t.finish(nil, true)
		return
	}

	start := time.Now()
	err := w.kv.Set(ctx, w.key, payload)
	w.duration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(attribute.String("persist.key", w.key)))

	if err != nil {
		w.failures.Add(ctx, 1, metric.WithAttributes(attribute.String("persist.key", w.key)))
		span.SetStatus(codes.Error, "write failed")
		span.RecordError(err)
		slog.Error("PERSIST: Failed to write snapshot", "key", w.key, "seq", seq, "error", err)
		t.finish(fmt.Errorf("write %s: %w", w.key, err), false)
		return
	}

	w.committed = seq
	w.writes.Add(ctx, 1, metric.WithAttributes(attribute.String("persist.key", w.key)))
	t.finish(nil, false)
}

// Drain waits until every write scheduled before the call has finished or ctx is done.
// Writes scheduled while draining are not waited for.
func (w *Writer) Drain(ctx context.Context) error {
	w.inflightMu.Lock()
	pending := make([]chan struct{}, 0, len(w.inflight))
	for _, finished := range w.inflight {
		pending = append(pending, finished)
	}
	w.inflightMu.Unlock()

	for _, finished := range pending {
		select {
		case <-finished:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
