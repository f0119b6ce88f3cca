package database

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/forgo/backoffice/internal/database"

// Traced wraps a Database and records a client span per query.
type Traced struct {
	inner  Database
	tracer trace.Tracer
	ns     string
}

// NewTraced wraps db using the global tracer provider
func NewTraced(db Database, namespace string) *Traced {
	return &Traced{
		inner:  db,
		tracer: otel.Tracer(tracerName),
		ns:     namespace,
	}
}

func (t *Traced) Connect(ctx context.Context) error { return t.inner.Connect(ctx) }
func (t *Traced) Close() error                      { return t.inner.Close() }
func (t *Traced) Ping(ctx context.Context) error    { return t.inner.Ping(ctx) }

func (t *Traced) Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error) {
	ctx, span := t.start(ctx, query)
	defer span.End()

	results, err := t.inner.Query(ctx, query, vars)
	record(span, err)
	return results, err
}

func (t *Traced) QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error) {
	ctx, span := t.start(ctx, query)
	defer span.End()

	result, err := t.inner.QueryOne(ctx, query, vars)
	record(span, err)
	return result, err
}

func (t *Traced) Execute(ctx context.Context, query string, vars map[string]interface{}) error {
	ctx, span := t.start(ctx, query)
	defer span.End()

	err := t.inner.Execute(ctx, query, vars)
	record(span, err)
	return err
}

func (t *Traced) start(ctx context.Context, query string) (context.Context, trace.Span) {
	op := operationName(query)
	return t.tracer.Start(ctx, "surrealdb "+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "surrealdb"),
			attribute.String("db.namespace", t.ns),
			attribute.String("db.operation.name", op),
			attribute.String("db.query.text", query),
		),
	)
}

func record(span trace.Span, err error) {
	if err == nil || errors.Is(err, ErrNotFound) {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// operationName returns the leading keyword of the statement, or the one
// after BEGIN TRANSACTION for batches.
func operationName(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "QUERY"
	}
	op := strings.ToUpper(strings.TrimSuffix(fields[0], ";"))
	if op == "BEGIN" {
		return "TRANSACTION"
	}
	return op
}
