package system

import (
	"context"

	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel"
	oteltrace "go.opentelemetry.io/otel/trace"

	_ "github.com/fedcompute-project/fedcompute/pkg/logger"
)

const tracerName = "fedcompute"

var tracer oteltrace.Tracer

func init() { //nolint:gochecknoinits // use of init here is idomatic
	_ = godotenv.Load() // Load environment variables from .env file - necessary here for dev keys

	tracer = otel.GetTracerProvider().Tracer(tracerName)
}

func GetTracer() oteltrace.Tracer {
	return tracer
}

// NewSpan returns a span tied to the global tracer. Callers must end the
// span themselves.
func NewSpan(ctx context.Context, t oteltrace.Tracer, name string, opts ...oteltrace.SpanStartOption) (
	context.Context, oteltrace.Span) {
	opts = append(opts, oteltrace.WithSpanKind(oteltrace.SpanKindInternal))
	return t.Start(ctx, name, opts...)
}
