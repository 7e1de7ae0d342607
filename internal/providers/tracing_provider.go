package providers

import (
	"context"
	"fmt"
	"kinstore/internal/structures"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

type TracingProviderInterface interface {
	Tracer() trace.Tracer
	Shutdown(ctx context.Context) error
}

type TracingProvider struct {
	tracer   trace.Tracer
	provider *tracesdk.TracerProvider
}

func (tp *TracingProvider) Tracer() trace.Tracer {
	return tp.tracer
}

func (tp *TracingProvider) Shutdown(ctx context.Context) error {
	if tp.provider == nil {
		return nil
	}
	return tp.provider.Shutdown(ctx)
}

// NewTracingProvider exports spans to Jaeger when tracing is enabled and
// hands out a no-op tracer otherwise.
func NewTracingProvider(conf *structures.Config, logger Logger) (TracingProviderInterface, error) {
	if !conf.Tracing.Enabled {
		return &TracingProvider{tracer: noop.NewTracerProvider().Tracer("noop")}, nil
	}

	exp, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(conf.Tracing.Endpoint)))
	if err != nil {
		return nil, fmt.Errorf("failed to create Jaeger exporter: %w", err)
	}

	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			attribute.String("service.name", conf.Tracing.ServiceName),
			attribute.String("deployment.environment", conf.Tracing.Environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	tp := tracesdk.NewTracerProvider(
		tracesdk.WithBatcher(exp),
		tracesdk.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.Infof(TypeApp, "Tracing enabled, exporting to %s", conf.Tracing.Endpoint)

	return &TracingProvider{
		tracer:   tp.Tracer(conf.Tracing.ServiceName),
		provider: tp,
	}, nil
}

func TracingMiddleware(tracing TracingProviderInterface, next http.Handler) http.Handler {
	tracer := tracing.Tracer()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

		ctx, span := tracer.Start(ctx, r.Method+" "+r.URL.Path, trace.WithSpanKind(trace.SpanKindServer))
		defer span.End()

		span.SetAttributes(
			attribute.String("http.method", r.Method),
			attribute.String("http.url", r.URL.String()),
			attribute.String("http.user_agent", r.UserAgent()),
			attribute.String("http.remote_addr", r.RemoteAddr),
		)

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r.WithContext(ctx))

		span.SetAttributes(attribute.Int("http.status_code", sw.status))
	})
}
