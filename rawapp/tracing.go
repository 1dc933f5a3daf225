package rawapp

import (
	"context"
	"time"

	"github.com/advdv/rawhttp"
	"github.com/aws-observability/aws-otel-go/exporters/xrayudp"
	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/detectors/aws/lambda"
	"go.opentelemetry.io/contrib/propagators/aws/xray"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/fx"
)

const tracingInitTimeout = 5 * time.Second

// tracerName identifies the spans created by this package.
const tracerName = "github.com/advdv/rawhttp/rawapp"

// NewTracerProvider creates and configures the OpenTelemetry TracerProvider.
// Supported exporters via RAWHTTP_OTEL_EXPORTER: "none" (default), "stdout", "xrayudp".
// Shutdown is handled automatically via fx.Lifecycle.
func NewTracerProvider(lc fx.Lifecycle, env Environment) (trace.TracerProvider, error) {
	exporterType := env.otelExporter()
	if exporterType == "none" || exporterType == "" {
		return noop.NewTracerProvider(), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), tracingInitTimeout)
	defer cancel()

	exporter, err := newExporter(ctx, exporterType)
	if err != nil {
		return nil, err
	}

	res, err := newResource(ctx, exporterType, env.serviceName())
	if err != nil {
		return nil, err
	}

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(exporter)),
		sdktrace.WithResource(res),
	}
	if exporterType == "xrayudp" {
		opts = append(opts, sdktrace.WithIDGenerator(xray.NewIDGenerator()))
	}

	tp := sdktrace.NewTracerProvider(opts...)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return tp.Shutdown(ctx)
		},
	})

	return tp, nil
}

// newExporter creates a span exporter based on the exporter type.
func newExporter(ctx context.Context, exporterType string) (sdktrace.SpanExporter, error) {
	switch exporterType {
	case "stdout":
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	case "xrayudp":
		return xrayudp.NewSpanExporter(ctx)
	default:
		return nil, errors.Newf("unsupported RAWHTTP_OTEL_EXPORTER: %q (supported: none, stdout, xrayudp)", exporterType)
	}
}

// newResource creates a resource with appropriate attributes for the exporter.
func newResource(ctx context.Context, exporterType, serviceName string) (*resource.Resource, error) {
	if exporterType == "xrayudp" {
		// The Lambda detector names the service after the function.
		return lambda.NewResourceDetector().Detect(ctx)
	}

	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(serviceName),
	), nil
}

// withTracing starts a span around every handler invocation. The span is named after
// the route and records the handler's error, if any.
func withTracing(tp trace.TracerProvider) rawhttp.Middleware {
	tracer := tp.Tracer(tracerName)

	return func(next rawhttp.Handler) rawhttp.Handler {
		return rawhttp.HandlerFunc(func(ctx context.Context, w *rawhttp.Body) error {
			route, _ := rawhttp.RouteFromContext(ctx)

			ctx, span := tracer.Start(ctx, route.String(),
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.request.method", route.Method.String()),
					attribute.String("url.path", route.Path),
					attribute.String("client.address", rawhttp.RemoteAddr(ctx)),
				))
			defer span.End()

			err := next.ServeBody(ctx, w)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())

				return err
			}

			span.SetAttributes(attribute.Int("http.response.body.size", w.Len()))

			return nil
		})
	}
}
