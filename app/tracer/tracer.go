package tracer

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

var requestCounter metric.Int64Counter

// Init sets up the tracer and meter providers with a Prometheus exporter.
// Returns the /metrics handler for the caller to serve.
func Init(logger *slog.Logger) (http.Handler, error) {
	tp := trace.NewTracerProvider(
		trace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String("skillswap-api"),
		)),
	)
	otel.SetTracerProvider(tp)

	exporter, err := prometheus.New()
	if err != nil {
		logger.Error("Failed to create Prometheus exporter", slog.Any("error", err))
		return nil, err
	}
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	otel.SetMeterProvider(mp)

	meter := mp.Meter("skillswap-api")
	requestCounter, err = meter.Int64Counter("http.server.request_count",
		metric.WithDescription("Number of HTTP requests handled, by method and path pattern"))
	if err != nil {
		logger.Error("Failed to create request counter", slog.Any("error", err))
		return nil, err
	}

	return promhttp.Handler(), nil
}

// CountRequests is router middleware incrementing the request counter.
func CountRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requestCounter != nil {
			requestCounter.Add(r.Context(), 1,
				metric.WithAttributes(
					attribute.String("http.method", r.Method),
					attribute.String("http.path", r.URL.Path),
				))
		}
		next.ServeHTTP(w, r)
	})
}
