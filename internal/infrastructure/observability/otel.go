package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

// Metrics holds all application metrics
type Metrics struct {
	WorkflowRunCount        metric.Int64Counter
	StageFailureCount       metric.Int64Counter
	PersistenceFailureCount metric.Int64Counter
	UnhealthyAgentCount     metric.Int64Counter
	AgentCallDuration       metric.Float64Histogram
}

// Setup initializes OpenTelemetry
func Setup(ctx context.Context, serviceName, serviceVersion, endpoint string) (func(context.Context) error, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, err
	}

	// Set up trace exporter
	traceExporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	// Set up metric exporter
	metricExporter, err := otlpmetricgrpc.New(ctx,
		otlpmetricgrpc.WithEndpoint(endpoint),
		otlpmetricgrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter,
			sdkmetric.WithInterval(30*time.Second),
		)),
	)
	otel.SetMeterProvider(meterProvider)

	shutdown := func(ctx context.Context) error {
		if err := tracerProvider.Shutdown(ctx); err != nil {
			return err
		}
		return meterProvider.Shutdown(ctx)
	}

	return shutdown, nil
}

// InitMetrics initializes application metrics
func InitMetrics() (*Metrics, error) {
	meter := otel.Meter("github.com/swasthya/operations-backend")

	workflowRunCount, err := meter.Int64Counter(
		"workflow.run.count",
		metric.WithDescription("Number of workflow runs, by workflow name"),
	)
	if err != nil {
		return nil, err
	}

	stageFailureCount, err := meter.Int64Counter(
		"workflow.stage.failure.count",
		metric.WithDescription("Number of tolerated decision-service stage failures"),
	)
	if err != nil {
		return nil, err
	}

	persistenceFailureCount, err := meter.Int64Counter(
		"persistence.failure.count",
		metric.WithDescription("Number of best-effort persistence failures"),
	)
	if err != nil {
		return nil, err
	}

	unhealthyAgentCount, err := meter.Int64Counter(
		"agent.unhealthy.count",
		metric.WithDescription("Number of failed agent health probes"),
	)
	if err != nil {
		return nil, err
	}

	agentCallDuration, err := meter.Float64Histogram(
		"agent.call.duration",
		metric.WithDescription("Decision-service call duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		WorkflowRunCount:        workflowRunCount,
		StageFailureCount:       stageFailureCount,
		PersistenceFailureCount: persistenceFailureCount,
		UnhealthyAgentCount:     unhealthyAgentCount,
		AgentCallDuration:       agentCallDuration,
	}, nil
}
