package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
)

const (
	ServiceName    = "almanac-dashboard"
	ServiceVersion = "1.0.0"
	MeterName      = "almanac"
)

// OTelConfig holds OpenTelemetry configuration
type OTelConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	MetricExporter string // "prometheus", "none"
	EnableMetrics  bool
}

// OTelProviders holds the OpenTelemetry providers
type OTelProviders struct {
	MeterProvider  *sdkmetric.MeterProvider
	Meter          metric.Meter
	PrometheusHTTP http.Handler
	Logger         *slog.Logger
}

// DefaultOTelConfig returns a default OpenTelemetry configuration
func DefaultOTelConfig() *OTelConfig {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	return &OTelConfig{
		ServiceName:    ServiceName,
		ServiceVersion: ServiceVersion,
		Environment:    env,
		MetricExporter: "prometheus",
		EnableMetrics:  true,
	}
}

// InitializeOTel initializes OpenTelemetry metrics with a Prometheus exporter
func InitializeOTel(cfg *OTelConfig, logger *slog.Logger) (*OTelProviders, error) {
	if cfg == nil {
		cfg = DefaultOTelConfig()
	}

	ctx := context.Background()

	logger.InfoContext(ctx, "Initializing OpenTelemetry",
		slog.String("service", cfg.ServiceName),
		slog.String("version", cfg.ServiceVersion),
		slog.String("environment", cfg.Environment),
		slog.Bool("metrics_enabled", cfg.EnableMetrics))

	res, err := createResource(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	providers := &OTelProviders{
		Logger: logger,
	}

	if cfg.EnableMetrics {
		if err := initializeMetrics(ctx, cfg, res, providers); err != nil {
			return nil, fmt.Errorf("failed to initialize metrics: %w", err)
		}
	}

	logger.InfoContext(ctx, "OpenTelemetry initialization complete",
		slog.Bool("metrics_enabled", cfg.EnableMetrics))

	return providers, nil
}

// createResource creates the OpenTelemetry resource
func createResource(cfg *OTelConfig) (*resource.Resource, error) {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
		semconv.DeploymentEnvironmentName(cfg.Environment),
		attribute.String("service.instance.id", generateInstanceID()),
	), nil
}

// initializeMetrics sets up OpenTelemetry metrics
func initializeMetrics(ctx context.Context, cfg *OTelConfig, res *resource.Resource, providers *OTelProviders) error {
	switch cfg.MetricExporter {
	case "prometheus":
		exporter, err := prometheus.New()
		if err != nil {
			return fmt.Errorf("failed to create prometheus exporter: %w", err)
		}

		providers.PrometheusHTTP = promhttp.Handler()

		mp := sdkmetric.NewMeterProvider(
			sdkmetric.WithResource(res),
			sdkmetric.WithReader(exporter),
		)

		providers.MeterProvider = mp
		providers.Meter = mp.Meter(MeterName, metric.WithInstrumentationVersion(cfg.ServiceVersion))

		otel.SetMeterProvider(mp)

	case "none":
		// No exporter - metrics disabled
		return nil
	default:
		return fmt.Errorf("unsupported metric exporter: %s", cfg.MetricExporter)
	}

	providers.Logger.InfoContext(ctx, "Metrics initialized",
		slog.String("exporter", cfg.MetricExporter))

	return nil
}

// CreateBusinessMetrics creates application-specific metrics
func CreateBusinessMetrics(meter metric.Meter) (*BusinessMetrics, error) {
	// HTTP metrics
	httpRequestsTotal, err := meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	httpRequestDuration, err := meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	httpActiveRequests, err := meter.Int64UpDownCounter(
		"http_active_requests",
		metric.WithDescription("Number of active HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	// Query metrics
	queriesTotal, err := meter.Int64Counter(
		"queries_total",
		metric.WithDescription("Total number of dataset queries served"),
	)
	if err != nil {
		return nil, err
	}

	queryDuration, err := meter.Float64Histogram(
		"query_duration_seconds",
		metric.WithDescription("Dataset query duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	emptyResults, err := meter.Int64Counter(
		"query_empty_results_total",
		metric.WithDescription("Total number of queries that returned no rows"),
	)
	if err != nil {
		return nil, err
	}

	// Cleaning metrics
	cleanRowsRead, err := meter.Int64Counter(
		"clean_rows_read_total",
		metric.WithDescription("Total number of raw rows read by the cleaner"),
	)
	if err != nil {
		return nil, err
	}

	cleanRowsWritten, err := meter.Int64Counter(
		"clean_rows_written_total",
		metric.WithDescription("Total number of cleaned rows written"),
	)
	if err != nil {
		return nil, err
	}

	cleanRowsDropped, err := meter.Int64Counter(
		"clean_rows_dropped_total",
		metric.WithDescription("Total number of rows dropped during cleaning"),
	)
	if err != nil {
		return nil, err
	}

	// Scrape metrics
	scrapePagesTotal, err := meter.Int64Counter(
		"scrape_pages_total",
		metric.WithDescription("Total number of archive pages scraped"),
	)
	if err != nil {
		return nil, err
	}

	scrapeErrors, err := meter.Int64Counter(
		"scrape_errors_total",
		metric.WithDescription("Total number of scrape failures"),
	)
	if err != nil {
		return nil, err
	}

	// System metrics
	systemErrors, err := meter.Int64Counter(
		"system_errors_total",
		metric.WithDescription("Total number of system errors"),
	)
	if err != nil {
		return nil, err
	}

	return &BusinessMetrics{
		HTTPRequestsTotal:   httpRequestsTotal,
		HTTPRequestDuration: httpRequestDuration,
		HTTPActiveRequests:  httpActiveRequests,

		QueriesTotal:  queriesTotal,
		QueryDuration: queryDuration,
		EmptyResults:  emptyResults,

		CleanRowsRead:    cleanRowsRead,
		CleanRowsWritten: cleanRowsWritten,
		CleanRowsDropped: cleanRowsDropped,

		ScrapePagesTotal: scrapePagesTotal,
		ScrapeErrors:     scrapeErrors,

		SystemErrors: systemErrors,
	}, nil
}

// BusinessMetrics holds all application-specific metrics
type BusinessMetrics struct {
	// HTTP metrics
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram
	HTTPActiveRequests  metric.Int64UpDownCounter

	// Query metrics
	QueriesTotal  metric.Int64Counter
	QueryDuration metric.Float64Histogram
	EmptyResults  metric.Int64Counter

	// Cleaning metrics
	CleanRowsRead    metric.Int64Counter
	CleanRowsWritten metric.Int64Counter
	CleanRowsDropped metric.Int64Counter

	// Scrape metrics
	ScrapePagesTotal metric.Int64Counter
	ScrapeErrors     metric.Int64Counter

	// System metrics
	SystemErrors metric.Int64Counter
}

// Shutdown gracefully shuts down OpenTelemetry providers
func (p *OTelProviders) Shutdown(ctx context.Context) error {
	var errs []error

	if p.MeterProvider != nil {
		if err := p.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("opentelemetry shutdown errors: %v", errs)
	}

	p.Logger.InfoContext(ctx, "OpenTelemetry shutdown complete")
	return nil
}

// generateInstanceID generates a unique instance identifier
func generateInstanceID() string {
	hostname, _ := os.Hostname()
	return fmt.Sprintf("%s-%d", hostname, time.Now().Unix())
}

// RecordQueryMetrics records metrics for one dataset query
func RecordQueryMetrics(ctx context.Context, metrics *BusinessMetrics, endpoint, table string, duration time.Duration, resultCount int) {
	if metrics == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("endpoint", endpoint),
		attribute.String("table", table),
	}

	metrics.QueriesTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	metrics.QueryDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))

	if resultCount == 0 {
		metrics.EmptyResults.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordCleaningMetrics records row accounting for one cleaned table
func RecordCleaningMetrics(ctx context.Context, metrics *BusinessMetrics, table string, rowsRead, rowsWritten int, droppedByReason map[string]int) {
	if metrics == nil {
		return
	}

	tableAttr := attribute.String("table", table)

	metrics.CleanRowsRead.Add(ctx, int64(rowsRead), metric.WithAttributes(tableAttr))
	metrics.CleanRowsWritten.Add(ctx, int64(rowsWritten), metric.WithAttributes(tableAttr))

	for reason, count := range droppedByReason {
		metrics.CleanRowsDropped.Add(ctx, int64(count), metric.WithAttributes(
			tableAttr,
			attribute.String("reason", reason),
		))
	}
}

// RecordScrapePage records the outcome of one archive page fetch
func RecordScrapePage(ctx context.Context, metrics *BusinessMetrics, year int, success bool) {
	if metrics == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.Int("year", year),
	}

	metrics.ScrapePagesTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	if !success {
		metrics.ScrapeErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}
