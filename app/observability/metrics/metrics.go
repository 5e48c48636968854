package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	AuthRequestsTotal       metric.Int64Counter
	AuthRequestDurationSecs metric.Float64Histogram
	AssetOperationsTotal    metric.Int64Counter
	DbQueryErrorsTotal      metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metric instruments exactly once. It
// must run after the MeterProvider is configured.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("finsight")
		var err error
		m := &AppMetrics{}

		m.AuthRequestsTotal, err = meter.Int64Counter(
			"auth_requests_total",
			metric.WithDescription("Total number of register/login requests completed"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create auth_requests_total: %v", err)
		}

		m.AuthRequestDurationSecs, err = meter.Float64Histogram(
			"auth_request_duration_seconds",
			metric.WithDescription("Duration of register/login requests in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create auth_request_duration_seconds: %v", err)
		}

		m.AssetOperationsTotal, err = meter.Int64Counter(
			"asset_operations_total",
			metric.WithDescription("Total number of watch-list operations completed"),
			metric.WithUnit("{operation}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create asset_operations_total: %v", err)
		}

		m.DbQueryErrorsTotal, err = meter.Int64Counter(
			"db_query_errors_total",
			metric.WithDescription("Total number of database query errors"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create db_query_errors_total: %v", err)
		}

		appMetrics = m
	})
}

// Get returns the initialized instrument set, or nil when metrics are not
// configured (tests).
func Get() *AppMetrics {
	return appMetrics
}
