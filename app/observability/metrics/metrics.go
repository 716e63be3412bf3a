package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	ProfileListRequestsTotal metric.Int64Counter
	ProfileWritesTotal       metric.Int64Counter
	DbQueryDurationSeconds   metric.Float64Histogram
	DbQueryErrorsTotal       metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metrics instruments ONLY ONCE.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("trivixa-listings-api")
		var err error
		m := &AppMetrics{}

		m.ProfileListRequestsTotal, err = meter.Int64Counter(
			"profile_list_requests_total",
			metric.WithDescription("Total number of public profile listing requests"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create profile_list_requests_total: %v", err)
		}

		m.ProfileWritesTotal, err = meter.Int64Counter(
			"profile_writes_total",
			metric.WithDescription("Total number of profile create/update/delete operations"),
			metric.WithUnit("{operation}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create profile_writes_total: %v", err)
		}

		m.DbQueryDurationSeconds, err = meter.Float64Histogram(
			"db_query_duration_seconds",
			metric.WithDescription("Duration of database queries in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create db_query_duration_seconds: %v", err)
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

// Get returns the initialized metric instruments. InitAppMetrics must have
// been called first; a nil return means metrics were never wired.
func Get() *AppMetrics {
	return appMetrics
}
