package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
)

const (
	// HTTP status code threshold for considering a request successful
	successStatusCodeThreshold = http.StatusBadRequest
)

// SentryMetrics handles custom metrics for Sentry
type SentryMetrics struct {
	enabled bool
}

// NewSentryMetrics creates a new Sentry metrics client
func NewSentryMetrics() *SentryMetrics {
	return &SentryMetrics{
		enabled: true, // Spans are no-ops without a Sentry client
	}
}

// RecordAPIRequest records API request metrics
func (m *SentryMetrics) RecordAPIRequest(ctx context.Context, endpoint string, statusCode int, duration time.Duration) {
	if !m.enabled {
		return
	}

	span := sentry.StartSpan(ctx, "api.request")
	defer span.Finish()

	span.SetTag("endpoint", endpoint)
	span.SetTag("status_code", fmt.Sprintf("%d", statusCode))
	span.SetTag("success", fmt.Sprintf("%t", statusCode < successStatusCodeThreshold))

	span.SetData("duration_ms", duration.Milliseconds())
	span.SetData("endpoint", endpoint)
	span.SetData("status_code", statusCode)

	if statusCode < successStatusCodeThreshold {
		span.Status = sentry.SpanStatusOK
	} else {
		span.Status = sentry.SpanStatusInternalError
	}

	span.Description = fmt.Sprintf("API Request: %s", endpoint)
}

// ValidationSample is what gets reported about one validation
type ValidationSample struct {
	Species     string
	Valid       bool
	Score       int
	Errors      int
	Warnings    int
	Suggestions int
	Duration    time.Duration
}

// RecordValidation records a counterpoint validation on the request transaction
func (m *SentryMetrics) RecordValidation(ctx context.Context, s ValidationSample) {
	if !m.enabled {
		return
	}

	if transaction := sentry.TransactionFromContext(ctx); transaction != nil {
		transaction.SetTag("counterpoint.species", s.Species)
		transaction.SetTag("counterpoint.valid", fmt.Sprintf("%t", s.Valid))
		transaction.SetData("counterpoint.score", s.Score)
	}

	span := sentry.StartSpan(ctx, "counterpoint.validation")
	defer span.Finish()

	span.SetTag("species", s.Species)
	span.SetTag("valid", fmt.Sprintf("%t", s.Valid))

	span.SetData("score", s.Score)
	span.SetData("errors", s.Errors)
	span.SetData("warnings", s.Warnings)
	span.SetData("suggestions", s.Suggestions)
	span.SetData("duration_ms", s.Duration.Milliseconds())

	span.Status = sentry.SpanStatusOK
	span.Description = fmt.Sprintf("Validation: %s species", s.Species)
}

// RecordCatalogSeed records how many cantus firmi were loaded at startup
func (m *SentryMetrics) RecordCatalogSeed(inserted int, duration time.Duration) {
	if !m.enabled {
		return
	}

	span := sentry.StartSpan(context.Background(), "catalog.seed")
	span.Description = "Cantus firmus catalog seed"
	span.SetData("inserted", inserted)
	span.SetData("duration_ms", duration.Milliseconds())
	span.Finish()
}
