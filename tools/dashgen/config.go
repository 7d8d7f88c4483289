package main

import "errors"

// KnownMetrics is the set of metric names exported by worthyten plus the
// recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"wt_http_request_duration_seconds": true,
	"wt_http_requests_total":           true,
	"wt_http_rate_limited_total":       true,

	// Health metrics.
	"wt_healthz_up": true,
	"wt_readyz_up":  true,

	// Valuation pipeline metrics.
	"wt_stage_evaluations_total":     true,
	"wt_stage_duration_seconds":      true,
	"wt_pricing_lookup_misses_total": true,
	"wt_floor_clamps_total":          true,
	"wt_final_offer_ratio":           true,

	// Session metrics.
	"wt_sessions_created_total": true,
	"wt_session_resets_total":   true,
	"wt_session_errors_total":   true,

	// Order metrics.
	"wt_orders_submitted_total":        true,
	"wt_notification_duration_seconds": true,
	"wt_notification_failures_total":   true,

	// State gauges.
	"wt_pricing_tables":   true,
	"wt_lenses":           true,
	"wt_orders":           true,
	"wt_orders_last_24h":  true,
	"wt_scheduler_next_state_refresh_timestamp": true,

	// Recording rules.
	"wt:http_requests:rate5m":         true,
	"wt:http_errors:rate5m":           true,
	"wt:sessions_created:rate5m":      true,
	"wt:orders_submitted:rate5m":      true,
	"wt:pricing_lookup_misses:rate5m": true,
	"wt:notification_duration:p95_5m": true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
