package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return newRule("wt-recording-rules", RuleGroup{
		Name: "wt-recording",
		Rules: []Rule{
			{
				Record: "wt:http_requests:rate5m",
				Expr:   `sum(rate(wt_http_requests_total[5m]))`,
			},
			{
				Record: "wt:http_errors:rate5m",
				Expr:   `sum(rate(wt_http_requests_total{status=~"5.."}[5m]))`,
			},
			{
				Record: "wt:sessions_created:rate5m",
				Expr:   `sum(rate(wt_sessions_created_total[5m])) by (category)`,
			},
			{
				Record: "wt:orders_submitted:rate5m",
				Expr:   `sum(rate(wt_orders_submitted_total[5m])) by (category)`,
			},
			{
				Record: "wt:pricing_lookup_misses:rate5m",
				Expr:   `sum(rate(wt_pricing_lookup_misses_total[5m])) by (reason)`,
			},
			{
				Record: "wt:notification_duration:p95_5m",
				Expr:   `histogram_quantile(0.95, sum(rate(wt_notification_duration_seconds_bucket[5m])) by (le))`,
			},
		},
	})
}
