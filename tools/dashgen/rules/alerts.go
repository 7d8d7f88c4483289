package rules

// AlertRules returns a PrometheusRule CR containing alert rules for
// worthyten operational monitoring.
func AlertRules() PrometheusRule {
	return newRule("wt-alerts", RuleGroup{
		Name: "wt-alerts",
		Rules: []Rule{
			{
				Alert: "WtDown",
				Expr:  `absent(up{job="worthyten"})`,
				For:   "2m",
				Labels: map[string]string{
					"severity": "critical",
				},
				Annotations: map[string]string{
					"summary":     "WorthyTen is down",
					"description": "The worthyten job has been absent for more than 2 minutes.",
				},
			},
			{
				Alert: "WtReadinessDown",
				Expr:  `wt_readyz_up == 0`,
				For:   "2m",
				Labels: map[string]string{
					"severity": "critical",
				},
				Annotations: map[string]string{
					"summary":     "WorthyTen readiness check is failing",
					"description": "The readiness probe has reported not-ready for more than 2 minutes. Postgres or Redis is unreachable.",
				},
			},
			{
				Alert: "WtHighErrorRate",
				Expr:  `wt:http_errors:rate5m / wt:http_requests:rate5m > 0.05`,
				For:   "5m",
				Labels: map[string]string{
					"severity": "warning",
				},
				Annotations: map[string]string{
					"summary":     "High HTTP error rate on WorthyTen",
					"description": "More than 5% of HTTP requests are returning 5xx errors over the last 5 minutes.",
				},
			},
			{
				Alert: "WtEmptyCatalog",
				Expr:  `wt_pricing_tables == 0`,
				For:   "10m",
				Labels: map[string]string{
					"severity": "warning",
				},
				Annotations: map[string]string{
					"summary":     "No pricing tables loaded",
					"description": "The store has no pricing tables, so every valuation keeps the quoted price. Import a catalog with `worthyten import`.",
				},
			},
			{
				Alert: "WtPricingLookupFailures",
				Expr:  `sum(wt:pricing_lookup_misses:rate5m{reason=~"timeout|error"}) > 0.1`,
				For:   "5m",
				Labels: map[string]string{
					"severity": "warning",
				},
				Annotations: map[string]string{
					"summary":     "Pricing lookups are failing",
					"description": "Pricing table lookups are timing out or erroring at more than 0.1/s. Stages are falling back to unadjusted prices.",
				},
			},
			{
				Alert: "WtCorruptSessions",
				Expr:  `increase(wt_session_errors_total{reason="corrupt"}[15m]) > 0`,
				For:   "0m",
				Labels: map[string]string{
					"severity": "warning",
				},
				Annotations: map[string]string{
					"summary":     "Corrupt valuation sessions detected",
					"description": "Session state read from Redis failed to decode. Affected customers were sent back to the start.",
				},
			},
			{
				Alert: "WtNotificationFailures",
				Expr:  `increase(wt_notification_failures_total[5m]) > 0`,
				For:   "1m",
				Labels: map[string]string{
					"severity": "warning",
				},
				Annotations: map[string]string{
					"summary":     "Order notification failures detected",
					"description": "One or more order notifications (Discord or SNS) have failed to send.",
				},
			},
		},
	})
}
