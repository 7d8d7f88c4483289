package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/bargauge"
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// SessionsRate returns a timeseries panel showing valuation sessions started
// per category.
func SessionsRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Sessions Started").
		Description("Valuation sessions created per second by category").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`wt:sessions_created:rate5m`, "{{category}}", "A")).
		Unit("ops").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// StageOutcomes returns a timeseries panel showing stage evaluations split by
// outcome (ok, redirect, rejected, error).
func StageOutcomes() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Stage Outcomes").
		Description("Stage evaluations per second by stage and outcome").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`sum(rate(`+Sel("wt_stage_evaluations_total")+`[5m])) by (stage, outcome)`,
			"{{stage}} {{outcome}}", "A",
		)).
		Unit("ops").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// StageLatency returns a timeseries panel showing p95 stage evaluation time.
func StageLatency() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Stage Latency (p95)").
		Description("95th percentile stage evaluation duration, including pricing lookups").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`histogram_quantile(0.95, sum(rate(`+Sel("wt_stage_duration_seconds_bucket")+`[5m])) by (le, stage))`,
			"{{stage}}", "A",
		)).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenYellowRed(1, 3)).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// LookupMisses returns a timeseries panel showing pricing lookups that fell
// back to an empty table.
func LookupMisses() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Pricing Lookup Misses").
		Description("Pricing table lookups that returned no table, by reason").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`sum(rate(`+Sel("wt_pricing_lookup_misses_total")+`[5m])) by (reason)`,
			"{{reason}}", "A",
		)).
		Unit("ops").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// FloorClamps returns a timeseries panel showing how often a stage price hit
// the floor.
func FloorClamps() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Floor Clamps").
		Description("Stage prices clamped to the minimum floor, by stage").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`sum(increase(`+Sel("wt_floor_clamps_total")+`[1h])) by (stage)`,
			"{{stage}}", "A",
		)).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleBars)
}

// FinalOfferRatio returns a bar gauge panel showing the distribution of final
// offers as a fraction of the quoted price.
func FinalOfferRatio() *bargauge.PanelBuilder {
	return bargauge.NewPanelBuilder().
		Title("Final Offer Ratio").
		Description("Distribution of final price divided by the original quote").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`sum(increase(`+Sel("wt_final_offer_ratio_bucket")+`[1h])) by (le)`,
			"{{le}}", "A",
		)).
		Orientation(common.VizOrientationHorizontal).
		Min(0).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic())
}
