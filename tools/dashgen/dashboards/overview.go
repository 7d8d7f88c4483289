// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/worthyten/tools/dashgen/panels"
)

// UID is the dashboard uid, also used as the output file stem.
const UID = "wt-overview"

// BuildOverview constructs the WorthyTen overview dashboard with all metric rows.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("WorthyTen Overview").
		Uid(UID).
		Tags([]string{"wt", "worthyten"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.HealthzStat()).
		WithPanel(panels.ReadyzStat()).
		WithPanel(panels.CatalogStat()).
		WithPanel(panels.UptimeStat()))

	b.WithRow(dashboard.NewRowBuilder("HTTP").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()).
		WithPanel(panels.RateLimited()))

	b.WithRow(dashboard.NewRowBuilder("Valuation").
		WithPanel(panels.SessionsRate()).
		WithPanel(panels.StageOutcomes()).
		WithPanel(panels.StageLatency()).
		WithPanel(panels.LookupMisses()).
		WithPanel(panels.FloorClamps()).
		WithPanel(panels.FinalOfferRatio()))

	b.WithRow(dashboard.NewRowBuilder("Orders").
		WithPanel(panels.OrdersRate()).
		WithPanel(panels.OrdersLast24h()).
		WithPanel(panels.NotificationLatency()).
		WithPanel(panels.NotificationFailures()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
