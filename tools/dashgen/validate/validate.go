// Package validate checks generated dashboards and rules: every PromQL
// expression must parse and every metric it selects must be known.
package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/prometheus/prometheus/model/labels"
	"github.com/prometheus/prometheus/promql/parser"

	"github.com/donaldgifford/worthyten/tools/dashgen/rules"
)

// Result collects problems found during validation. Errors make the
// artifact unusable; warnings are worth a look.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether validation found no errors.
func (r *Result) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Histogram series carry these suffixes on top of the registered name.
var histogramSuffixes = []string{"_bucket", "_sum", "_count"}

// Expr parses expr and returns the metric names it selects.
func Expr(expr string) ([]string, error) {
	node, err := parser.ParseExpr(expr)
	if err != nil {
		return nil, err
	}

	var names []string
	parser.Inspect(node, func(n parser.Node, _ []parser.Node) error {
		vs, ok := n.(*parser.VectorSelector)
		if !ok {
			return nil
		}
		if vs.Name != "" {
			names = append(names, vs.Name)
			return nil
		}
		for _, m := range vs.LabelMatchers {
			if m.Name == labels.MetricName && m.Type == labels.MatchEqual {
				names = append(names, m.Value)
			}
		}
		return nil
	})
	return names, nil
}

func known(name string, metrics map[string]bool) bool {
	if metrics[name] {
		return true
	}
	for _, suffix := range histogramSuffixes {
		if base, ok := strings.CutSuffix(name, suffix); ok && metrics[base] {
			return true
		}
	}
	return false
}

func checkExpr(r *Result, where, expr string, metrics map[string]bool) {
	if strings.TrimSpace(expr) == "" {
		r.errorf("%s: empty expression", where)
		return
	}
	names, err := Expr(expr)
	if err != nil {
		r.errorf("%s: %v", where, err)
		return
	}
	for _, name := range names {
		if !known(name, metrics) {
			r.errorf("%s: unknown metric %q", where, name)
		}
	}
}

// Dashboard validates every query target in every panel of dash.
func Dashboard(dash dashboard.Dashboard, metrics map[string]bool) Result {
	var r Result

	for i, p := range dash.Panels {
		switch {
		case p.Panel != nil:
			checkPanel(&r, *p.Panel, metrics)
		case p.RowPanel != nil:
			if len(p.RowPanel.Panels) == 0 {
				r.warnf("row %d has no panels", i)
			}
			for _, inner := range p.RowPanel.Panels {
				checkPanel(&r, inner, metrics)
			}
		}
	}
	return r
}

func checkPanel(r *Result, p dashboard.Panel, metrics map[string]bool) {
	title := "<untitled>"
	if p.Title != nil {
		title = *p.Title
	}
	if len(p.Targets) == 0 {
		r.warnf("panel %q has no targets", title)
		return
	}

	for i, target := range p.Targets {
		// Targets are an open union of datasource query types; the
		// Prometheus one carries its PromQL under "expr".
		raw, err := json.Marshal(target)
		if err != nil {
			r.errorf("panel %q target %d: %v", title, i, err)
			continue
		}
		var q struct {
			Expr string `json:"expr"`
		}
		if err := json.Unmarshal(raw, &q); err != nil {
			r.errorf("panel %q target %d: %v", title, i, err)
			continue
		}
		checkExpr(r, fmt.Sprintf("panel %q target %d", title, i), q.Expr, metrics)
	}
}

// Rules validates every rule expression in cr. Recording rules must follow
// the level:metric:operations naming convention.
func Rules(cr rules.PrometheusRule, metrics map[string]bool) Result {
	var r Result

	for _, g := range cr.Spec.Groups {
		for _, rule := range g.Rules {
			name := rule.Alert
			if rule.Record != "" {
				name = rule.Record
				if strings.Count(rule.Record, ":") != 2 {
					r.warnf("recording rule %q does not follow level:metric:operations", rule.Record)
				}
			}
			if rule.Alert != "" && rule.Labels["severity"] == "" {
				r.warnf("alert %q has no severity label", rule.Alert)
			}
			checkExpr(&r, fmt.Sprintf("group %q rule %q", g.Name, name), rule.Expr, metrics)
		}
	}
	return r
}
