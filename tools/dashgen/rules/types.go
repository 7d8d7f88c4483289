// Package rules builds the worthyten PrometheusRule custom resources.
package rules

// Defaults stamped on every generated CR.
const (
	Namespace = "worthyten"

	apiVersion = "monitoring.coreos.com/v1"
	kind       = "PrometheusRule"
)

// DefaultLabels selects the worthyten rules in Prometheus Operator and
// groups them with the rest of the deployment.
func DefaultLabels() map[string]string {
	return map[string]string{
		"app.kubernetes.io/name":      "worthyten",
		"app.kubernetes.io/component": "monitoring",
		"app.kubernetes.io/part-of":   "worthyten",
		"prometheus":                  "worthyten",
	}
}

// newRule returns an empty CR named name with the worthyten metadata.
func newRule(name string, groups ...RuleGroup) PrometheusRule {
	return PrometheusRule{
		APIVersion: apiVersion,
		Kind:       kind,
		Metadata: PrometheusRuleMetadata{
			Name:      name,
			Namespace: Namespace,
			Labels:    DefaultLabels(),
		},
		Spec: PrometheusRuleSpec{Groups: groups},
	}
}

// PrometheusRule is a Prometheus Operator rule resource.
type PrometheusRule struct {
	APIVersion string                 `yaml:"apiVersion"`
	Kind       string                 `yaml:"kind"`
	Metadata   PrometheusRuleMetadata `yaml:"metadata"`
	Spec       PrometheusRuleSpec     `yaml:"spec"`
}

// PrometheusRuleMetadata is the CR object metadata.
type PrometheusRuleMetadata struct {
	Name      string            `yaml:"name"`
	Namespace string            `yaml:"namespace,omitempty"`
	Labels    map[string]string `yaml:"labels,omitempty"`
}

// PrometheusRuleSpec holds the rule groups.
type PrometheusRuleSpec struct {
	Groups []RuleGroup `yaml:"groups"`
}

// RuleGroup is one named group; wt rules evaluate at the Prometheus default
// interval unless Interval is set.
type RuleGroup struct {
	Name     string `yaml:"name"`
	Interval string `yaml:"interval,omitempty"`
	Rules    []Rule `yaml:"rules"`
}

// Rule sets exactly one of Record or Alert.
type Rule struct {
	Record      string            `yaml:"record,omitempty"`
	Alert       string            `yaml:"alert,omitempty"`
	Expr        string            `yaml:"expr"`
	For         string            `yaml:"for,omitempty"`
	Labels      map[string]string `yaml:"labels,omitempty"`
	Annotations map[string]string `yaml:"annotations,omitempty"`
}
