// Package valuation implements the pricing rules that turn a base quote into
// a final trade-in offer: the generic stage evaluator, the price floor and
// the warranty/age adjustments.
package valuation

import (
	"math"

	domain "github.com/donaldgifford/worthyten/pkg/types"
)

// DefaultFloorPercent is the minimum price, as a percentage of the original
// quote, that any stage may produce.
const DefaultFloorPercent = 5.0

// Direction says whether a rule subtracts or adds its amount.
type Direction int

// Direction constants.
const (
	Deduct Direction = iota
	Bonus
)

// RuleSet configures one instance of the evaluator.
type RuleSet struct {
	Stage     domain.Stage
	Section   domain.Section
	Direction Direction
	// IDMap translates a selection id into a pricing-table rule id. Ids
	// without an entry are looked up unchanged.
	IDMap map[string]string
}

// RuleID resolves the pricing-table id for a selection id.
func (rs RuleSet) RuleID(id string) string {
	if mapped, ok := rs.IDMap[id]; ok {
		return mapped
	}
	return id
}

// AppliedRule records one rule the evaluator looked up.
type AppliedRule struct {
	SelectionID string `json:"selection_id"`
	RuleID      string `json:"rule_id"`
	Label       string `json:"label,omitempty"`
	Delta       int64  `json:"delta"`
	Found       bool   `json:"found"`
}

// Result is the unfloored output of one evaluator run.
type Result struct {
	Input   int64         `json:"input"`
	Price   float64       `json:"price"`
	Applied []AppliedRule `json:"applied"`
}

// Apply runs the selections through the rule set against the pricing table.
// Each distinct rule id is applied at most once. A missing table or entry
// contributes exactly zero.
func Apply(input int64, selections []string, rs RuleSet, table *domain.PricingTable) Result {
	res := Result{Input: input, Price: float64(input)}
	seen := make(map[string]struct{}, len(selections))
	entries := table.Entries(rs.Section)

	for _, sel := range selections {
		if sel == "" || sel == domain.NoneSelection {
			continue
		}
		ruleID := rs.RuleID(sel)
		if _, dup := seen[ruleID]; dup {
			continue
		}
		seen[ruleID] = struct{}{}

		adj, found := entries[ruleID]
		delta := adj.Amount
		if rs.Direction == Deduct {
			delta = -delta
		}
		res.Price += float64(delta)
		res.Applied = append(res.Applied, AppliedRule{
			SelectionID: sel,
			RuleID:      ruleID,
			Label:       adj.Label,
			Delta:       delta,
			Found:       found,
		})
	}

	return res
}

// Floor clamps price to the minimum allowed for originalBase:
// max(round(price), round(originalBase * pct / 100)).
func Floor(price float64, originalBase int64, pct float64) int64 {
	out, _ := FloorFor(price, originalBase, pct)
	return out
}

// FloorFor is Floor that also reports whether the minimum was applied.
func FloorFor(price float64, originalBase int64, pct float64) (int64, bool) {
	rounded := int64(math.Round(price))
	minimum := MinimumPrice(originalBase, pct)
	if rounded < minimum {
		return minimum, true
	}
	return rounded, false
}

// MinimumPrice returns round(originalBase * pct / 100).
func MinimumPrice(originalBase int64, pct float64) int64 {
	return int64(math.Round(float64(originalBase) * pct / 100))
}

// ApplyMultiplier applies a variant multiplier to a base price. A zero or
// negative multiplier is treated as 1.
func ApplyMultiplier(base int64, multiplier float64) int64 {
	if multiplier <= 0 {
		return base
	}
	return int64(math.Round(float64(base) * multiplier))
}
