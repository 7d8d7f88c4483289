package valuation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/worthyten/pkg/types"
)

func testTable() *domain.PricingTable {
	return &domain.PricingTable{
		Brand: "Apple",
		Model: "iPhone 13",
		AssessmentDeductions: map[string]domain.Adjustment{
			"powerOn":      {Amount: 5000, Label: "Does not power on"},
			"screenIntact": {Amount: 4000},
		},
		Issues: map[string]domain.Adjustment{
			"display_cracked": {Amount: 7000},
			"body_dents":      {Amount: 3500},
			"display_good":    {Amount: 0},
			"battery_weak":    {Amount: 1500},
			"error_messages":  {Amount: 2500},
		},
		AccessoryBonuses: map[string]domain.Adjustment{
			"original_box": {Amount: 500},
			"bill":         {Amount: 300},
		},
	}
}

func TestFloor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		price   float64
		base    int64
		want    int64
		clamped bool
	}{
		{name: "above floor rounds", price: 16499.5, base: 32000, want: 16500},
		{name: "exactly at floor", price: 1600, base: 32000, want: 1600},
		{name: "below floor clamps", price: 1200, base: 32000, want: 1600, clamped: true},
		{name: "negative clamps", price: -9000, base: 32000, want: 1600, clamped: true},
		{name: "floor itself rounds", price: 0, base: 999, want: 50, clamped: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, clamped := FloorFor(tt.price, tt.base, DefaultFloorPercent)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.clamped, clamped)
		})
	}
}

func TestFloor_InvariantAcrossStackedDeductions(t *testing.T) {
	t.Parallel()

	table := testTable()
	base := int64(32000)
	minimum := MinimumPrice(base, DefaultFloorPercent)

	selections := [][]string{
		nil,
		{"display_cracked"},
		{"display_cracked", "body_dents"},
		{"display_cracked", "body_dents", "error_present"},
	}

	for _, input := range []int64{base, 9000, 2000, minimum} {
		for _, sel := range selections {
			res := Apply(input, sel, PhysicalRules, table)
			out := Floor(res.Price, base, DefaultFloorPercent)
			assert.GreaterOrEqual(t, out, minimum, "input=%d sel=%v", input, sel)
		}
	}
}

func TestApply_MissingEntriesContributeZero(t *testing.T) {
	t.Parallel()

	res := Apply(20000, []string{"not_in_table", "also_missing"}, PhysicalRules, testTable())
	assert.InDelta(t, 20000.0, res.Price, 0)
	require.Len(t, res.Applied, 2)
	for _, a := range res.Applied {
		assert.False(t, a.Found)
		assert.Zero(t, a.Delta)
	}
}

func TestApply_NilTable(t *testing.T) {
	t.Parallel()

	for _, rs := range []RuleSet{AssessmentRules, PhysicalRules, IssueRules, AccessoryRules} {
		res := Apply(16500, []string{"powerOn", "display_cracked", "battery", "original_box"}, rs, nil)
		assert.InDelta(t, 16500.0, res.Price, 0, "stage %s", rs.Stage)
	}
}

func TestApply_IDMapping(t *testing.T) {
	t.Parallel()

	res := Apply(10000, []string{"battery"}, IssueRules, testTable())
	assert.InDelta(t, 8500.0, res.Price, 0)
	require.Len(t, res.Applied, 1)
	assert.Equal(t, "battery", res.Applied[0].SelectionID)
	assert.Equal(t, "battery_weak", res.Applied[0].RuleID)
	assert.Equal(t, int64(-1500), res.Applied[0].Delta)
}

func TestApply_DuplicateRuleAppliedOnce(t *testing.T) {
	t.Parallel()

	table := &domain.PricingTable{Issues: map[string]domain.Adjustment{
		"biometric_faulty": {Amount: 2000},
	}}
	res := Apply(10000, []string{"face_id", "fingerprint", "face_id"}, IssueRules, table)
	assert.InDelta(t, 8000.0, res.Price, 0)
	assert.Len(t, res.Applied, 1)
}

func TestApply_NoneMarkerIgnored(t *testing.T) {
	t.Parallel()

	res := Apply(16500, []string{domain.NoneSelection}, IssueRules, testTable())
	assert.InDelta(t, 16500.0, res.Price, 0)
	assert.Empty(t, res.Applied)
}

func TestApplyMultiplier(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(36800), ApplyMultiplier(32000, 1.15))
	assert.Equal(t, int64(32000), ApplyMultiplier(32000, 0))
	assert.Equal(t, int64(32000), ApplyMultiplier(32000, -2))
}

// The end-to-end walk from a ₹32,000 quote to the final offer.
func TestPipelineScenario(t *testing.T) {
	t.Parallel()

	table := testTable()
	base := int64(32000)
	floor := func(p float64) int64 { return Floor(p, base, DefaultFloorPercent) }

	answers := map[string]domain.Answer{
		"powerOn":      domain.AnswerNo,
		"screenIntact": domain.AnswerYes,
		"bodyIntact":   domain.AnswerYes,
		"cameraWorks":  domain.AnswerYes,
	}
	assessed := floor(Apply(base, AssessmentSelections(domain.CategoryPhone, answers), AssessmentRules, table).Price)
	assert.Equal(t, int64(27000), assessed)

	physical := floor(Apply(assessed, []string{"display_cracked", "body_dents"}, PhysicalRules, table).Price)
	assert.Equal(t, int64(16500), physical)

	issues := floor(Apply(physical, []string{domain.NoneSelection}, IssueRules, table).Price)
	assert.Equal(t, int64(16500), issues)

	accessories := floor(Apply(issues, []string{"original_box"}, AccessoryRules, table).Price)
	assert.Equal(t, int64(17000), accessories)

	policy := DefaultWarrantyPolicy()
	bucket, ok := policy.Bucket("less-than-1")
	require.True(t, ok)
	final := floor(policy.ApplyWarranty(accessories, bucket, []string{"original_box", BillAccessory}).Price)
	assert.Equal(t, int64(17850), final)
}

func TestPipelineScenario_NoPricingTable(t *testing.T) {
	t.Parallel()

	base := int64(32000)
	price := base
	for _, step := range []struct {
		rs  RuleSet
		sel []string
	}{
		{AssessmentRules, []string{"powerOn", "screenIntact"}},
		{PhysicalRules, []string{"display_cracked", "body_dents", "error_present"}},
		{IssueRules, []string{"battery", "speaker", "camera"}},
		{AccessoryRules, []string{"original_box", "bill"}},
	} {
		out := Floor(Apply(price, step.sel, step.rs, nil).Price, base, DefaultFloorPercent)
		assert.Equal(t, price, out, "stage %s", step.rs.Stage)
		price = out
	}
}

func TestAssessmentSelections_SkipsRoutingQuestion(t *testing.T) {
	t.Parallel()

	answers := map[string]domain.Answer{
		"powerOn":                 domain.AnswerYes,
		"lensIntact":              domain.AnswerNo,
		HasAdditionalLensQuestion: domain.AnswerNo,
	}
	got := AssessmentSelections(domain.CategoryCamera, answers)
	assert.Equal(t, []string{"lensIntact"}, got)
}
