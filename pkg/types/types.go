// Package domain defines the core business types for the WorthyTen trade-in
// valuation service.
package domain

import (
	"time"
)

// Stage identifies one step of the valuation pipeline.
type Stage string

// Stage constants, in pipeline order.
const (
	StageAssessment  Stage = "assessment"
	StageLenses      Stage = "lenses"
	StagePhysical    Stage = "physical"
	StageIssues      Stage = "issues"
	StageAccessories Stage = "accessories"
	StageWarranty    Stage = "warranty"
	StageComplete    Stage = "complete"
)

// Stages lists every price-producing stage in pipeline order.
var Stages = []Stage{
	StageAssessment,
	StageLenses,
	StagePhysical,
	StageIssues,
	StageAccessories,
	StageWarranty,
}

// Index returns the stage's position in the pipeline, or -1 if unknown.
func (s Stage) Index() int {
	for i, st := range Stages {
		if st == s {
			return i
		}
	}
	if s == StageComplete {
		return len(Stages)
	}
	return -1
}

// Answer is a yes/no answer to an assessment question.
type Answer string

// Answer constants.
const (
	AnswerYes Answer = "yes"
	AnswerNo  Answer = "no"
)

// Valid reports whether the answer is yes or no.
func (a Answer) Valid() bool {
	return a == AnswerYes || a == AnswerNo
}

// Section names one adjustment map inside a PricingTable.
type Section string

// Section constants.
const (
	SectionAssessment  Section = "assessmentDeductions"
	SectionIssues      Section = "issues"
	SectionAccessories Section = "accessoryBonuses"
)

// Adjustment is a fixed currency amount attached to a pricing rule id.
type Adjustment struct {
	Amount int64  `json:"amount"          yaml:"amount"`
	Label  string `json:"label,omitempty" yaml:"label,omitempty"`
}

// PricingTable holds the per-product deduction and bonus amounts. A missing
// entry means no adjustment.
type PricingTable struct {
	Brand                string                `json:"brand"                db:"brand"`
	Model                string                `json:"model"                db:"model"`
	AssessmentDeductions map[string]Adjustment `json:"assessmentDeductions" db:"assessment_deductions"`
	Issues               map[string]Adjustment `json:"issues"               db:"issues"`
	AccessoryBonuses     map[string]Adjustment `json:"accessoryBonuses"     db:"accessory_bonuses"`
	UpdatedAt            time.Time             `json:"updatedAt"            db:"updated_at"`
}

// Entries returns the adjustment map for a section. Safe on a nil table.
func (p *PricingTable) Entries(s Section) map[string]Adjustment {
	if p == nil {
		return nil
	}
	switch s {
	case SectionAssessment:
		return p.AssessmentDeductions
	case SectionIssues:
		return p.Issues
	case SectionAccessories:
		return p.AccessoryBonuses
	default:
		return nil
	}
}

// Amount returns the configured amount for id in section, or 0 when the
// table, section or entry is absent.
func (p *PricingTable) Amount(s Section, id string) (int64, bool) {
	adj, ok := p.Entries(s)[id]
	if !ok {
		return 0, false
	}
	return adj.Amount, true
}

// Variant is an optional storage/RAM configuration with a price multiplier.
type Variant struct {
	Label      string  `json:"label"`
	Multiplier float64 `json:"multiplier"`
}

// Lens is a catalog lens that can be attached to an interchangeable-lens body.
type Lens struct {
	ID    string `json:"id"    db:"id"`
	Brand string `json:"brand" db:"brand"`
	Name  string `json:"name"  db:"name"`
	Price int64  `json:"price" db:"price"`
}

// SelectedLens records a lens the user attached and the bonus it earned.
type SelectedLens struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Bonus int64  `json:"bonus"`
}

// Order is the durable record produced when a completed valuation is
// submitted.
type Order struct {
	ID         string          `json:"id"         db:"id"`
	SessionID  string          `json:"sessionId"  db:"session_id"`
	Category   Category        `json:"category"   db:"category"`
	Brand      string          `json:"brand"      db:"brand"`
	Model      string          `json:"model"      db:"model"`
	FinalPrice int64           `json:"finalPrice" db:"final_price"`
	Record     ValuationRecord `json:"record"     db:"payload"`
	CreatedAt  time.Time       `json:"createdAt"  db:"created_at"`
}

// SystemState holds aggregate counts used for dashboards and gauges.
type SystemState struct {
	PricingTables int `json:"pricing_tables"  db:"pricing_tables"`
	Lenses        int `json:"lenses"          db:"lenses"`
	Orders        int `json:"orders"          db:"orders"`
	OrdersLast24h int `json:"orders_last_24h" db:"orders_last_24h"`
}
