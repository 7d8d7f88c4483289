package domain

import (
	"time"
)

// RecordVersion is the current ValuationRecord schema version. Persisted
// records with any other version are treated as corrupt.
const RecordVersion = 1

// NoneSelection is the explicit "no issues" / "no accessories" marker.
const NoneSelection = "none"

// ValuationRecord is the accumulating per-session valuation state. It is
// passed between stages by value through the session store.
type ValuationRecord struct {
	Version   int      `json:"version"`
	SessionID string   `json:"sessionId"`
	Category  Category `json:"category"`
	BrandName string   `json:"brandName"`
	ModelName string   `json:"modelName"`

	// Quote
	BasePrice          int64    `json:"basePrice"`
	Variant            *Variant `json:"variant,omitempty"`
	OriginalQuotePrice int64    `json:"originalQuotePrice"`

	// Running prices, nil until the stage has run.
	PriceAfterAssessment  *int64 `json:"priceAfterAssessment,omitempty"`
	PriceAfterLenses      *int64 `json:"priceAfterLenses,omitempty"`
	PriceAfterPhysical    *int64 `json:"priceAfterPhysical,omitempty"`
	PriceAfterIssues      *int64 `json:"priceAfterIssues,omitempty"`
	PriceAfterAccessories *int64 `json:"priceAfterAccessories,omitempty"`
	PriceAfterWarranty    *int64 `json:"priceAfterWarranty,omitempty"`

	// Answers and selections
	AssessmentAnswers  map[string]Answer `json:"assessmentAnswers,omitempty"`
	HasAdditionalLens  bool              `json:"hasAdditionalLens"`
	SelectedLenses     []SelectedLens    `json:"selectedLenses,omitempty"`
	LensBonus          int64             `json:"lensBonus"`
	PhysicalSelections map[string]string `json:"physicalSelections,omitempty"`
	Issues             []string          `json:"issues,omitempty"`
	NoIssues           bool              `json:"noIssues"`
	Accessories        []string          `json:"accessories,omitempty"`
	NoAccessories      bool              `json:"noAccessories"`
	DeviceAge          string            `json:"deviceAge,omitempty"`
	WarrantyBonus      int64             `json:"warrantyBonus"`
	AgeDeduction       int64             `json:"ageDeduction"`

	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DisplayName returns the de-duplicated brand + model name.
func (r *ValuationRecord) DisplayName() string {
	return DisplayName(r.BrandName, r.ModelName)
}

// priceField returns a pointer to the stage's output field.
func (r *ValuationRecord) priceField(s Stage) **int64 {
	switch s {
	case StageAssessment:
		return &r.PriceAfterAssessment
	case StageLenses:
		return &r.PriceAfterLenses
	case StagePhysical:
		return &r.PriceAfterPhysical
	case StageIssues:
		return &r.PriceAfterIssues
	case StageAccessories:
		return &r.PriceAfterAccessories
	case StageWarranty:
		return &r.PriceAfterWarranty
	default:
		return nil
	}
}

// PriceAfter returns the stage's output price, if set.
func (r *ValuationRecord) PriceAfter(s Stage) (int64, bool) {
	f := r.priceField(s)
	if f == nil || *f == nil {
		return 0, false
	}
	return **f, true
}

// SetPriceAfter stores the stage's output price.
func (r *ValuationRecord) SetPriceAfter(s Stage, price int64) {
	if f := r.priceField(s); f != nil {
		*f = &price
	}
}

// InputPrice returns the price a stage starts from: the most recent
// predecessor output that is set, falling back to the original quote.
func (r *ValuationRecord) InputPrice(s Stage) int64 {
	for i := s.Index() - 1; i >= 0; i-- {
		if p, ok := r.PriceAfter(Stages[i]); ok {
			return p
		}
	}
	return r.OriginalQuotePrice
}

// ClearFrom drops the output and selections of stage s and every later
// stage, so that re-running an earlier stage cannot leave stale downstream
// prices behind.
func (r *ValuationRecord) ClearFrom(s Stage) {
	start := s.Index()
	if start < 0 {
		return
	}
	for _, st := range Stages[start:] {
		if f := r.priceField(st); f != nil {
			*f = nil
		}
		r.clearSelections(st)
	}
	r.Completed = false
}

func (r *ValuationRecord) clearSelections(s Stage) {
	switch s {
	case StageAssessment:
		r.AssessmentAnswers = nil
		r.HasAdditionalLens = false
	case StageLenses:
		r.SelectedLenses = nil
		r.LensBonus = 0
	case StagePhysical:
		r.PhysicalSelections = nil
	case StageIssues:
		r.Issues = nil
		r.NoIssues = false
	case StageAccessories:
		r.Accessories = nil
		r.NoAccessories = false
	case StageWarranty:
		r.DeviceAge = ""
		r.WarrantyBonus = 0
		r.AgeDeduction = 0
	}
}

// FinalPrice returns the revealed final offer once the record is complete.
func (r *ValuationRecord) FinalPrice() (int64, bool) {
	if !r.Completed {
		return 0, false
	}
	return r.PriceAfter(StageWarranty)
}
