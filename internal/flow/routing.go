package flow

import (
	"github.com/donaldgifford/worthyten/pkg/lens"
	domain "github.com/donaldgifford/worthyten/pkg/types"
	"github.com/donaldgifford/worthyten/pkg/valuation"
)

// requiredChain is the sequence of stages that must be completed in order.
// Lens selection is optional and never blocks a later stage.
var requiredChain = []domain.Stage{
	domain.StageAssessment,
	domain.StagePhysical,
	domain.StageIssues,
	domain.StageAccessories,
	domain.StageWarranty,
}

// LensEligible reports whether the lens sub-stage is offered: a camera whose
// owner has extra lenses and whose body takes interchangeable lenses.
func LensEligible(rec *domain.ValuationRecord) bool {
	if !rec.Category.CameraLike() || !rec.HasAdditionalLens {
		return false
	}
	return lens.DetectBody(rec.BrandName, rec.ModelName).Interchangeable()
}

// StageDone reports whether a stage has a running price and every selection
// it requires. Drafts persist a price but do not complete the stage.
func StageDone(rec *domain.ValuationRecord, s domain.Stage) bool {
	if _, ok := rec.PriceAfter(s); !ok {
		return false
	}

	switch s {
	case domain.StageAssessment:
		return valuation.ValidateAnswers(rec.Category, rec.AssessmentAnswers, true) == nil
	case domain.StagePhysical:
		return valuation.ValidatePhysical(rec.Category, rec.PhysicalSelections, true) == nil
	case domain.StageIssues:
		return rec.NoIssues || len(rec.Issues) > 0
	case domain.StageAccessories:
		return rec.NoAccessories || len(rec.Accessories) > 0
	case domain.StageWarranty:
		return rec.Completed
	default:
		return true
	}
}

// NextStage returns the stage the user should be on.
func NextStage(rec *domain.ValuationRecord) domain.Stage {
	for _, s := range requiredChain {
		if s == domain.StagePhysical && LensEligible(rec) && !lensesSettled(rec) {
			return domain.StageLenses
		}
		if !StageDone(rec, s) {
			return s
		}
	}
	return domain.StageComplete
}

// lensesSettled is true once lenses were submitted or the user moved past
// them to physical condition.
func lensesSettled(rec *domain.ValuationRecord) bool {
	if _, ok := rec.PriceAfter(domain.StageLenses); ok {
		return true
	}
	_, ok := rec.PriceAfter(domain.StagePhysical)
	return ok
}

// requirePrecursors returns a RedirectError naming the earliest required
// stage before target that is not done.
func requirePrecursors(rec *domain.ValuationRecord, target domain.Stage) error {
	for _, s := range requiredChain {
		if s.Index() >= target.Index() {
			return nil
		}
		if !StageDone(rec, s) {
			return &RedirectError{Stage: s}
		}
	}
	return nil
}
