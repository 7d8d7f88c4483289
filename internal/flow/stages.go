package flow

import (
	"context"
	"fmt"
	"maps"
	"strings"

	"github.com/donaldgifford/worthyten/internal/metrics"
	"github.com/donaldgifford/worthyten/pkg/lens"
	domain "github.com/donaldgifford/worthyten/pkg/types"
	"github.com/donaldgifford/worthyten/pkg/valuation"
)

// Quote is the product chosen on the quote page.
type Quote struct {
	Category  string          `json:"category"`
	Brand     string          `json:"brand"`
	Model     string          `json:"model"`
	BasePrice int64           `json:"basePrice"`
	Variant   *domain.Variant `json:"variant,omitempty"`
}

// AssessmentInput carries yes/no answers keyed by question id.
type AssessmentInput struct {
	Answers map[string]domain.Answer
	Submit  bool
}

// LensInput lists the catalog ids of lenses handed over with the body.
type LensInput struct {
	LensIDs []string
}

// PhysicalInput maps each condition group to the chosen option.
type PhysicalInput struct {
	Selections map[string]string
	Submit     bool
}

// SelectionInput is a multi-select submission. The "none" id marks an
// explicit empty choice.
type SelectionInput struct {
	IDs    []string
	Submit bool
}

// WarrantyInput carries the chosen device-age bucket.
type WarrantyInput struct {
	DeviceAge string
}

// CreateSession starts a valuation for a quoted product.
func (s *Service) CreateSession(ctx context.Context, q Quote) (rec *domain.ValuationRecord, err error) {
	ctx, finish := s.startStage(ctx, "quote", "")
	defer func() { finish(err) }()

	brand := strings.TrimSpace(q.Brand)
	model := strings.TrimSpace(q.Model)
	switch {
	case brand == "":
		return nil, fmt.Errorf("%w: brand is required", ErrInvalidQuote)
	case model == "":
		return nil, fmt.Errorf("%w: model is required", ErrInvalidQuote)
	case q.BasePrice <= 0:
		return nil, fmt.Errorf("%w: base price must be positive (got %d)", ErrInvalidQuote, q.BasePrice)
	case q.Variant != nil && q.Variant.Multiplier <= 0:
		return nil, fmt.Errorf("%w: variant multiplier must be positive", ErrInvalidQuote)
	}

	category, known := domain.ParseCategory(q.Category)
	if !known {
		s.log.DebugContext(ctx, "unrecognized category, using other", "category", q.Category)
	}

	multiplier := 1.0
	if q.Variant != nil {
		multiplier = q.Variant.Multiplier
	}

	now := s.now()
	rec = &domain.ValuationRecord{
		SessionID:          s.newID(),
		Category:           category,
		BrandName:          brand,
		ModelName:          model,
		BasePrice:          q.BasePrice,
		Variant:            q.Variant,
		OriginalQuotePrice: valuation.ApplyMultiplier(q.BasePrice, multiplier),
		CreatedAt:          now,
	}

	if err := s.sessions.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("saving new session: %w", err)
	}

	metrics.SessionsCreatedTotal.WithLabelValues(string(category)).Inc()
	s.log.InfoContext(ctx, "valuation session created",
		"session_id", rec.SessionID,
		"category", category,
		"product", rec.DisplayName(),
		"quote", rec.OriginalQuotePrice,
	)

	return rec, nil
}

// GetSession returns the current record.
func (s *Service) GetSession(ctx context.Context, id string) (*domain.ValuationRecord, error) {
	return s.load(ctx, id)
}

// ResetSession discards the record ("Start Over").
func (s *Service) ResetSession(ctx context.Context, id string) error {
	if err := s.sessions.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting session %s: %w", id, err)
	}
	metrics.SessionResetsTotal.Inc()
	s.log.InfoContext(ctx, "valuation session reset", "session_id", id)
	return nil
}

// Assess records assessment answers and deducts for every "no".
func (s *Service) Assess(ctx context.Context, id string, in AssessmentInput) (res *StageResult, err error) {
	ctx, finish := s.startStage(ctx, domain.StageAssessment, id)
	defer func() { finish(err) }()

	rec, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := valuation.ValidateAnswers(rec.Category, in.Answers, in.Submit); err != nil {
		return nil, err
	}

	table := s.lookup(ctx, rec)
	input := rec.InputPrice(domain.StageAssessment)

	rec.ClearFrom(domain.StageAssessment)
	rec.AssessmentAnswers = maps.Clone(in.Answers)
	rec.HasAdditionalLens = rec.Category.CameraLike() &&
		in.Answers[valuation.HasAdditionalLensQuestion] == domain.AnswerYes

	out := valuation.Apply(input,
		valuation.AssessmentSelections(rec.Category, in.Answers),
		valuation.AssessmentRules,
		table,
	)
	return s.commit(ctx, rec, domain.StageAssessment, input, out.Price, out.Applied)
}

// CompatibleLenses returns the brand's catalog lenses that fit the body.
func (s *Service) CompatibleLenses(ctx context.Context, id string) (lenses []domain.Lens, mount lens.Mount, err error) {
	ctx, finish := s.startStage(ctx, domain.StageLenses, id)
	defer func() { finish(err) }()

	rec, err := s.load(ctx, id)
	if err != nil {
		return nil, lens.MountUnknown, err
	}
	return s.compatibleLenses(ctx, rec)
}

func (s *Service) compatibleLenses(ctx context.Context, rec *domain.ValuationRecord) ([]domain.Lens, lens.Mount, error) {
	if err := requirePrecursors(rec, domain.StageLenses); err != nil {
		return nil, lens.MountUnknown, err
	}
	if !LensEligible(rec) {
		return nil, lens.MountUnknown, ErrLensStageUnavailable
	}

	mount := lens.DetectBody(rec.BrandName, rec.ModelName)
	catalog, err := s.store.ListLenses(ctx, rec.BrandName)
	if err != nil {
		s.log.WarnContext(ctx, "lens catalog unavailable, offering no lenses",
			"brand", rec.BrandName,
			"error", err,
		)
		return nil, mount, nil
	}
	return lens.Filter(mount, catalog), mount, nil
}

// SelectLenses attaches compatible lenses; each adds its bonus. An empty
// selection is allowed and leaves the price unchanged.
func (s *Service) SelectLenses(ctx context.Context, id string, in LensInput) (res *StageResult, err error) {
	ctx, finish := s.startStage(ctx, domain.StageLenses, id)
	defer func() { finish(err) }()

	rec, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	compatible, _, err := s.compatibleLenses(ctx, rec)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]domain.Lens, len(compatible))
	for _, l := range compatible {
		byID[l.ID] = l
	}

	var (
		selected []domain.SelectedLens
		applied  []valuation.AppliedRule
		bonus    int64
	)
	seen := make(map[string]struct{}, len(in.LensIDs))
	for _, lensID := range in.LensIDs {
		if _, dup := seen[lensID]; dup {
			continue
		}
		seen[lensID] = struct{}{}

		l, ok := byID[lensID]
		if !ok {
			return nil, &valuation.InvalidSelectionError{
				Stage:  domain.StageLenses,
				ID:     lensID,
				Reason: "not compatible with this body",
			}
		}
		b := s.lensBonus.Bonus(l)
		bonus += b
		selected = append(selected, domain.SelectedLens{ID: l.ID, Name: l.Name, Price: l.Price, Bonus: b})
		applied = append(applied, valuation.AppliedRule{
			SelectionID: l.ID,
			RuleID:      l.ID,
			Label:       l.Name,
			Delta:       b,
			Found:       l.Price > 0,
		})
	}

	input := rec.InputPrice(domain.StageLenses)
	rec.ClearFrom(domain.StageLenses)
	rec.SelectedLenses = selected
	rec.LensBonus = bonus

	return s.commit(ctx, rec, domain.StageLenses, input, float64(input+bonus), applied)
}

// ApplyPhysical records one option per condition group.
func (s *Service) ApplyPhysical(ctx context.Context, id string, in PhysicalInput) (res *StageResult, err error) {
	ctx, finish := s.startStage(ctx, domain.StagePhysical, id)
	defer func() { finish(err) }()

	rec, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requirePrecursors(rec, domain.StagePhysical); err != nil {
		return nil, err
	}
	if err := valuation.ValidatePhysical(rec.Category, in.Selections, in.Submit); err != nil {
		return nil, err
	}

	table := s.lookup(ctx, rec)
	input := rec.InputPrice(domain.StagePhysical)

	rec.ClearFrom(domain.StagePhysical)
	rec.PhysicalSelections = maps.Clone(in.Selections)

	out := valuation.Apply(input,
		valuation.PhysicalSelectionIDs(rec.Category, in.Selections),
		valuation.PhysicalRules,
		table,
	)
	return s.commit(ctx, rec, domain.StagePhysical, input, out.Price, out.Applied)
}

// ApplyIssues records functional issues and deducts for each.
func (s *Service) ApplyIssues(ctx context.Context, id string, in SelectionInput) (res *StageResult, err error) {
	ctx, finish := s.startStage(ctx, domain.StageIssues, id)
	defer func() { finish(err) }()

	rec, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requirePrecursors(rec, domain.StageIssues); err != nil {
		return nil, err
	}

	sel, err := valuation.ResolveMulti(domain.StageIssues, valuation.IssueOptions(rec.Category), in.IDs, nil)
	if err != nil {
		return nil, err
	}
	if in.Submit && sel.Empty() {
		return nil, &valuation.IncompleteError{Stage: domain.StageIssues, Item: "issues"}
	}

	table := s.lookup(ctx, rec)
	input := rec.InputPrice(domain.StageIssues)

	rec.ClearFrom(domain.StageIssues)
	rec.Issues = sel.IDs
	rec.NoIssues = sel.None

	out := valuation.Apply(input, sel.IDs, valuation.IssueRules, table)
	return s.commit(ctx, rec, domain.StageIssues, input, out.Price, out.Applied)
}

// ApplyAccessories records handed-over accessories and adds a bonus for
// each. Accessory aliases are stored under their canonical ids.
func (s *Service) ApplyAccessories(ctx context.Context, id string, in SelectionInput) (res *StageResult, err error) {
	ctx, finish := s.startStage(ctx, domain.StageAccessories, id)
	defer func() { finish(err) }()

	rec, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requirePrecursors(rec, domain.StageAccessories); err != nil {
		return nil, err
	}

	sel, err := valuation.ResolveMulti(
		domain.StageAccessories,
		valuation.AccessoryOptions(rec.Category),
		in.IDs,
		valuation.CanonicalAccessory,
	)
	if err != nil {
		return nil, err
	}
	if in.Submit && sel.Empty() {
		return nil, &valuation.IncompleteError{Stage: domain.StageAccessories, Item: "accessories"}
	}

	table := s.lookup(ctx, rec)
	input := rec.InputPrice(domain.StageAccessories)

	rec.ClearFrom(domain.StageAccessories)
	rec.Accessories = sel.IDs
	rec.NoAccessories = sel.None

	out := valuation.Apply(input, sel.IDs, valuation.AccessoryRules, table)
	return s.commit(ctx, rec, domain.StageAccessories, input, out.Price, out.Applied)
}

// Verify marks the session as having passed identity verification.
func (s *Service) Verify(ctx context.Context, id string) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.sessions.SetVerified(ctx, id); err != nil {
		return fmt.Errorf("marking session %s verified: %w", id, err)
	}
	s.log.InfoContext(ctx, "valuation session verified", "session_id", id)
	return nil
}

// Finalize applies the warranty bonus and age deduction, reveals the final
// price and marks the record complete.
func (s *Service) Finalize(ctx context.Context, id string, in WarrantyInput) (res *StageResult, err error) {
	ctx, finish := s.startStage(ctx, domain.StageWarranty, id)
	defer func() { finish(err) }()

	rec, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requirePrecursors(rec, domain.StageWarranty); err != nil {
		return nil, err
	}

	if in.DeviceAge == "" {
		return nil, &valuation.IncompleteError{Stage: domain.StageWarranty, Item: "deviceAge"}
	}
	bucket, ok := s.warranty.Bucket(in.DeviceAge)
	if !ok {
		return nil, &valuation.InvalidSelectionError{
			Stage:  domain.StageWarranty,
			ID:     in.DeviceAge,
			Reason: "unknown device age",
		}
	}

	if s.requireVerification {
		verified, err := s.sessions.Verified(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("reading verification flag: %w", err)
		}
		if !verified {
			return nil, ErrNotVerified
		}
	}

	input := rec.InputPrice(domain.StageWarranty)
	w := s.warranty.ApplyWarranty(input, bucket, rec.Accessories)

	rec.ClearFrom(domain.StageWarranty)
	rec.DeviceAge = bucket.ID
	rec.WarrantyBonus = w.Bonus
	rec.AgeDeduction = w.AgeDeduction
	rec.Completed = true

	var applied []valuation.AppliedRule
	if w.Bonus != 0 {
		applied = append(applied, valuation.AppliedRule{
			SelectionID: s.warranty.BillAccessory,
			RuleID:      "warranty_bonus",
			Label:       "Warranty bonus",
			Delta:       w.Bonus,
			Found:       true,
		})
	}
	if w.AgeDeduction != 0 {
		applied = append(applied, valuation.AppliedRule{
			SelectionID: bucket.ID,
			RuleID:      "age_deduction",
			Label:       bucket.Label,
			Delta:       -w.AgeDeduction,
			Found:       true,
		})
	}

	res, err = s.commit(ctx, rec, domain.StageWarranty, input, w.Price, applied)
	if err != nil {
		return nil, err
	}

	s.offers.Record(ctx, res.Price)
	if rec.OriginalQuotePrice > 0 {
		metrics.FinalOfferRatio.Observe(float64(res.Price) / float64(rec.OriginalQuotePrice))
	}
	return res, nil
}
