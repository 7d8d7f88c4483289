package flow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/worthyten/internal/store"
	"github.com/donaldgifford/worthyten/pkg/lens"
	domain "github.com/donaldgifford/worthyten/pkg/types"
	"github.com/donaldgifford/worthyten/pkg/valuation"
)

func sonyCatalog() []domain.Lens {
	return []domain.Lens{
		{ID: "sony-dt-18-55", Brand: "Sony", Name: "DT 18-55mm F3.5-5.6 SAM", Price: 8000},
		{ID: "sony-sal50", Brand: "Sony", Name: "50mm F1.4 (SAL50F14)", Price: 22000},
		{ID: "sony-fe-24-70", Brand: "Sony", Name: "FE 24-70mm F2.8 GM", Price: 150000},
		{ID: "sony-fe-50", Brand: "Sony", Name: "FE 50mm F1.8"},
	}
}

func cameraAnswers(additionalLens domain.Answer) map[string]domain.Answer {
	return map[string]domain.Answer{
		"powerOn":                           domain.AnswerYes,
		"bodyIntact":                        domain.AnswerYes,
		"screenIntact":                      domain.AnswerYes,
		"lensIntact":                        domain.AnswerYes,
		"autofocusWorks":                    domain.AnswerYes,
		valuation.HasAdditionalLensQuestion: additionalLens,
	}
}

func cameraPhysical() map[string]string {
	return map[string]string{
		"display": "display_good",
		"body":    "body_good",
		"error":   "error_none",
		"lens":    "lens_scratched",
	}
}

// startCamera creates an assessed camera session. Pricing lookups for the
// body report no table.
func (f *fixture) startCamera(t *testing.T, model string, additionalLens domain.Answer) string {
	t.Helper()
	ctx := context.Background()

	f.store.EXPECT().
		GetPricingTable(mock.Anything, "Sony", model).
		Return(nil, store.ErrNotFound).
		Maybe()

	rec, err := f.svc.CreateSession(ctx, Quote{
		Category:  "DSLR Cameras",
		Brand:     "Sony",
		Model:     model,
		BasePrice: 90000,
	})
	require.NoError(t, err)
	require.Equal(t, domain.CategoryCamera, rec.Category)

	res, err := f.svc.Assess(ctx, rec.SessionID, AssessmentInput{
		Answers: cameraAnswers(additionalLens),
		Submit:  true,
	})
	require.NoError(t, err)
	require.Equal(t, int64(90000), res.Price)
	return rec.SessionID
}

func TestLenses_CompatibleAndSelected(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	f.store.EXPECT().ListLenses(mock.Anything, "Sony").Return(sonyCatalog(), nil).Times(2)

	id := f.startCamera(t, "Alpha A7 III", domain.AnswerYes)

	rec, err := f.svc.GetSession(ctx, id)
	require.NoError(t, err)
	assert.True(t, rec.HasAdditionalLens)
	assert.Equal(t, domain.StageLenses, NextStage(rec))

	lenses, mount, err := f.svc.CompatibleLenses(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, lens.MountSonyE, mount)

	ids := make([]string, 0, len(lenses))
	for _, l := range lenses {
		ids = append(ids, l.ID)
	}
	assert.Equal(t, []string{"sony-fe-24-70", "sony-fe-50"}, ids, "A-mount lenses must not be offered")

	res, err := f.svc.SelectLenses(ctx, id, LensInput{LensIDs: []string{"sony-fe-24-70", "sony-fe-50", "sony-fe-24-70"}})
	require.NoError(t, err)
	assert.Equal(t, int64(90000), res.Input)
	assert.Equal(t, int64(113500), res.Price)
	assert.Equal(t, int64(23500), res.Record.LensBonus)
	require.Len(t, res.Record.SelectedLenses, 2)
	assert.Equal(t, int64(22500), res.Record.SelectedLenses[0].Bonus)
	assert.Equal(t, int64(1000), res.Record.SelectedLenses[1].Bonus)
	assert.Equal(t, domain.StagePhysical, res.Next)

	// Physical condition prefers the lens output over the assessment output.
	phys, err := f.svc.ApplyPhysical(ctx, id, PhysicalInput{Selections: cameraPhysical(), Submit: true})
	require.NoError(t, err)
	assert.Equal(t, int64(113500), phys.Input)
	assert.Equal(t, int64(113500), phys.Price)
}

func TestLenses_SkippedFallsBackToAssessment(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	id := f.startCamera(t, "Alpha A7 III", domain.AnswerYes)

	res, err := f.svc.ApplyPhysical(ctx, id, PhysicalInput{Selections: cameraPhysical(), Submit: true})
	require.NoError(t, err)
	assert.Equal(t, int64(90000), res.Input)
	assert.Equal(t, domain.StageIssues, res.Next)

	_, ok := res.Record.PriceAfter(domain.StageLenses)
	assert.False(t, ok)
}

func TestLenses_IncompatibleRejected(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	f.store.EXPECT().ListLenses(mock.Anything, "Sony").Return(sonyCatalog(), nil).Once()

	id := f.startCamera(t, "Alpha A7 III", domain.AnswerYes)

	_, err := f.svc.SelectLenses(ctx, id, LensInput{LensIDs: []string{"sony-dt-18-55"}})
	var invalid *valuation.InvalidSelectionError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, domain.StageLenses, invalid.Stage)
	assert.Equal(t, "sony-dt-18-55", invalid.ID)

	rec, err := f.svc.GetSession(ctx, id)
	require.NoError(t, err)
	_, ok := rec.PriceAfter(domain.StageLenses)
	assert.False(t, ok, "rejected selection must not commit")
}

func TestLenses_EmptySelectionAllowed(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	f.store.EXPECT().ListLenses(mock.Anything, "Sony").Return(sonyCatalog(), nil).Once()

	id := f.startCamera(t, "Alpha A7 III", domain.AnswerYes)

	res, err := f.svc.SelectLenses(ctx, id, LensInput{})
	require.NoError(t, err)
	assert.Equal(t, int64(90000), res.Price)
	assert.Equal(t, domain.StagePhysical, res.Next)
}

func TestLenses_CatalogFailureOffersNothing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	f.store.EXPECT().ListLenses(mock.Anything, "Sony").Return(nil, errors.New("timeout")).Once()

	id := f.startCamera(t, "Alpha A7 III", domain.AnswerYes)

	lenses, mount, err := f.svc.CompatibleLenses(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, lens.MountSonyE, mount)
	assert.Empty(t, lenses)
}

func TestLenses_StageUnavailable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		model          string
		additionalLens domain.Answer
	}{
		{name: "no additional lens", model: "Alpha A7 III", additionalLens: domain.AnswerNo},
		{name: "fixed-lens body", model: "RX100 VII", additionalLens: domain.AnswerYes},
		{name: "unrecognized body", model: "Mystery 9000", additionalLens: domain.AnswerYes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			f := newFixture(t)
			id := f.startCamera(t, tt.model, tt.additionalLens)

			_, _, err := f.svc.CompatibleLenses(ctx, id)
			require.ErrorIs(t, err, ErrLensStageUnavailable)

			_, err = f.svc.SelectLenses(ctx, id, LensInput{LensIDs: []string{"sony-fe-50"}})
			require.ErrorIs(t, err, ErrLensStageUnavailable)

			rec, err := f.svc.GetSession(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, domain.StagePhysical, NextStage(rec))
		})
	}
}

func TestLenses_PhoneIsNotEligible(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.expectTable(iphoneTable(), nil, 1)

	id := f.startPhone(t)
	f.advancePhone(t, id, domain.StagePhysical)

	_, _, err := f.svc.CompatibleLenses(context.Background(), id)
	require.ErrorIs(t, err, ErrLensStageUnavailable)
}

func TestLenses_RequireAssessment(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	rec, err := f.svc.CreateSession(context.Background(), Quote{
		Category:  "camera",
		Brand:     "Sony",
		Model:     "Alpha A7 III",
		BasePrice: 90000,
	})
	require.NoError(t, err)

	_, _, err = f.svc.CompatibleLenses(context.Background(), rec.SessionID)
	var redirect *RedirectError
	require.ErrorAs(t, err, &redirect)
	assert.Equal(t, domain.StageAssessment, redirect.Stage)
}
