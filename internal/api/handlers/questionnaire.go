package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domain "github.com/donaldgifford/worthyten/pkg/types"
	"github.com/donaldgifford/worthyten/pkg/valuation"
)

// QuestionnaireHandler serves the per-category stage options a client
// renders.
type QuestionnaireHandler struct {
	warranty valuation.WarrantyPolicy
}

// NewQuestionnaireHandler creates a QuestionnaireHandler.
func NewQuestionnaireHandler(w valuation.WarrantyPolicy) *QuestionnaireHandler {
	return &QuestionnaireHandler{warranty: w}
}

// GetQuestionnaireInput selects the category.
type GetQuestionnaireInput struct {
	Category string `path:"category" doc:"Category or a synonym" example:"phone"`
}

// GetQuestionnaireOutput lists the options of every stage.
type GetQuestionnaireOutput struct {
	Body struct {
		Category    domain.Category         `json:"category"`
		Questions   []valuation.Question    `json:"questions"`
		Physical    []valuation.OptionGroup `json:"physical"`
		Issues      []valuation.Option      `json:"issues"`
		Accessories []valuation.Option      `json:"accessories"`
		AgeBuckets  []valuation.AgeBucket   `json:"ageBuckets"`
	}
}

// GetQuestionnaire returns the stage options for a category. Unknown
// categories get the generic questionnaire.
func (h *QuestionnaireHandler) GetQuestionnaire(
	_ context.Context,
	input *GetQuestionnaireInput,
) (*GetQuestionnaireOutput, error) {
	c, _ := domain.ParseCategory(input.Category)

	resp := &GetQuestionnaireOutput{}
	resp.Body.Category = c
	resp.Body.Questions = valuation.Questions(c)
	resp.Body.Physical = valuation.PhysicalGroups(c)
	resp.Body.Issues = valuation.IssueOptions(c)
	resp.Body.Accessories = valuation.AccessoryOptions(c)
	resp.Body.AgeBuckets = h.warranty.Buckets
	return resp, nil
}

// RegisterQuestionnaireRoutes registers the questionnaire route on the Huma API.
func RegisterQuestionnaireRoutes(api huma.API, h *QuestionnaireHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-questionnaire",
		Method:      http.MethodGet,
		Path:        "/api/v1/questionnaire/{category}",
		Summary:     "Get stage options",
		Description: "Returns questions and selectable options for every stage of a category.",
		Tags:        []string{"questionnaire"},
	}, h.GetQuestionnaire)
}
