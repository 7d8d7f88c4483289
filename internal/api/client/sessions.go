package client

import (
	"context"
	"net/url"

	domain "github.com/donaldgifford/worthyten/pkg/types"
)

// Quote starts a valuation.
type Quote struct {
	Category  string          `json:"category,omitempty"`
	Brand     string          `json:"brand"`
	Model     string          `json:"model"`
	BasePrice int64           `json:"basePrice"`
	Variant   *domain.Variant `json:"variant,omitempty"`
}

// Session is a stored valuation and the stage to continue at.
type Session struct {
	Record domain.ValuationRecord `json:"record"`
	Next   domain.Stage           `json:"next"`
}

// AppliedRule is one adjustment reported by a stage.
type AppliedRule struct {
	SelectionID string `json:"selection_id"`
	RuleID      string `json:"rule_id"`
	Label       string `json:"label,omitempty"`
	Delta       int64  `json:"delta"`
	Found       bool   `json:"found"`
}

// StageResult is the outcome of a stage submission.
type StageResult struct {
	Record  domain.ValuationRecord `json:"record"`
	Stage   domain.Stage           `json:"stage"`
	Input   int64                  `json:"input"`
	Price   int64                  `json:"price"`
	Applied []AppliedRule          `json:"applied"`
	Floored bool                   `json:"floored"`
	Next    domain.Stage           `json:"next"`
}

// CompatibleLenses lists lenses that fit a session's camera body.
type CompatibleLenses struct {
	Mount  string        `json:"mount"`
	Lenses []domain.Lens `json:"lenses"`
}

func sessionPath(id string, parts ...string) string {
	p := "/api/v1/sessions/" + url.PathEscape(id)
	for _, s := range parts {
		p += "/" + s
	}
	return p
}

// CreateSession starts a valuation.
func (c *Client) CreateSession(ctx context.Context, q Quote) (*Session, error) {
	var s Session
	if err := c.post(ctx, "/api/v1/sessions", q, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// GetSession returns a stored valuation.
func (c *Client) GetSession(ctx context.Context, id string) (*Session, error) {
	var s Session
	if err := c.get(ctx, sessionPath(id), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ResetSession discards a valuation.
func (c *Client) ResetSession(ctx context.Context, id string) error {
	return c.del(ctx, sessionPath(id), nil)
}

// Assess submits assessment answers.
func (c *Client) Assess(ctx context.Context, id string, answers map[string]domain.Answer, submit bool) (*StageResult, error) {
	return c.stage(ctx, id, "assessment", map[string]any{"answers": answers, "submit": submit})
}

// ListCompatibleLenses lists the lenses offered for a session.
func (c *Client) ListCompatibleLenses(ctx context.Context, id string) (*CompatibleLenses, error) {
	var out CompatibleLenses
	if err := c.get(ctx, sessionPath(id, "lenses"), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SelectLenses submits the attached lenses.
func (c *Client) SelectLenses(ctx context.Context, id string, lensIDs []string) (*StageResult, error) {
	if lensIDs == nil {
		lensIDs = []string{}
	}
	return c.stage(ctx, id, "lenses", map[string]any{"lensIds": lensIDs})
}

// ApplyPhysical submits physical condition choices.
func (c *Client) ApplyPhysical(ctx context.Context, id string, selections map[string]string, submit bool) (*StageResult, error) {
	return c.stage(ctx, id, "physical", map[string]any{"selections": selections, "submit": submit})
}

// ApplyIssues submits functional issues.
func (c *Client) ApplyIssues(ctx context.Context, id string, ids []string, submit bool) (*StageResult, error) {
	return c.stage(ctx, id, "issues", selection(ids, submit))
}

// ApplyAccessories submits included accessories.
func (c *Client) ApplyAccessories(ctx context.Context, id string, ids []string, submit bool) (*StageResult, error) {
	return c.stage(ctx, id, "accessories", selection(ids, submit))
}

// Verify marks a session as verified.
func (c *Client) Verify(ctx context.Context, id string) error {
	return c.post(ctx, sessionPath(id, "verify"), nil, nil)
}

// Finalize submits the device age and returns the final price.
func (c *Client) Finalize(ctx context.Context, id, deviceAge string) (*StageResult, error) {
	return c.stage(ctx, id, "warranty", map[string]any{"deviceAge": deviceAge})
}

// SubmitOrder turns a completed valuation into an order.
func (c *Client) SubmitOrder(ctx context.Context, id string) (*domain.Order, error) {
	var o domain.Order
	if err := c.post(ctx, sessionPath(id, "order"), nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *Client) stage(ctx context.Context, id, stage string, body any) (*StageResult, error) {
	var res StageResult
	if err := c.post(ctx, sessionPath(id, stage), body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func selection(ids []string, submit bool) map[string]any {
	if ids == nil {
		ids = []string{}
	}
	return map[string]any{"ids": ids, "submit": submit}
}
