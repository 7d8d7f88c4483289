package valuation

import (
	"fmt"
	"slices"

	domain "github.com/donaldgifford/worthyten/pkg/types"
)

// IncompleteError is returned when a stage is submitted before every
// required selection is made. Item names the first missing selection.
type IncompleteError struct {
	Stage domain.Stage
	Item  string
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("%s: %s is required", e.Stage, e.Item)
}

// InvalidSelectionError is returned for an id the stage does not offer.
type InvalidSelectionError struct {
	Stage  domain.Stage
	ID     string
	Reason string
}

func (e *InvalidSelectionError) Error() string {
	return fmt.Sprintf("%s: invalid selection %q: %s", e.Stage, e.ID, e.Reason)
}

// ValidateAnswers checks assessment answers. Unknown question ids and values
// other than yes/no are rejected. When complete is set every question must
// be answered.
func ValidateAnswers(c domain.Category, answers map[string]domain.Answer, complete bool) error {
	qs := Questions(c)
	for id, a := range answers {
		if !slices.ContainsFunc(qs, func(q Question) bool { return q.ID == id }) {
			return &InvalidSelectionError{Stage: domain.StageAssessment, ID: id, Reason: "unknown question"}
		}
		if !a.Valid() {
			return &InvalidSelectionError{Stage: domain.StageAssessment, ID: id, Reason: "answer must be yes or no"}
		}
	}
	if !complete {
		return nil
	}
	for _, q := range qs {
		if _, ok := answers[q.ID]; !ok {
			return &IncompleteError{Stage: domain.StageAssessment, Item: q.ID}
		}
	}
	return nil
}

// ValidatePhysical checks that each selection names a known group and one of
// that group's options. When complete is set every group needs a selection.
func ValidatePhysical(c domain.Category, selections map[string]string, complete bool) error {
	groups := PhysicalGroups(c)
	for groupID, opt := range selections {
		idx := slices.IndexFunc(groups, func(g OptionGroup) bool { return g.ID == groupID })
		if idx < 0 {
			return &InvalidSelectionError{Stage: domain.StagePhysical, ID: groupID, Reason: "unknown condition group"}
		}
		if !hasOption(groups[idx].Options, opt) {
			return &InvalidSelectionError{
				Stage:  domain.StagePhysical,
				ID:     opt,
				Reason: "not an option of " + groupID,
			}
		}
	}
	if !complete {
		return nil
	}
	for _, g := range groups {
		if _, ok := selections[g.ID]; !ok {
			return &IncompleteError{Stage: domain.StagePhysical, Item: g.ID}
		}
	}
	return nil
}

// MultiSelect is the state of a multi-select stage with an explicit "none"
// choice.
type MultiSelect struct {
	IDs  []string
	None bool
}

// choose records one choice. "none" clears every specific id and a specific
// id clears "none". Choosing an id twice is a no-op.
func (m MultiSelect) choose(id string) MultiSelect {
	if id == domain.NoneSelection {
		return MultiSelect{None: true}
	}
	if slices.Contains(m.IDs, id) {
		return m
	}
	return MultiSelect{IDs: append(slices.Clone(m.IDs), id)}
}

// Empty reports whether nothing has been chosen.
func (m MultiSelect) Empty() bool {
	return !m.None && len(m.IDs) == 0
}

// ResolveMulti turns a requested list of ids into a MultiSelect. Ids are
// processed in order with "last choice wins" exclusivity between "none" and
// specific ids; duplicates are collapsed. canonical, when non-nil, rewrites
// ids before validation.
func ResolveMulti(
	stage domain.Stage,
	offered []Option,
	requested []string,
	canonical func(string) string,
) (MultiSelect, error) {
	var m MultiSelect
	for _, raw := range requested {
		id := raw
		if canonical != nil {
			id = canonical(raw)
		}
		if id != domain.NoneSelection && !hasOption(offered, id) {
			return MultiSelect{}, &InvalidSelectionError{Stage: stage, ID: raw, Reason: "not offered for this device"}
		}
		m = m.choose(id)
	}
	return m, nil
}

func hasOption(opts []Option, id string) bool {
	return slices.ContainsFunc(opts, func(o Option) bool { return o.ID == id })
}
