package valuation

import (
	domain "github.com/donaldgifford/worthyten/pkg/types"
)

// AssessmentRules deducts for every question answered "no".
var AssessmentRules = RuleSet{
	Stage:     domain.StageAssessment,
	Section:   domain.SectionAssessment,
	Direction: Deduct,
}

// PhysicalRules deducts per selected condition option. Physical options share
// the issues section of the pricing table.
var PhysicalRules = RuleSet{
	Stage:     domain.StagePhysical,
	Section:   domain.SectionIssues,
	Direction: Deduct,
	IDMap: map[string]string{
		"error_present": "error_messages",
	},
}

// IssueRules deducts per selected functional issue.
var IssueRules = RuleSet{
	Stage:     domain.StageIssues,
	Section:   domain.SectionIssues,
	Direction: Deduct,
	IDMap: map[string]string{
		"battery":      "battery_weak",
		"charging":     "charging_port_faulty",
		"speaker":      "speaker_faulty",
		"microphone":   "mic_faulty",
		"wifi":         "wifi_faulty",
		"camera":       "camera_faulty",
		"face_id":      "biometric_faulty",
		"fingerprint":  "biometric_faulty",
		"buttons":      "buttons_faulty",
		"flash":        "flash_faulty",
		"shutter":      "shutter_faulty",
		"viewfinder":   "viewfinder_faulty",
		"autofocus":    "autofocus_faulty",
		"trackpad":     "trackpad_faulty",
		"keyboard":     "keyboard_faulty",
		"ports":        "ports_faulty",
		"display":      "display_faulty",
		"strap_sensor": "sensor_faulty",
	},
}

// AccessoryRules adds a bonus per selected accessory.
var AccessoryRules = RuleSet{
	Stage:     domain.StageAccessories,
	Section:   domain.SectionAccessories,
	Direction: Bonus,
}

// AssessmentSelections returns the question ids answered "no", in
// questionnaire order, skipping routing-only questions.
func AssessmentSelections(category domain.Category, answers map[string]domain.Answer) []string {
	var ids []string
	for _, q := range Questions(category) {
		if q.RoutingOnly {
			continue
		}
		if answers[q.ID] == domain.AnswerNo {
			ids = append(ids, q.ID)
		}
	}
	return ids
}

// PhysicalSelectionIDs returns the selected option ids in group order.
func PhysicalSelectionIDs(category domain.Category, selections map[string]string) []string {
	var ids []string
	for _, g := range PhysicalGroups(category) {
		if opt, ok := selections[g.ID]; ok {
			ids = append(ids, opt)
		}
	}
	return ids
}
