package valuation

import (
	"strings"

	domain "github.com/donaldgifford/worthyten/pkg/types"
)

// HasAdditionalLensQuestion is the routing-only assessment question that
// decides whether the lens stage is offered.
const HasAdditionalLensQuestion = "hasAdditionalLens"

// BillAccessory is the canonical accessory id for the purchase bill/invoice.
const BillAccessory = "bill"

// Question is one yes/no assessment question. A "no" answer triggers the
// deduction configured under the question id.
type Question struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	RoutingOnly bool   `json:"routing_only,omitempty"`
}

// Option is one selectable choice.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// OptionGroup is a physical-condition sub-category; exactly one option must
// be chosen.
type OptionGroup struct {
	ID      string   `json:"id"`
	Label   string   `json:"label"`
	Options []Option `json:"options"`
}

var (
	qPowerOn       = Question{ID: "powerOn", Text: "Does the device power on?"}
	qScreenIntact  = Question{ID: "screenIntact", Text: "Is the screen free of cracks and dead pixels?"}
	qBodyIntact    = Question{ID: "bodyIntact", Text: "Is the body free of major damage?"}
	qCameraWorks   = Question{ID: "cameraWorks", Text: "Do the front and rear cameras work?"}
	qKeyboardWorks = Question{ID: "keyboardWorks", Text: "Do the keyboard and trackpad work?"}
	qLensIntact    = Question{ID: "lensIntact", Text: "Is the lens free of scratches, fungus and haze?"}
	qAutofocus     = Question{ID: "autofocusWorks", Text: "Do autofocus and zoom work?"}
	qAdditional    = Question{
		ID:          HasAdditionalLensQuestion,
		Text:        "Do you have additional lenses to sell with the body?",
		RoutingOnly: true,
	}
)

var questionnaires = map[domain.Category][]Question{
	domain.CategoryPhone:  {qPowerOn, qScreenIntact, qBodyIntact, qCameraWorks},
	domain.CategoryTablet: {qPowerOn, qScreenIntact, qBodyIntact},
	domain.CategoryLaptop: {qPowerOn, qScreenIntact, qBodyIntact, qKeyboardWorks},
	domain.CategoryCamera: {qPowerOn, qBodyIntact, qScreenIntact, qLensIntact, qAutofocus, qAdditional},
}

var defaultQuestionnaire = []Question{qPowerOn, qScreenIntact, qBodyIntact}

// Questions returns the assessment questionnaire for a category.
func Questions(c domain.Category) []Question {
	if qs, ok := questionnaires[c]; ok {
		return qs
	}
	return defaultQuestionnaire
}

var (
	groupDisplay = OptionGroup{ID: "display", Label: "Display", Options: []Option{
		{ID: "display_good", Label: "Flawless"},
		{ID: "display_scratched", Label: "Minor scratches"},
		{ID: "display_cracked", Label: "Cracked or broken"},
	}}
	groupBody = OptionGroup{ID: "body", Label: "Body", Options: []Option{
		{ID: "body_good", Label: "Like new"},
		{ID: "body_scratches", Label: "Visible scratches"},
		{ID: "body_dents", Label: "Dents or cracks"},
	}}
	groupError = OptionGroup{ID: "error", Label: "Error messages", Options: []Option{
		{ID: "error_none", Label: "No error messages"},
		{ID: "error_present", Label: "Shows error messages"},
	}}
	groupLens = OptionGroup{ID: "lens", Label: "Lens", Options: []Option{
		{ID: "lens_good", Label: "Clear"},
		{ID: "lens_scratched", Label: "Scratched"},
		{ID: "lens_fungus", Label: "Fungus or haze"},
	}}
	groupFrame = OptionGroup{ID: "frame", Label: "Frame", Options: []Option{
		{ID: "frame_good", Label: "Straight"},
		{ID: "frame_bent", Label: "Bent or cracked"},
	}}
	groupKeyboard = OptionGroup{ID: "keyboard", Label: "Keyboard", Options: []Option{
		{ID: "keyboard_good", Label: "All keys work"},
		{ID: "keyboard_faulty", Label: "Missing or faulty keys"},
	}}
)

// PhysicalGroups returns the required physical-condition sub-categories for
// a category.
func PhysicalGroups(c domain.Category) []OptionGroup {
	groups := []OptionGroup{groupDisplay, groupBody, groupError}
	switch c {
	case domain.CategoryCamera:
		groups = append(groups, groupLens)
	case domain.CategoryPhone:
		groups = append(groups, groupFrame)
	case domain.CategoryLaptop:
		groups = append(groups, groupKeyboard)
	}
	return groups
}

var commonIssues = []Option{
	{ID: "battery", Label: "Weak battery"},
	{ID: "charging", Label: "Charging port faulty"},
	{ID: "buttons", Label: "Buttons not working"},
}

var issueOptions = map[domain.Category][]Option{
	domain.CategoryPhone: {
		{ID: "speaker", Label: "Speaker faulty"},
		{ID: "microphone", Label: "Microphone faulty"},
		{ID: "wifi", Label: "WiFi/Bluetooth faulty"},
		{ID: "camera", Label: "Camera faulty"},
		{ID: "face_id", Label: "Face ID not working"},
		{ID: "fingerprint", Label: "Fingerprint sensor not working"},
	},
	domain.CategoryTablet: {
		{ID: "speaker", Label: "Speaker faulty"},
		{ID: "wifi", Label: "WiFi/Bluetooth faulty"},
		{ID: "camera", Label: "Camera faulty"},
		{ID: "display", Label: "Touch or display faulty"},
	},
	domain.CategoryLaptop: {
		{ID: "speaker", Label: "Speaker faulty"},
		{ID: "wifi", Label: "WiFi/Bluetooth faulty"},
		{ID: "keyboard", Label: "Keyboard faulty"},
		{ID: "trackpad", Label: "Trackpad faulty"},
		{ID: "ports", Label: "USB/HDMI ports faulty"},
		{ID: "display", Label: "Display lines or flicker"},
	},
	domain.CategoryCamera: {
		{ID: "shutter", Label: "Shutter faulty"},
		{ID: "flash", Label: "Flash not working"},
		{ID: "viewfinder", Label: "Viewfinder faulty"},
		{ID: "autofocus", Label: "Autofocus faulty"},
		{ID: "display", Label: "LCD faulty"},
	},
	domain.CategorySmartwatch: {
		{ID: "strap_sensor", Label: "Heart-rate sensor faulty"},
		{ID: "display", Label: "Touch or display faulty"},
	},
}

// IssueOptions returns the functional issues offered for a category.
func IssueOptions(c domain.Category) []Option {
	opts := append([]Option(nil), commonIssues...)
	return append(opts, issueOptions[c]...)
}

var commonAccessories = []Option{
	{ID: "original_charger", Label: "Original charger"},
	{ID: "original_box", Label: "Original box"},
	{ID: BillAccessory, Label: "Purchase bill"},
}

var accessoryOptions = map[domain.Category][]Option{
	domain.CategoryPhone: {
		{ID: "original_cable", Label: "Original cable"},
		{ID: "earphones", Label: "Earphones"},
	},
	domain.CategoryLaptop: {
		{ID: "original_cable", Label: "Original cable"},
		{ID: "camera_bag", Label: "Laptop bag"},
	},
	domain.CategoryCamera: {
		{ID: "lens_cap", Label: "Lens cap"},
		{ID: "extra_battery", Label: "Extra battery"},
		{ID: "strap", Label: "Strap"},
		{ID: "camera_bag", Label: "Camera bag"},
	},
	domain.CategorySmartwatch: {
		{ID: "strap", Label: "Extra strap"},
	},
}

// AccessoryOptions returns the accessories offered for a category.
func AccessoryOptions(c domain.Category) []Option {
	opts := append([]Option(nil), commonAccessories...)
	return append(opts, accessoryOptions[c]...)
}

// accessoryAliases maps legacy and brand-specific accessory ids onto the
// canonical ids used everywhere else, including the warranty bill check.
var accessoryAliases = map[string]string{
	"charger":       "original_charger",
	"box":           "original_box",
	"original_bill": BillAccessory,
	"invoice":       BillAccessory,
	"purchase_bill": BillAccessory,
	"cable":         "original_cable",
	"battery":       "extra_battery",
	"bag":           "camera_bag",
}

// CanonicalAccessory resolves an accessory alias to its canonical id.
func CanonicalAccessory(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	if canon, ok := accessoryAliases[id]; ok {
		return canon
	}
	return id
}
