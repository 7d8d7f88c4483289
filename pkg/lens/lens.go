// Package lens detects camera mount families from brand/model names and
// filters a lens catalog down to the lenses that fit a given body.
package lens

import (
	"math"
	"regexp"
	"strings"

	domain "github.com/donaldgifford/worthyten/pkg/types"
)

// Mount is a lens-attachment standard.
type Mount string

// Mount constants.
const (
	MountUnknown  Mount = ""
	MountFixed    Mount = "fixed"
	MountCanonEF  Mount = "canon-ef"
	MountCanonEFS Mount = "canon-ef-s"
	MountCanonRF  Mount = "canon-rf"
	MountCanonEFM Mount = "canon-ef-m"
	MountNikonF   Mount = "nikon-f"
	MountNikonZ   Mount = "nikon-z"
	MountSonyE    Mount = "sony-e"
	MountSonyA    Mount = "sony-a"
	MountFujiX    Mount = "fujifilm-x"
	MountFujiGF   Mount = "fujifilm-gf"
)

// Interchangeable reports whether the mount accepts additional lenses.
func (m Mount) Interchangeable() bool {
	return m != MountUnknown && m != MountFixed
}

// pattern ties a brand and a case-insensitive name pattern to a mount.
// Tables are evaluated in order; the first match wins.
type pattern struct {
	brand string
	re    *regexp.Regexp
	mount Mount
}

func p(brand, expr string, m Mount) pattern {
	return pattern{brand: brand, re: regexp.MustCompile(`(?i)` + expr), mount: m}
}

// bodyPatterns maps camera body model names to their mount.
var bodyPatterns = []pattern{
	p("canon", `powershot|\bixus\b|\bg\d+ ?x\b`, MountFixed),
	p("canon", `\beos ?m\d*\b`, MountCanonEFM),
	p("canon", `\beos ?(r\d*|rp)\b`, MountCanonRF),
	p("canon", `\beos[- ]?(1d|5d|6d)`, MountCanonEF),
	p("canon", `\beos ?\d+d\b|\brebel\b|\bkiss\b`, MountCanonEFS),

	p("nikon", `coolpix`, MountFixed),
	p("nikon", `\bz ?(\d+|fc|f)(ii|iii)?\b`, MountNikonZ),
	p("nikon", `\bd\d{1,4}\b`, MountNikonF),

	p("sony", `\brx\d+|\bzv-?1\b|\bhx\d+|\bdsc-`, MountFixed),
	p("sony", `\bslt-|\bilca-|\b(alpha ?|a)(99|77|68|65|58|57|55|37|35|33|900|850|700|580|390)\b`, MountSonyA),
	p("sony", `\bilce-|\bnex-|\bzv-?e\d+|\bfx\d+\b|\b(alpha ?|a)(7|9|1\b|6\d{3})`, MountSonyE),

	p("fujifilm", `x100|\bxf10\b|\bx30\b|\bxq\d|finepix`, MountFixed),
	p("fujifilm", `\bgfx`, MountFujiGF),
	p("fujifilm", `\bx-(t|s|e|h|pro|a|m)\d*`, MountFujiX),
}

// lensPatterns maps lens names to the mount they are built for.
var lensPatterns = []pattern{
	p("canon", `\brf(-s)?(\b|\d)`, MountCanonRF),
	p("canon", `\bef-m(\b|\d)`, MountCanonEFM),
	p("canon", `\bef-s(\b|\d)`, MountCanonEFS),
	p("canon", `\bef(\b|\d)`, MountCanonEF),

	p("nikon", `\bnikkor z\b|\bz (dx )?\d`, MountNikonZ),
	p("nikon", `\baf-[sp]\b|\baf\b|\bai-?s?\b|\bnikkor\b`, MountNikonF),

	p("sony", `\bsal\d|\bdt\b|a-?mount`, MountSonyA),
	p("sony", `\bsel\d|\bfe\b|\be (pz )?\d|e-?mount`, MountSonyE),

	p("fujifilm", `\bgf ?\d`, MountFujiGF),
	p("fujifilm", `\bx[fc] ?\d`, MountFujiX),
}

// accepts lists the lens mounts each body mount can use natively.
var accepts = map[Mount][]Mount{
	MountCanonEF:  {MountCanonEF},
	MountCanonEFS: {MountCanonEF, MountCanonEFS},
	MountCanonRF:  {MountCanonRF},
	MountCanonEFM: {MountCanonEFM},
	MountNikonF:   {MountNikonF},
	MountNikonZ:   {MountNikonZ},
	MountSonyE:    {MountSonyE},
	MountSonyA:    {MountSonyA},
	MountFujiX:    {MountFujiX},
	MountFujiGF:   {MountFujiGF},
}

var brandAliases = map[string]string{
	"fuji":     "fujifilm",
	"fujifilm": "fujifilm",
	"canon":    "canon",
	"nikon":    "nikon",
	"sony":     "sony",
}

func normalizeBrand(b string) string {
	return brandAliases[strings.ToLower(strings.TrimSpace(b))]
}

func match(table []pattern, brand, name string) Mount {
	b := normalizeBrand(brand)
	if b == "" {
		return MountUnknown
	}
	for _, pt := range table {
		if pt.brand == b && pt.re.MatchString(name) {
			return pt.mount
		}
	}
	return MountUnknown
}

// DetectBody returns the mount of a camera body, MountFixed for fixed-lens
// cameras and MountUnknown when the brand or model is not recognized.
func DetectBody(brand, model string) Mount {
	return match(bodyPatterns, brand, model)
}

// DetectLens returns the mount a lens is built for, or MountUnknown.
func DetectLens(brand, name string) Mount {
	return match(lensPatterns, brand, name)
}

// Compatible reports whether a lens fits a body mount.
func Compatible(body Mount, l domain.Lens) bool {
	lm := DetectLens(l.Brand, l.Name)
	if lm == MountUnknown {
		return false
	}
	for _, m := range accepts[body] {
		if m == lm {
			return true
		}
	}
	return false
}

// Filter returns the lenses from catalog that fit body. An unknown or fixed
// mount yields no lenses.
func Filter(body Mount, catalog []domain.Lens) []domain.Lens {
	if !body.Interchangeable() {
		return nil
	}
	var out []domain.Lens
	for _, l := range catalog {
		if Compatible(body, l) {
			out = append(out, l)
		}
	}
	return out
}

// BonusPolicy prices attached lenses.
type BonusPolicy struct {
	Percent      float64
	DefaultBonus int64
}

// DefaultBonusPolicy returns 15% of the lens price, or ₹1,000 when the lens
// price is unknown.
func DefaultBonusPolicy() BonusPolicy {
	return BonusPolicy{Percent: 15, DefaultBonus: 1000}
}

// Bonus returns the bonus one lens adds to the offer.
func (b BonusPolicy) Bonus(l domain.Lens) int64 {
	if l.Price <= 0 {
		return b.DefaultBonus
	}
	return int64(math.Round(float64(l.Price) * b.Percent / 100))
}
