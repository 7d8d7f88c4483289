package valuation

import (
	"math"
	"slices"
)

// AgeBucket is a coarse device-age choice offered at the warranty stage.
// MaxMonths of 0 means the bucket is open-ended.
type AgeBucket struct {
	ID               string  `json:"id"                yaml:"id"`
	Label            string  `json:"label"             yaml:"label"`
	MaxMonths        int     `json:"max_months"        yaml:"max_months"`
	DeductionPercent float64 `json:"deduction_percent" yaml:"deduction_percent"`
}

// WarrantyPolicy configures the only stage that uses percentage math.
type WarrantyPolicy struct {
	BonusPercent  float64
	MaxAgeMonths  int
	BillAccessory string
	Buckets       []AgeBucket
}

// DefaultAgeBuckets returns the standard device-age buckets.
func DefaultAgeBuckets() []AgeBucket {
	return []AgeBucket{
		{ID: "less-than-1", Label: "Less than 1 year", MaxMonths: 12, DeductionPercent: 0},
		{ID: "1-to-2", Label: "1 to 2 years", MaxMonths: 24, DeductionPercent: 10},
		{ID: "2-to-3", Label: "2 to 3 years", MaxMonths: 36, DeductionPercent: 20},
		{ID: "more-than-3", Label: "More than 3 years", MaxMonths: 0, DeductionPercent: 30},
	}
}

// DefaultWarrantyPolicy returns the standard policy: a 5% bonus for devices
// under a year old that come with the bill.
func DefaultWarrantyPolicy() WarrantyPolicy {
	return WarrantyPolicy{
		BonusPercent:  5,
		MaxAgeMonths:  12,
		BillAccessory: BillAccessory,
		Buckets:       DefaultAgeBuckets(),
	}
}

// Bucket looks up an age bucket by id.
func (p WarrantyPolicy) Bucket(id string) (AgeBucket, bool) {
	i := slices.IndexFunc(p.Buckets, func(b AgeBucket) bool { return b.ID == id })
	if i < 0 {
		return AgeBucket{}, false
	}
	return p.Buckets[i], true
}

// UnderWarranty reports whether a bucket lies within the warranty age.
func (p WarrantyPolicy) UnderWarranty(b AgeBucket) bool {
	return b.MaxMonths > 0 && b.MaxMonths <= p.MaxAgeMonths
}

// WarrantyResult is the unfloored output of the warranty stage.
type WarrantyResult struct {
	Input        int64   `json:"input"`
	Price        float64 `json:"price"`
	Bonus        int64   `json:"bonus"`
	AgeDeduction int64   `json:"age_deduction"`
}

// ApplyWarranty applies the warranty bonus (if the device is young enough
// and the bill was handed over) and then the age deduction.
func (p WarrantyPolicy) ApplyWarranty(input int64, b AgeBucket, accessories []string) WarrantyResult {
	res := WarrantyResult{Input: input, Price: float64(input)}

	if p.UnderWarranty(b) && slices.Contains(accessories, p.BillAccessory) {
		before := res.Price
		res.Price *= 1 + p.BonusPercent/100
		res.Bonus = roundDelta(res.Price - before)
	}

	if b.DeductionPercent > 0 {
		before := res.Price
		res.Price *= 1 - b.DeductionPercent/100
		res.AgeDeduction = roundDelta(before - res.Price)
	}

	return res
}

func roundDelta(d float64) int64 {
	return int64(math.Round(d))
}
