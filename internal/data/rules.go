package data

import (
	"fmt"
	"regexp"
)

const (
	dobPattern    = `\d{2}[/-]\d{2}[/-]\d{4}|\d{4}[/-]\d{2}[/-]\d{2}`
	genderPattern = `\b(Male|Female|M|F)\b`

	panPattern            = `\b[A-Z]{5}[0-9]{4}[A-Z]\b`
	aadhaarPattern        = `\b\d{4}\s\d{4}\s\d{4}\b`
	drivingLicensePattern = `\b[A-Z]{2}[- ]?\d{13,15}\b`
	passportPattern       = `\b[A-Z][0-9]{7}\b`
)

// NumberRule is one entry of the document-number precedence list.
type NumberRule struct {
	Label   string
	Pattern *regexp.Regexp
}

// Rules is the full pattern set used by an Extractor. Numbers are tried in
// slice order and the first rule with a match wins.
type Rules struct {
	DateOfBirth *regexp.Regexp
	Gender      *regexp.Regexp
	Numbers     []NumberRule
}

type RulesOption func(*rulesConfig)

type rulesConfig struct {
	genderFold bool
}

// WithGenderFold makes the gender pattern case-insensitive, so "MALE" or
// "female" in all-caps OCR output still match.
func WithGenderFold(fold bool) RulesOption {
	return func(c *rulesConfig) { c.genderFold = fold }
}

// DefaultRules returns the stock patterns with the PAN, Aadhaar, driving
// license, passport precedence.
func DefaultRules(opts ...RulesOption) Rules {
	var cfg rulesConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	gender := genderPattern
	if cfg.genderFold {
		gender = `(?i)` + gender
	}

	return Rules{
		DateOfBirth: regexp.MustCompile(dobPattern),
		Gender:      regexp.MustCompile(gender),
		Numbers: []NumberRule{
			{Label: "pan", Pattern: regexp.MustCompile(panPattern)},
			{Label: "aadhaar", Pattern: regexp.MustCompile(aadhaarPattern)},
			{Label: "driving_license", Pattern: regexp.MustCompile(drivingLicensePattern)},
			{Label: "passport", Pattern: regexp.MustCompile(passportPattern)},
		},
	}
}

func (r Rules) validate() error {
	if r.DateOfBirth == nil {
		return fmt.Errorf("missing date of birth pattern")
	}
	if r.Gender == nil {
		return fmt.Errorf("missing gender pattern")
	}
	for i, rule := range r.Numbers {
		if rule.Pattern == nil {
			return fmt.Errorf("number rule %d (%s) has no pattern", i, rule.Label)
		}
	}
	return nil
}
