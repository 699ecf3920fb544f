package data

import (
	"fmt"
	"regexp"
	"strings"
)

type Extractor struct {
	rules Rules
}

func NewExtractor(rules Rules) (*Extractor, error) {
	if err := rules.validate(); err != nil {
		return nil, fmt.Errorf("invalid extraction rules: %w", err)
	}
	return &Extractor{rules: rules}, nil
}

func (e *Extractor) Extract(text string) Fields {
	first, last := e.extractName(text)
	number, kind := e.extractNumber(text)

	return Fields{
		FirstName:      first,
		LastName:       last,
		DateOfBirth:    firstMatch(e.rules.DateOfBirth, text),
		Gender:         firstMatch(e.rules.Gender, text),
		DocumentNumber: number,
		NumberKind:     kind,
	}
}

// Record extracts the fields from text and stamps them with docType.
func (e *Extractor) Record(text string, docType DocumentType) Record {
	return e.Extract(text).Record(docType)
}

// extractName looks at the first line mentioning "name" only. A name is the
// text between the first colon and the next one.
func (e *Extractor) extractName(text string) (string, string) {
	for _, line := range normalizeLines(text) {
		if !strings.Contains(strings.ToLower(line), "name") {
			continue
		}

		parts := strings.Split(line, ":")
		if len(parts) < 2 {
			return "", ""
		}
		words := strings.Fields(parts[1])
		switch len(words) {
		case 0:
			return "", ""
		case 1:
			return words[0], ""
		default:
			return words[0], strings.Join(words[1:], " ")
		}
	}
	return "", ""
}

func (e *Extractor) extractNumber(text string) (*string, string) {
	for _, rule := range e.rules.Numbers {
		if m := firstMatch(rule.Pattern, text); m != nil {
			return m, rule.Label
		}
	}
	return nil, ""
}

func normalizeLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}

func firstMatch(re *regexp.Regexp, text string) *string {
	loc := re.FindStringIndex(text)
	if loc == nil {
		return nil
	}
	m := text[loc[0]:loc[1]]
	return &m
}
