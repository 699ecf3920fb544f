package data

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

type ClassifyPolicy string

const (
	// PolicyLongestPrefix matches the longest known key followed by "_".
	PolicyLongestPrefix ClassifyPolicy = "longest-prefix"
	// PolicyFirstUnderscore looks up whatever precedes the first "_", which
	// never matches driving_license.
	PolicyFirstUnderscore ClassifyPolicy = "first-underscore"
)

// DocumentKeys maps filename prefixes (and dataset folder names) to labels.
// FolderOrder is the order dataset folders are visited in.
var (
	DocumentKeys = map[string]DocumentType{
		"aadhaar":         Aadhaar,
		"pan":             PAN,
		"passport":        Passport,
		"driving_license": DrivingLicense,
	}
	FolderOrder = []string{"aadhaar", "pan", "passport", "driving_license"}
)

type Classifier struct {
	policy ClassifyPolicy
	keys   map[string]DocumentType
	// longest first
	prefixes []string
}

func NewClassifier(policy ClassifyPolicy) (*Classifier, error) {
	switch policy {
	case PolicyLongestPrefix, PolicyFirstUnderscore:
	case "":
		policy = PolicyLongestPrefix
	default:
		return nil, fmt.Errorf("unknown classify policy %q", policy)
	}

	prefixes := make([]string, 0, len(DocumentKeys))
	for k := range DocumentKeys {
		prefixes = append(prefixes, k)
	}
	sort.Slice(prefixes, func(i, j int) bool {
		if len(prefixes[i]) != len(prefixes[j]) {
			return len(prefixes[i]) > len(prefixes[j])
		}
		return prefixes[i] < prefixes[j]
	})

	return &Classifier{policy: policy, keys: DocumentKeys, prefixes: prefixes}, nil
}

func (c *Classifier) Policy() ClassifyPolicy {
	return c.policy
}

// Classify derives the document type from the base name of filename.
func (c *Classifier) Classify(filename string) DocumentType {
	name := strings.ToLower(filepath.Base(filename))

	if c.policy == PolicyFirstUnderscore {
		key, _, found := strings.Cut(name, "_")
		if !found {
			return Unknown
		}
		if t, ok := c.keys[key]; ok {
			return t
		}
		return Unknown
	}

	for _, p := range c.prefixes {
		if strings.HasPrefix(name, p+"_") {
			return c.keys[p]
		}
	}
	return Unknown
}
