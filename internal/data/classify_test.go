package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifier_Classify(t *testing.T) {
	testCases := []struct {
		filename       string
		longestPrefix  DocumentType
		firstUnderscor DocumentType
	}{
		{filename: "aadhaar_test_001.jpg", longestPrefix: Aadhaar, firstUnderscor: Aadhaar},
		{filename: "PAN_scan.png", longestPrefix: PAN, firstUnderscor: PAN},
		{filename: "passport_x.jpeg", longestPrefix: Passport, firstUnderscor: Passport},
		{filename: "driving_license_train_004.jpg", longestPrefix: DrivingLicense, firstUnderscor: Unknown},
		{filename: "images/pan_01.jpg", longestPrefix: PAN, firstUnderscor: PAN},
		{filename: "panorama_01.jpg", longestPrefix: Unknown, firstUnderscor: Unknown},
		{filename: "pan.jpg", longestPrefix: Unknown, firstUnderscor: Unknown},
		{filename: "voter_id_1.jpg", longestPrefix: Unknown, firstUnderscor: Unknown},
		{filename: "driving_1.jpg", longestPrefix: Unknown, firstUnderscor: Unknown},
	}

	longest, err := NewClassifier(PolicyLongestPrefix)
	require.NoError(t, err)
	legacy, err := NewClassifier(PolicyFirstUnderscore)
	require.NoError(t, err)

	for _, tc := range testCases {
		t.Run(tc.filename, func(t *testing.T) {
			assert.Equal(t, tc.longestPrefix, longest.Classify(tc.filename), "longest-prefix")
			assert.Equal(t, tc.firstUnderscor, legacy.Classify(tc.filename), "first-underscore")
		})
	}
}

func TestNewClassifier_Policy(t *testing.T) {
	c, err := NewClassifier("")
	require.NoError(t, err)
	assert.Equal(t, PolicyLongestPrefix, c.Policy())

	_, err = NewClassifier("regex")
	assert.Error(t, err)
}

func TestFolderOrderCoversKeys(t *testing.T) {
	require.Len(t, FolderOrder, len(DocumentKeys))
	for _, folder := range FolderOrder {
		assert.Contains(t, DocumentKeys, folder)
	}
}
