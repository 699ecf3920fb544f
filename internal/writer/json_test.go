package writer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"identity-ocr/internal/data"
)

func ptr(s string) *string { return &s }

func TestJSONWriter_KeyOrderAndIndent(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "out", "pan_test_001.json")
	w := NewJSONWriter[data.Record]()
	rec := data.Record{
		DocumentType:   data.PAN,
		FirstName:      "John",
		LastName:       "Smith",
		DateOfBirth:    ptr("01/02/1990"),
		DocumentNumber: ptr("ABCDE1234F"),
	}

	// Act
	err := w.WriteToFile(rec, path)

	// Assert
	require.NoError(t, err)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	want := `{
  "document_type": "PAN",
  "first_name": "John",
  "last_name": "Smith",
  "date_of_birth": "01/02/1990",
  "gender": null,
  "document_number": "ABCDE1234F",
  "address": null
}
`
	assert.Equal(t, want, string(raw))
}

func TestJSONWriter_RoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		rec  data.Record
	}{
		{name: "empty", rec: data.Record{DocumentType: data.Unknown}},
		{name: "full", rec: data.Record{
			DocumentType:   data.DrivingLicense,
			FirstName:      "Asha",
			LastName:       "Devi <Rao> & Co",
			DateOfBirth:    ptr("1990-02-01"),
			Gender:         ptr("Female"),
			DocumentNumber: ptr("MH-1420110012345"),
		}},
	}

	w := NewJSONWriter[data.Record]()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tc.name+".json")
			require.NoError(t, w.WriteToFile(tc.rec, path))

			got, err := w.ReadFromFile(path)

			require.NoError(t, err)
			assert.Equal(t, tc.rec, got)
		})
	}
}

func TestJSONWriter_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.json")
	w := NewJSONWriter[data.Record]()

	require.NoError(t, w.WriteToFile(data.Record{DocumentType: data.PAN, FirstName: "A much longer first name"}, path))
	require.NoError(t, w.WriteToFile(data.Record{DocumentType: data.Unknown}, path))

	got, err := w.ReadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, data.Record{DocumentType: data.Unknown}, got)
}

func TestJSONWriter_ReadErrors(t *testing.T) {
	dir := t.TempDir()
	w := NewJSONWriter[data.Record]()

	_, err := w.ReadFromFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0644))
	_, err = w.ReadFromFile(bad)
	assert.Error(t, err)
}
