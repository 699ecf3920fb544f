package main

import (
	"bytes"
	"encoding/json"
	"image/color"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags undoes flag values left behind by a previous execution of the
// package-level command tree.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			var def []string
			if s := strings.Trim(f.DefValue, "[]"); s != "" {
				def = strings.Split(s, ",")
			}
			_ = sv.Replace(def)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestExtract_Stdin(t *testing.T) {
	out, _, err := execute(t, "INCOME TAX DEPARTMENT\nName: John Smith\nABCDE1234F\n", "extract", "--type", "pan")

	require.NoError(t, err)
	assert.Equal(t, `{
  "document_type": "PAN",
  "first_name": "John",
  "last_name": "Smith",
  "date_of_birth": null,
  "gender": null,
  "document_number": "ABCDE1234F",
  "address": null
}
`, out)
}

func TestExtract_FileWithGenderFold(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ocr.txt")
	require.NoError(t, os.WriteFile(path, []byte("Name: Asha Devi\nSEX: FEMALE\n1234 5678 9012"), 0644))

	out, _, err := execute(t, "", "extract", "--type", "AADHAAR", "--gender-fold", path)

	require.NoError(t, err)
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, "Aadhaar", rec["document_type"])
	assert.Equal(t, "FEMALE", rec["gender"])
	assert.Equal(t, "1234 5678 9012", rec["document_number"])
}

func TestExtract_Errors(t *testing.T) {
	_, _, err := execute(t, "", "extract", "--type", "voter_id")
	assert.ErrorContains(t, err, "unknown document type")

	_, _, err = execute(t, "", "extract", filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestAnnotate_OllamaEngine(t *testing.T) {
	// Arrange
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"response": "Name: Asha Devi\nDOB: 12/08/1985\n1234 5678 9012",
			"done":     true,
		})
	}))
	defer srv.Close()
	t.Setenv("IDOCR_OLLAMA_URL", srv.URL)

	dir := t.TempDir()
	images := filepath.Join(dir, "test_images")
	output := filepath.Join(dir, "test_expected_output")
	manifest := filepath.Join(dir, "manifest.csv")
	metricsFile := filepath.Join(dir, "metrics.prom")
	require.NoError(t, os.MkdirAll(images, 0755))
	require.NoError(t, imaging.Save(imaging.New(24, 24, color.White), filepath.Join(images, "aadhaar_test_001.png")))

	// Act
	_, stderr, err := execute(t, "", "annotate",
		"--engine", "ollama",
		"--images", images,
		"--output", output,
		"--manifest", manifest,
		"--metrics-file", metricsFile,
		"--progress=false",
		"--log-format", "json",
	)

	// Assert
	require.NoError(t, err, stderr)

	raw, err := os.ReadFile(filepath.Join(output, "aadhaar_test_001.json"))
	require.NoError(t, err)
	var rec map[string]any
	require.NoError(t, json.Unmarshal(raw, &rec))
	assert.Equal(t, "Aadhaar", rec["document_type"])
	assert.Equal(t, "Asha", rec["first_name"])
	assert.Equal(t, "12/08/1985", rec["date_of_birth"])

	assert.FileExists(t, manifest)
	prom, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `identity_ocr_images_total{document_type="Aadhaar"} 1`)
	assert.Contains(t, stderr, `"run_id"`)
}

func TestAnnotate_InvalidConfig(t *testing.T) {
	_, _, err := execute(t, "", "annotate", "--classify-policy", "bogus", "--progress=false")

	assert.ErrorContains(t, err, "classify.policy")
}
