package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"identity-ocr/internal/config"
	"identity-ocr/internal/data"
	"identity-ocr/internal/writer"
)

var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Extract fields from OCR text and print the JSON record",
	Long: `Read already recognized text from file (or stdin when file is omitted or
"-") and print the record the annotate command would write for it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

var extractType string

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVar(&extractType, "type", "", "document key ("+strings.Join(documentKeys(), ", ")+"); Unknown when empty")
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	docType := data.Unknown
	if extractType != "" {
		t, ok := data.DocumentKeys[strings.ToLower(extractType)]
		if !ok {
			return fmt.Errorf("unknown document type %q", extractType)
		}
		docType = t
	}

	text, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	extractor, err := data.NewExtractor(data.DefaultRules(data.WithGenderFold(cfg.GenderFold)))
	if err != nil {
		return err
	}
	return writer.NewJSONWriter[data.Record]().Encode(cmd.OutOrStdout(), extractor.Record(text, docType))
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		raw, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(raw), nil
	}
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return string(raw), nil
}

func documentKeys() []string {
	keys := make([]string, 0, len(data.DocumentKeys))
	for k := range data.DocumentKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
