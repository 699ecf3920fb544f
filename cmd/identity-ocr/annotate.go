package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"identity-ocr/internal/ocr"
	"identity-ocr/internal/pipeline"
)

var annotateCmd = &cobra.Command{
	Use:   "annotate",
	Short: "Write one JSON record per image",
	Long: `Run OCR on every .jpg, .jpeg and .png file in the images directory and
write <name>.json with the extracted fields into the output directory.
The document type comes from the file name prefix.`,
	Args: cobra.NoArgs,
	RunE: runAnnotate,
}

func init() {
	rootCmd.AddCommand(annotateCmd)

	annotateCmd.Flags().String("images", "test_images", "directory with the input images")
	annotateCmd.Flags().String("output", "test_expected_output", "directory for the JSON records")
	mustBindPFlag("images_dir", annotateCmd.Flags().Lookup("images"))
	mustBindPFlag("output_dir", annotateCmd.Flags().Lookup("output"))
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	s, err := newSession(ctx, cmd)
	if err != nil {
		return err
	}

	engine, err := ocr.NewEngine(s.cfg.OCR)
	if err != nil {
		return err
	}
	defer engine.Close()

	p, err := pipeline.New(engine, s.options(cmd, s.cfg.ImagesDir, s.cfg.OutputDir))
	if err != nil {
		return err
	}

	res, err := p.Run(s.ctx)
	return s.finish(p, res, err)
}
