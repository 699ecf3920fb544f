package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"identity-ocr/internal/ocr"
	"identity-ocr/internal/pipeline"
)

var prepareCmd = &cobra.Command{
	Use:   "prepare",
	Short: "Build annotated train/test splits from per-document folders",
	Long: `Read <base>/<split>/{aadhaar,pan,passport,driving_license}/ images, copy
each one to <base>/<split>_images/<folder>_<split>_<NNN>.jpg and annotate
it into the split's annotation directory (train_annotations,
test_expected_output). The document type comes from the folder.`,
	Args: cobra.NoArgs,
	RunE: runPrepare,
}

func init() {
	rootCmd.AddCommand(prepareCmd)

	prepareCmd.Flags().String("base", ".", "dataset base directory")
	prepareCmd.Flags().StringSlice("splits", []string{"train", "test"}, "splits to process")
	mustBindPFlag("prepare.base_dir", prepareCmd.Flags().Lookup("base"))
	mustBindPFlag("prepare.splits", prepareCmd.Flags().Lookup("splits"))
}

func runPrepare(cmd *cobra.Command, args []string) error {
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

	p, err := pipeline.New(engine, s.options(cmd, "", ""))
	if err != nil {
		return err
	}

	res, err := p.Prepare(s.ctx, s.cfg.Prepare.BaseDir, s.cfg.Prepare.Splits)
	return s.finish(p, res, err)
}
