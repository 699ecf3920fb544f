package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"identity-ocr/internal/config"
	"identity-ocr/internal/logger"
	"identity-ocr/internal/pipeline"
)

var (
	cfgFile string
	v       = viper.New()
)

var rootCmd = &cobra.Command{
	Use:          "identity-ocr",
	Short:        "Convert identity document images into JSON records",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.Configure(v, cfgFile)
	},
}

func init() {
	config.SetDefaults(v)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (yaml, toml or json)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "console", "log format (console, json)")
	flags.String("engine", "gosseract", "OCR engine (gosseract, ollama)")
	flags.String("classify-policy", "longest-prefix", "filename classification (longest-prefix, first-underscore)")
	flags.Bool("gender-fold", false, "match gender case-insensitively")
	flags.String("manifest", "", "append a CSV row per image to this file")
	flags.String("metrics-file", "", "write Prometheus metrics to this file when done")
	flags.Bool("progress", true, "show a progress bar on stderr")

	mustBindPFlag("log.level", flags.Lookup("log-level"))
	mustBindPFlag("log.format", flags.Lookup("log-format"))
	mustBindPFlag("engine", flags.Lookup("engine"))
	mustBindPFlag("classify.policy", flags.Lookup("classify-policy"))
	mustBindPFlag("extract.gender_fold", flags.Lookup("gender-fold"))
	mustBindPFlag("manifest", flags.Lookup("manifest"))
	mustBindPFlag("metrics_file", flags.Lookup("metrics-file"))
	mustBindPFlag("progress", flags.Lookup("progress"))
}

func mustBindPFlag(key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("binding flag %s: %v", key, err))
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// session is the state shared by the commands that run a pipeline.
type session struct {
	ctx   context.Context
	cfg   config.Config
	runID string
	log   zerolog.Logger
}

func newSession(ctx context.Context, cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}

	runID := logger.NewRunID()
	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		RunID:  runID,
		Output: cmd.ErrOrStderr(),
	})
	logger.SetDefault(log)

	return &session{
		ctx:   logger.WithContext(ctx, log),
		cfg:   cfg,
		runID: runID,
		log:   log,
	}, nil
}

func (s *session) options(cmd *cobra.Command, imagesDir, outputDir string) pipeline.Options {
	opts := pipeline.Options{
		ImagesDir:      imagesDir,
		OutputDir:      outputDir,
		ClassifyPolicy: s.cfg.ClassifyPolicy,
		GenderFold:     s.cfg.GenderFold,
		ManifestPath:   s.cfg.Manifest,
		RunID:          s.runID,
	}
	if s.cfg.Progress {
		opts.Progress = cmd.ErrOrStderr()
	}
	return opts
}

// finish writes the metrics file, if configured, even after a failed run.
func (s *session) finish(p *pipeline.Pipeline, res *pipeline.Result, runErr error) error {
	if s.cfg.MetricsFile != "" {
		if err := p.Metrics().WriteTextfile(s.cfg.MetricsFile); err != nil {
			s.log.Error().Err(err).Msg("Failed to write metrics")
			if runErr == nil {
				runErr = err
			}
		}
	}
	if runErr != nil {
		s.log.Error().Err(runErr).Msg("Run failed")
		return runErr
	}
	s.log.Info().
		Int("written", len(res.Writes)).
		Int("skipped", len(res.Skips)).
		Msg("Done")
	return nil
}
