package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"identity-ocr/internal/data"
	"identity-ocr/internal/ocr"
)

const EnvPrefix = "IDOCR"

type LogConfig struct {
	Level  string
	Format string
}

type PrepareConfig struct {
	BaseDir string
	Splits  []string
}

type Config struct {
	ImagesDir      string
	OutputDir      string
	OCR            ocr.Config
	ClassifyPolicy data.ClassifyPolicy
	GenderFold     bool
	Manifest       string
	MetricsFile    string
	Progress       bool
	Log            LogConfig
	Prepare        PrepareConfig
}

func SetDefaults(v *viper.Viper) {
	def := ocr.DefaultConfig()

	v.SetDefault("images_dir", "test_images")
	v.SetDefault("output_dir", "test_expected_output")
	v.SetDefault("engine", def.Engine)
	v.SetDefault("ocr.languages", def.Languages)
	v.SetDefault("ocr.psm", def.PageSegMode)
	v.SetDefault("ocr.oem", def.EngineMode)
	v.SetDefault("ollama.url", "")
	v.SetDefault("ollama.model", "")
	v.SetDefault("classify.policy", string(data.PolicyLongestPrefix))
	v.SetDefault("extract.gender_fold", false)
	v.SetDefault("manifest", "")
	v.SetDefault("metrics_file", "")
	v.SetDefault("progress", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("prepare.base_dir", ".")
	v.SetDefault("prepare.splits", []string{"train", "test"})
}

// NewViper returns a viper instance with defaults, IDOCR_* environment
// overrides and, when configFile is set, that file merged in.
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)
	if err := Configure(v, configFile); err != nil {
		return nil, err
	}
	return v, nil
}

// Configure enables environment overrides on v and reads configFile into it
// when set. Flags bound before or after keep their precedence.
func Configure(v *viper.Viper, configFile string) error {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	}
	return nil
}

func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		ImagesDir: v.GetString("images_dir"),
		OutputDir: v.GetString("output_dir"),
		OCR: ocr.Config{
			Engine:      v.GetString("engine"),
			Languages:   v.GetStringSlice("ocr.languages"),
			PageSegMode: v.GetInt("ocr.psm"),
			EngineMode:  v.GetInt("ocr.oem"),
			Variables:   v.GetStringMapString("ocr.variables"),
			OllamaURL:   v.GetString("ollama.url"),
			OllamaModel: v.GetString("ollama.model"),
		},
		ClassifyPolicy: data.ClassifyPolicy(v.GetString("classify.policy")),
		GenderFold:     v.GetBool("extract.gender_fold"),
		Manifest:       v.GetString("manifest"),
		MetricsFile:    v.GetString("metrics_file"),
		Progress:       v.GetBool("progress"),
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Prepare: PrepareConfig{
			BaseDir: v.GetString("prepare.base_dir"),
			Splits:  v.GetStringSlice("prepare.splits"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error

	if c.ImagesDir == "" {
		errs = append(errs, errors.New("images_dir must not be empty"))
	}
	if c.OutputDir == "" {
		errs = append(errs, errors.New("output_dir must not be empty"))
	}
	switch c.OCR.Engine {
	case "gosseract", "ollama":
	default:
		errs = append(errs, fmt.Errorf("unknown engine %q", c.OCR.Engine))
	}
	if c.OCR.PageSegMode < 0 || c.OCR.PageSegMode > 13 {
		errs = append(errs, fmt.Errorf("ocr.psm %d out of range 0-13", c.OCR.PageSegMode))
	}
	if c.OCR.EngineMode != 3 {
		errs = append(errs, fmt.Errorf("ocr.oem %d not supported, only 3", c.OCR.EngineMode))
	}
	switch c.ClassifyPolicy {
	case data.PolicyLongestPrefix, data.PolicyFirstUnderscore:
	default:
		errs = append(errs, fmt.Errorf("unknown classify.policy %q", c.ClassifyPolicy))
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log.format %q", c.Log.Format))
	}
	if len(c.Prepare.Splits) == 0 {
		errs = append(errs, errors.New("prepare.splits must not be empty"))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
