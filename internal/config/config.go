package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"batchpix/internal/transform"
)

type Config struct {
	Output   string         `mapstructure:"output"`
	Save     bool           `mapstructure:"save"`
	Progress bool           `mapstructure:"progress"`
	Picker   PickerConfig   `mapstructure:"picker"`
	Compress CompressConfig `mapstructure:"compress"`
	Resize   ResizeConfig   `mapstructure:"resize"`
	Rename   RenameConfig   `mapstructure:"rename"`
	Logging  LoggingConfig  `mapstructure:"log"`
}

type PickerConfig struct {
	Accept   string `mapstructure:"accept"`
	Multiple bool   `mapstructure:"multiple"`
}

type CompressConfig struct {
	Quality int `mapstructure:"quality"`
}

type ResizeConfig struct {
	Width      int  `mapstructure:"width"`
	Height     int  `mapstructure:"height"`
	KeepAspect bool `mapstructure:"keep_aspect"`
}

// RenameConfig keeps the counter fields as text so that junk input falls
// back to a safe default instead of aborting the run.
type RenameConfig struct {
	BaseName       string `mapstructure:"base_name"`
	AddCounter     bool   `mapstructure:"add_counter"`
	CounterStart   string `mapstructure:"counter_start"`
	CounterPadding string `mapstructure:"counter_padding"`
	Extension      string `mapstructure:"extension"`
}

type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	JSONFormat bool   `mapstructure:"json"`
	File       string `mapstructure:"file"`
}

// SetDefaults registers the defaults of every setting on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("output", "processed")
	v.SetDefault("save", true)
	v.SetDefault("progress", true)
	v.SetDefault("picker.accept", "image/*")
	v.SetDefault("picker.multiple", true)
	v.SetDefault("compress.quality", 32)
	v.SetDefault("resize.width", 800)
	v.SetDefault("resize.height", 600)
	v.SetDefault("resize.keep_aspect", true)
	v.SetDefault("rename.base_name", "image")
	v.SetDefault("rename.add_counter", true)
	v.SetDefault("rename.counter_start", "1")
	v.SetDefault("rename.counter_padding", "2")
	v.SetDefault("rename.extension", string(transform.ExtKeep))
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.json", false)
	v.SetDefault("log.file", "")
}

// Load reads the optional config file and unmarshals v. Settings only come
// from defaults, bound flags and a file the user names explicitly.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Compress.Quality < 1 || c.Compress.Quality > 100 {
		return fmt.Errorf("compress.quality must be between 1 and 100")
	}
	if _, err := transform.ParseExtension(c.Rename.Extension); err != nil {
		return fmt.Errorf("rename.extension: %w", err)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	return nil
}

// ResizeParams returns the resize settings. Non-positive sizes are clamped
// later by the resizer.
func (r ResizeConfig) ResizeParams() transform.ResizeParams {
	return transform.ResizeParams{
		Width:               r.Width,
		Height:              r.Height,
		MaintainAspectRatio: r.KeepAspect,
	}
}

// Template builds the rename template. Validate has already checked the
// extension.
func (r RenameConfig) Template() transform.Template {
	ext, err := transform.ParseExtension(r.Extension)
	if err != nil {
		ext = transform.ExtKeep
	}
	return transform.Template{
		BaseName:       r.BaseName,
		AddCounter:     r.AddCounter,
		CounterStart:   atoiOr(r.CounterStart, 0),
		CounterPadding: atoiOr(r.CounterPadding, 1),
		Extension:      ext,
	}.Normalize()
}

func atoiOr(value string, fallback int) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return parsed
}
