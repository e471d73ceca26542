// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/mwiater/inaviz/internal/render"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// defaultLogFile is used when the config omits logFile.
	defaultLogFile = "inaviz.log"
)

// Label languages.
const (
	LanguageEnglish = "en"
	LanguageChinese = "zh"
)

// Config represents the top-level application configuration.
type Config struct {
	ResultsDir   string             `json:"resultsDir" yaml:"resultsDir" mapstructure:"resultsDir"`
	FiguresDir   string             `json:"figuresDir" yaml:"figuresDir" mapstructure:"figuresDir"`
	Format       string             `json:"format" yaml:"format" mapstructure:"format"`
	Backend      string             `json:"backend" yaml:"backend" mapstructure:"backend"`
	Language     string             `json:"language" yaml:"language" mapstructure:"language"`
	LogFile      string             `json:"logFile,omitempty" yaml:"logFile,omitempty" mapstructure:"logFile"`
	Debug        bool               `json:"debug" yaml:"debug" mapstructure:"debug"`
	Style        StyleConfig        `json:"style" yaml:"style" mapstructure:"style"`
	Window       WindowConfig       `json:"window" yaml:"window" mapstructure:"window"`
	Distribution DistributionConfig `json:"distribution" yaml:"distribution" mapstructure:"distribution"`
	Accelerate   AccelerateConfig   `json:"accelerate" yaml:"accelerate" mapstructure:"accelerate"`
	Sharing      SharingConfig      `json:"sharing" yaml:"sharing" mapstructure:"sharing"`
	ConfigPath   string             `json:"-" yaml:"-" mapstructure:"-"`
}

// StyleConfig controls figure presentation. Width and Height are in inches.
type StyleConfig struct {
	FontSize float64  `json:"fontSize" yaml:"fontSize" mapstructure:"fontSize"`
	Width    float64  `json:"width" yaml:"width" mapstructure:"width"`
	Height   float64  `json:"height" yaml:"height" mapstructure:"height"`
	DPI      int      `json:"dpi" yaml:"dpi" mapstructure:"dpi"`
	Palette  []string `json:"palette" yaml:"palette" mapstructure:"palette"`
}

// WindowConfig sizes the smoothing windows of the tree conflict figure.
type WindowConfig struct {
	// Size is the convolution kernel width; the index window uses Size/2.
	Size int `json:"size" yaml:"size" mapstructure:"size"`
	// Cap limits the aligned series length; 0 disables it.
	Cap int `json:"cap" yaml:"cap" mapstructure:"cap"`
}

// DistributionConfig configures the histogram command.
type DistributionConfig struct {
	Bins int `json:"bins" yaml:"bins" mapstructure:"bins"`
}

// AccelerateConfig selects the model trace and bandwidth band (bytes/s)
// plotted by the accelerate figure.
type AccelerateConfig struct {
	ModelKey     string  `json:"modelKey" yaml:"modelKey" mapstructure:"modelKey"`
	ModelName    string  `json:"modelName" yaml:"modelName" mapstructure:"modelName"`
	MinBandwidth float64 `json:"minBandwidth" yaml:"minBandwidth" mapstructure:"minBandwidth"`
	MaxBandwidth float64 `json:"maxBandwidth" yaml:"maxBandwidth" mapstructure:"maxBandwidth"`
}

// SharingConfig lists the sharing policies to compare and their colour range.
type SharingConfig struct {
	Input    string   `json:"input" yaml:"input" mapstructure:"input"`
	Policies []string `json:"policies" yaml:"policies" mapstructure:"policies"`
	Min      float64  `json:"min" yaml:"min" mapstructure:"min"`
	Max      float64  `json:"max" yaml:"max" mapstructure:"max"`
}

// Default returns the configuration used when no file or flag overrides a value.
func Default() Config {
	return Config{
		ResultsDir: "results",
		FiguresDir: "figures",
		Format:     "pdf",
		Backend:    render.BackendPlot,
		Language:   LanguageEnglish,
		Style: StyleConfig{
			FontSize: 12,
			Width:    8,
			Height:   3,
			DPI:      400,
			Palette:  []string{"#2878b5", "#c82423", "#2ca02c", "#9467bd"},
		},
		Window:       WindowConfig{Size: 1000, Cap: 18000},
		Distribution: DistributionConfig{Bins: 50},
		Accelerate: AccelerateConfig{
			ModelKey:     "traces/opt-350m-16.json",
			ModelName:    "OPT-350M",
			MinBandwidth: 5e8,
			MaxBandwidth: 10e9,
		},
		Sharing: SharingConfig{
			Input:    "sharing_policy_4.0G_1.2.json",
			Policies: []string{"smart", "greedy"},
			Min:      0.5,
			Max:      1.0,
		},
	}
}

// SetDefaults registers every default value on v so that config files and
// flags only need to name what they override.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("resultsDir", d.ResultsDir)
	v.SetDefault("figuresDir", d.FiguresDir)
	v.SetDefault("format", d.Format)
	v.SetDefault("backend", d.Backend)
	v.SetDefault("language", d.Language)
	v.SetDefault("logFile", d.LogFile)
	v.SetDefault("debug", d.Debug)
	v.SetDefault("style.fontSize", d.Style.FontSize)
	v.SetDefault("style.width", d.Style.Width)
	v.SetDefault("style.height", d.Style.Height)
	v.SetDefault("style.dpi", d.Style.DPI)
	v.SetDefault("style.palette", d.Style.Palette)
	v.SetDefault("window.size", d.Window.Size)
	v.SetDefault("window.cap", d.Window.Cap)
	v.SetDefault("distribution.bins", d.Distribution.Bins)
	v.SetDefault("accelerate.modelKey", d.Accelerate.ModelKey)
	v.SetDefault("accelerate.modelName", d.Accelerate.ModelName)
	v.SetDefault("accelerate.minBandwidth", d.Accelerate.MinBandwidth)
	v.SetDefault("accelerate.maxBandwidth", d.Accelerate.MaxBandwidth)
	v.SetDefault("sharing.input", d.Sharing.Input)
	v.SetDefault("sharing.policies", d.Sharing.Policies)
	v.SetDefault("sharing.min", d.Sharing.Min)
	v.SetDefault("sharing.max", d.Sharing.Max)
}

// FromViper materializes the merged state of v (flags > config > defaults).
func FromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.ConfigPath = v.ConfigFileUsed()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads the configuration file at path (JSON or YAML) on top of the
// defaults. An empty path loads DefaultConfigPath.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}
	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
	}
	return FromViper(v)
}

// Validate rejects settings no pipeline can run with.
func (c Config) Validate() error {
	var problems []string
	if c.Window.Size < 1 {
		problems = append(problems, fmt.Sprintf("window.size must be >= 1, got %d", c.Window.Size))
	}
	if c.Window.Cap < 0 {
		problems = append(problems, fmt.Sprintf("window.cap must be >= 0, got %d", c.Window.Cap))
	}
	if c.Distribution.Bins < 1 {
		problems = append(problems, fmt.Sprintf("distribution.bins must be >= 1, got %d", c.Distribution.Bins))
	}
	if c.Accelerate.MinBandwidth > c.Accelerate.MaxBandwidth {
		problems = append(problems, "accelerate.minBandwidth exceeds accelerate.maxBandwidth")
	}
	if c.Sharing.Min >= c.Sharing.Max {
		problems = append(problems, "sharing.min must be below sharing.max")
	}
	switch c.Language {
	case LanguageEnglish, LanguageChinese:
	default:
		problems = append(problems, fmt.Sprintf("language must be %q or %q, got %q", LanguageEnglish, LanguageChinese, c.Language))
	}
	switch strings.ToLower(c.Backend) {
	case render.BackendPlot, render.BackendGoChart:
	default:
		problems = append(problems, fmt.Sprintf("backend must be %q or %q, got %q", render.BackendPlot, render.BackendGoChart, c.Backend))
	}
	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return defaultLogFile
}

// ResultPath resolves a result file name against the results directory.
// Paths with a directory component, absolute or relative, are returned
// unchanged.
func (c Config) ResultPath(name string) string {
	if filepath.IsAbs(name) || filepath.Base(name) != name {
		return name
	}
	return filepath.Join(c.ResultsDir, name)
}

// FigurePath returns the output path for stem in the configured format.
func (c Config) FigurePath(stem string) string {
	return filepath.Join(c.FiguresDir, stem+"."+strings.TrimPrefix(c.Format, "."))
}

// RenderStyle converts the style block into renderer settings.
func (c Config) RenderStyle() render.Style {
	return render.Style{
		FontSize: c.Style.FontSize,
		Width:    c.Style.Width,
		Height:   c.Style.Height,
		DPI:      c.Style.DPI,
		Palette:  c.Style.Palette,
	}
}
