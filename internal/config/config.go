// Package config resolves runtime settings for the pizzabot CLI. Sources are
// applied in order, later ones winning: built-in defaults, an optional YAML
// file, a .env file, PIZZABOT_* environment variables. Command line flags are
// layered on top by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-pizzabot/pkg/collab"
	"github.com/goliatone/go-pizzabot/pkg/store"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the resolved configuration.
type Config struct {
	TemplateDir string          `yaml:"template_dir" env:"PIZZABOT_TEMPLATE_DIR"`
	Output      OutputConfig    `yaml:"output"`
	Theme       ThemeConfig     `yaml:"theme"`
	Log         LogConfig       `yaml:"log"`
	Greeting    GreetingConfig  `yaml:"greeting"`
	Narration   NarrationConfig `yaml:"narration"`
}

// OutputConfig controls where confirmed orders are written. An empty format
// follows the path extension.
type OutputConfig struct {
	Path   string `yaml:"path" env:"PIZZABOT_OUTPUT_PATH"`
	Format string `yaml:"format" env:"PIZZABOT_OUTPUT_FORMAT"`
}

// ThemeConfig selects the console theme variant.
type ThemeConfig struct {
	Variant string `yaml:"variant" env:"PIZZABOT_THEME_VARIANT"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level string `yaml:"level" env:"PIZZABOT_LOG_LEVEL"`
}

// GreetingConfig configures the text-generation greeter. An empty endpoint
// uses the static greeting.
type GreetingConfig struct {
	Endpoint     string        `yaml:"endpoint" env:"PIZZABOT_GREETING_ENDPOINT"`
	Token        string        `yaml:"token" env:"PIZZABOT_GREETING_TOKEN"`
	ResultPath   string        `yaml:"result_path" env:"PIZZABOT_GREETING_RESULT_PATH"`
	MaxNewTokens int           `yaml:"max_new_tokens" env:"PIZZABOT_GREETING_MAX_NEW_TOKENS"`
	Timeout      time.Duration `yaml:"timeout" env:"PIZZABOT_GREETING_TIMEOUT"`
}

// NarrationConfig configures spoken summaries. When disabled the summary is
// printed instead.
type NarrationConfig struct {
	Enabled   bool          `yaml:"enabled" env:"PIZZABOT_NARRATION_ENABLED"`
	Endpoint  string        `yaml:"endpoint" env:"PIZZABOT_NARRATION_ENDPOINT"`
	Language  string        `yaml:"language" env:"PIZZABOT_NARRATION_LANGUAGE"`
	AudioPath string        `yaml:"audio_path" env:"PIZZABOT_NARRATION_AUDIO_PATH"`
	Player    string        `yaml:"player" env:"PIZZABOT_NARRATION_PLAYER"`
	Timeout   time.Duration `yaml:"timeout" env:"PIZZABOT_NARRATION_TIMEOUT"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Output: OutputConfig{Path: store.DefaultPath},
		Log: LogConfig{Level: "warn"},
		Greeting: GreetingConfig{
			ResultPath:   "0.generated_text",
			MaxNewTokens: 50,
			Timeout:      15 * time.Second,
		},
		Narration: NarrationConfig{
			Enabled:   true,
			Endpoint:  collab.DefaultSpeechEndpoint,
			Language:  collab.DefaultLanguage,
			AudioPath: collab.DefaultAudioPath,
			Timeout:   30 * time.Second,
		},
	}
}

// Sources names the files Load reads. Empty fields are skipped.
type Sources struct {
	// File is a YAML config file. It must exist when set.
	File string
	// EnvFile is a dotenv file. A missing file is ignored.
	EnvFile string
}

// Load resolves the configuration from defaults, the YAML file, the dotenv
// file and the environment, then validates it.
func Load(src Sources) (Config, error) {
	cfg := Default()

	if path := strings.TrimSpace(src.File); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if path := strings.TrimSpace(src.EnvFile); path != "" {
		// godotenv never overrides variables already present in the process
		// environment.
		if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("config: environment: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.TemplateDir = strings.TrimSpace(c.TemplateDir)
	c.Output.Path = strings.TrimSpace(c.Output.Path)
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	c.Theme.Variant = strings.TrimSpace(c.Theme.Variant)
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Greeting.Endpoint = strings.TrimSpace(c.Greeting.Endpoint)
	c.Narration.Endpoint = strings.TrimSpace(c.Narration.Endpoint)
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Output.Path == "" {
		return fmt.Errorf("%w: output path is empty", ErrInvalid)
	}
	switch store.Format(c.Output.Format) {
	case store.FormatJSON, store.FormatYAML, "":
	default:
		return fmt.Errorf("%w: output format %q (want json or yaml)", ErrInvalid, c.Output.Format)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log level: %v", ErrInvalid, err)
	}
	if c.Greeting.Timeout < 0 || c.Narration.Timeout < 0 {
		return fmt.Errorf("%w: timeouts must not be negative", ErrInvalid)
	}
	if c.Greeting.MaxNewTokens < 0 {
		return fmt.Errorf("%w: greeting max_new_tokens must not be negative", ErrInvalid)
	}
	if c.Narration.Enabled && c.Narration.Endpoint == "" {
		return fmt.Errorf("%w: narration is enabled without an endpoint", ErrInvalid)
	}
	return nil
}

// LogLevel returns the parsed log level, warn when unset.
func (c Config) LogLevel() logrus.Level {
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return logrus.WarnLevel
	}
	return level
}
