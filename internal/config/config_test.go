package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// unsetAfter clears keys for the test and restores them afterwards, so values
// loaded from dotenv files do not leak into other tests.
func unsetAfter(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(Sources{})
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "final_order.json", cfg.Output.Path)
	assert.Equal(t, logrus.WarnLevel, cfg.LogLevel())
	assert.True(t, cfg.Narration.Enabled)
}

func TestLoad_Precedence(t *testing.T) {
	file := writeFile(t, "pizzabot.yaml", `
output:
  path: from-file.json
  format: json
log:
  level: info
greeting:
  endpoint: https://example.test/generate
  timeout: 5s
narration:
  language: it
`)
	envFile := writeFile(t, ".env", "PIZZABOT_LOG_LEVEL=debug\nPIZZABOT_OUTPUT_FORMAT=yaml\n")
	unsetAfter(t, "PIZZABOT_LOG_LEVEL", "PIZZABOT_OUTPUT_FORMAT")
	t.Setenv("PIZZABOT_OUTPUT_FORMAT", "json")
	t.Setenv("PIZZABOT_NARRATION_ENABLED", "false")

	cfg, err := Load(Sources{File: file, EnvFile: envFile})
	require.NoError(t, err)

	// file over defaults
	assert.Equal(t, "from-file.json", cfg.Output.Path)
	assert.Equal(t, "https://example.test/generate", cfg.Greeting.Endpoint)
	assert.Equal(t, 5*time.Second, cfg.Greeting.Timeout)
	assert.Equal(t, "it", cfg.Narration.Language)
	assert.Equal(t, "0.generated_text", cfg.Greeting.ResultPath)
	// dotenv over file
	assert.Equal(t, "debug", cfg.Log.Level)
	// process environment over dotenv
	assert.Equal(t, "json", cfg.Output.Format)
	assert.False(t, cfg.Narration.Enabled)
}

func TestLoad_MissingEnvFileIsIgnored(t *testing.T) {
	_, err := Load(Sources{EnvFile: filepath.Join(t.TempDir(), "missing.env")})
	assert.NoError(t, err)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	_, err := Load(Sources{File: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(Sources{File: writeFile(t, "bad.yaml", "output: [")})
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "format", mutate: func(c *Config) { c.Output.Format = "xml" }},
		{name: "path", mutate: func(c *Config) { c.Output.Path = "" }},
		{name: "level", mutate: func(c *Config) { c.Log.Level = "loud" }},
		{name: "timeout", mutate: func(c *Config) { c.Greeting.Timeout = -time.Second }},
		{name: "tokens", mutate: func(c *Config) { c.Greeting.MaxNewTokens = -1 }},
		{name: "narration endpoint", mutate: func(c *Config) { c.Narration.Endpoint = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}

	cfg := Default()
	cfg.Narration.Enabled = false
	cfg.Narration.Endpoint = ""
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvironmentInvalidValue(t *testing.T) {
	t.Setenv("PIZZABOT_OUTPUT_FORMAT", "csv")
	_, err := Load(Sources{})
	assert.ErrorIs(t, err, ErrInvalid)
}
