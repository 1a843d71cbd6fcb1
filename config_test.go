package pglens

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/pglens/pglens/lint"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pglens.yaml")
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.NoError(t, err)
	assert.Equal(t, []string{"**/*.sql"}, config.Include)
	assert.Equal(t, "auto", config.Color)
	assert.Equal(t, lint.RuleNames(), config.EffectiveRules())
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
rules:
  disabled:
    - prefer-text-field
include:
  - migrations/**/*.sql
color: never
`)
	config, err := LoadConfig(path)
	assert.NoError(t, err)
	assert.Equal(t, []string{"migrations/**/*.sql"}, config.Include)
	assert.Equal(t, "never", config.Color)

	rules := config.EffectiveRules()
	for _, r := range rules {
		assert.NotEqual(t, "prefer-text-field", r)
	}
	assert.Equal(t, len(lint.RuleNames())-1, len(rules))
}

func TestLoadConfigRejectsUnknownRule(t *testing.T) {
	path := writeConfig(t, "rules:\n  enabled:\n    - made-up-rule\n")
	_, err := LoadConfig(path)
	assert.IsError(t, err, ErrUnknownRule)
}

func TestLoadConfigRejectsBadColor(t *testing.T) {
	path := writeConfig(t, "color: sometimes\n")
	_, err := LoadConfig(path)
	assert.IsError(t, err, ErrConfigValidation)
}

func TestEffectiveRulesEnabledSubset(t *testing.T) {
	config := &Config{Rules: RulesConfig{Enabled: []string{"ban-drop-column"}}}
	assert.Equal(t, []string{"ban-drop-column"}, config.EffectiveRules())
}
