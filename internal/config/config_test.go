package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "% ", cfg.Prompt)
	assert.False(t, cfg.Quiet)
	assert.Empty(t, cfg.SeedFile)
}

func TestDecodeOverridesOnlyProvidedKeys(t *testing.T) {
	cfg, err := Decode(strings.NewReader(`quiet = true`))
	require.NoError(t, err)
	assert.True(t, cfg.Quiet)
	assert.Equal(t, "% ", cfg.Prompt, "prompt should keep its default when omitted")
}

func TestDecodeFullConfig(t *testing.T) {
	cfg, err := Decode(strings.NewReader(`
prompt = "db> "
quiet = true
seed_file = "fixtures/demo.toml"
`))
	require.NoError(t, err)
	assert.Equal(t, "db> ", cfg.Prompt)
	assert.True(t, cfg.Quiet)
	assert.Equal(t, "fixtures/demo.toml", cfg.SeedFile)
}

func TestDecodeInvalidTOML(t *testing.T) {
	_, err := Decode(strings.NewReader(`not = [valid`))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/tablekit.toml")
	assert.Error(t, err)
}
