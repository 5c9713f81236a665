package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)
	assert.Equal(t, ":8385", cfg.Addr)
	assert.Equal(t, 0.02, cfg.Balance.BaseLeadChance)
	assert.True(t, cfg.Balance.Autosave)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.yml")
	body := `
addr: ":9000"
balance:
  base_lead_chance: 0.1
leaderboard:
  enabled: true
  url: ws://example.test/feed
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, 0.1, cfg.Balance.BaseLeadChance)
	assert.True(t, cfg.Leaderboard.Enabled)
	assert.Equal(t, 30, cfg.Leaderboard.PublishIntervalSeconds)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("BASE_LEAD_CHANCE", "0.5")
	t.Setenv("CLICKS_TO_DEVELOP_LEAD", "20")

	b := FromEnv()
	assert.Equal(t, 0.5, b.BaseLeadChance)
	assert.Equal(t, 20, b.ClicksToDevelopLead)
	assert.Equal(t, 10, b.DevelopClicksFloor)
}

func TestFromEnv_Presets(t *testing.T) {
	t.Setenv("DIFFICULTY", "casual")
	b := FromEnv()
	assert.Equal(t, Casual(), b)
}
