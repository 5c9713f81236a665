package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Balance holds every tunable constant of the economic model. Defaults
// mirror the live game; yaml and environment overrides exist for balancing
// experiments without recompiling.
type Balance struct {
	BaseLeadChance        float64 `yaml:"base_lead_chance" json:"base_lead_chance"`
	SalesStaffChanceBonus float64 `yaml:"sales_staff_chance_bonus" json:"sales_staff_chance_bonus"`
	BaseIncomePerLead     float64 `yaml:"base_income_per_lead" json:"base_income_per_lead"`
	ClicksToDevelopLead   int     `yaml:"clicks_to_develop_lead" json:"clicks_to_develop_lead"`
	DevelopClicksFloor    int     `yaml:"develop_clicks_floor" json:"develop_clicks_floor"`

	BaseStaffIntervalMS float64 `yaml:"base_staff_interval_ms" json:"base_staff_interval_ms"`
	SalesIntervalFactor float64 `yaml:"sales_interval_factor" json:"sales_interval_factor"`

	ProductsHireIncomeBonus float64 `yaml:"products_hire_income_bonus" json:"products_hire_income_bonus"`

	OfflineEfficiency    float64 `yaml:"offline_efficiency" json:"offline_efficiency"`
	OfflineMinGapSeconds int     `yaml:"offline_min_gap_seconds" json:"offline_min_gap_seconds"`

	Autosave bool `yaml:"autosave" json:"autosave"`
}

func DefaultBalance() Balance {
	return Balance{
		BaseLeadChance:          0.02,
		SalesStaffChanceBonus:   0.01,
		BaseIncomePerLead:       0.02,
		ClicksToDevelopLead:     100,
		DevelopClicksFloor:      10,
		BaseStaffIntervalMS:     500,
		SalesIntervalFactor:     1.5,
		ProductsHireIncomeBonus: 5,
		OfflineEfficiency:       0.5,
		OfflineMinGapSeconds:    5,
		Autosave:                true,
	}
}

// Casual softens the grind for playtesting sessions.
func Casual() Balance {
	b := DefaultBalance()
	b.BaseLeadChance = 0.05
	b.ClicksToDevelopLead = 50
	b.OfflineEfficiency = 1
	return b
}

// Hard is the long-haul preset.
func Hard() Balance {
	b := DefaultBalance()
	b.BaseLeadChance = 0.01
	b.BaseStaffIntervalMS = 750
	b.OfflineEfficiency = 0.25
	return b
}

type Leaderboard struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	URL     string `yaml:"url" json:"url"`
	// PublishIntervalSeconds throttles outbound score reports.
	PublishIntervalSeconds int `yaml:"publish_interval_seconds" json:"publish_interval_seconds"`
}

type Config struct {
	Addr        string      `yaml:"addr" json:"addr"`
	DataDir     string      `yaml:"data_dir" json:"data_dir"`
	Balance     Balance     `yaml:"balance" json:"balance"`
	Leaderboard Leaderboard `yaml:"leaderboard" json:"leaderboard"`
}

func Default() *Config {
	return &Config{
		Addr:    ":8385",
		DataDir: "data",
		Balance: DefaultBalance(),
		Leaderboard: Leaderboard{
			Enabled:                false,
			PublishIntervalSeconds: 30,
		},
	}
}

// Load reads a yaml config file; a missing file yields defaults so a bare
// checkout runs without any setup.
func Load(path string) (*Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Leaderboard.PublishIntervalSeconds <= 0 {
		cfg.Leaderboard.PublishIntervalSeconds = 30
	}
	return cfg, nil
}
