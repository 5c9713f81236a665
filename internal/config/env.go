package config

import (
	"os"
	"strconv"
)

// FromEnv loads balance configuration from environment variables, falling
// back to defaults when a variable is unset.
func FromEnv() Balance {
	return ApplyEnv(DefaultBalance())
}

// ApplyEnv layers environment overrides on top of an existing balance, so
// yaml config and env vars compose. A DIFFICULTY preset wins over
// everything.
func ApplyEnv(cfg Balance) Balance {
	if v := getEnvFloat("BASE_LEAD_CHANCE"); v > 0 {
		cfg.BaseLeadChance = v
	}
	if v := getEnvFloat("SALES_STAFF_CHANCE_BONUS"); v > 0 {
		cfg.SalesStaffChanceBonus = v
	}
	if v := getEnvFloat("BASE_INCOME_PER_LEAD"); v > 0 {
		cfg.BaseIncomePerLead = v
	}
	if v := getEnvInt("CLICKS_TO_DEVELOP_LEAD"); v > 0 {
		cfg.ClicksToDevelopLead = v
	}
	if v := getEnvInt("DEVELOP_CLICKS_FLOOR"); v > 0 {
		cfg.DevelopClicksFloor = v
	}
	if v := getEnvFloat("BASE_STAFF_INTERVAL_MS"); v > 0 {
		cfg.BaseStaffIntervalMS = v
	}
	if v := getEnvFloat("SALES_INTERVAL_FACTOR"); v > 0 {
		cfg.SalesIntervalFactor = v
	}
	if v := getEnvFloat("OFFLINE_EFFICIENCY"); v > 0 {
		cfg.OfflineEfficiency = v
	}
	if v := getEnvInt("OFFLINE_MIN_GAP_SECONDS"); v > 0 {
		cfg.OfflineMinGapSeconds = v
	}
	if os.Getenv("AUTOSAVE") == "off" {
		cfg.Autosave = false
	}

	// Support preset modes
	if mode := os.Getenv("DIFFICULTY"); mode != "" {
		switch mode {
		case "casual":
			return Casual()
		case "hard":
			return Hard()
		}
	}

	return cfg
}

func getEnvInt(key string) int {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return n
}

func getEnvFloat(key string) float64 {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0
	}
	return f
}
