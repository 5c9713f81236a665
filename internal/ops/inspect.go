package ops

import (
	"log"
	"time"

	"github.com/BananaMi1kshake/TheMonetizationGame/internal/config"
	"github.com/BananaMi1kshake/TheMonetizationGame/internal/save"
)

// SaveSummary is the operator's view of a save blob.
type SaveSummary struct {
	PlayerName           string
	CompanyName          string
	Money                float64
	Leads                int
	IncomeRate           float64
	PlayTimeSeconds      int
	TotalMoneyEarned     float64
	HiredStaff           int
	AchievementsUnlocked int
	LastSavedTime        time.Time
}

// InspectSave loads the save in dataDir and summarizes it. ok is false when
// no (readable) save exists.
func InspectSave(dataDir string, bal config.Balance, logger *log.Logger) (SaveSummary, bool, error) {
	store, err := save.NewFileStore(dataDir)
	if err != nil {
		return SaveSummary{}, false, err
	}
	res := save.NewManager(store, bal, nil, logger).Load()
	if res.Fresh {
		return SaveSummary{}, false, nil
	}

	st := res.State
	unlocked := 0
	for _, a := range st.Achievements {
		if a.Unlocked {
			unlocked++
		}
	}
	return SaveSummary{
		PlayerName:           st.PlayerName,
		CompanyName:          st.CompanyName,
		Money:                st.Money,
		Leads:                st.Leads,
		IncomeRate:           st.IncomeRate,
		PlayTimeSeconds:      st.Stats.PlayTime,
		TotalMoneyEarned:     st.Stats.TotalMoneyEarned,
		HiredStaff:           st.HiredCount(),
		AchievementsUnlocked: unlocked,
		LastSavedTime:        st.LastSavedTime,
	}, true, nil
}
