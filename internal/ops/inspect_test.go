package ops

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BananaMi1kshake/TheMonetizationGame/internal/config"
	"github.com/BananaMi1kshake/TheMonetizationGame/internal/game"
	"github.com/BananaMi1kshake/TheMonetizationGame/internal/save"
)

func TestInspectSave_NoSave(t *testing.T) {
	_, ok, err := InspectSave(t.TempDir(), config.DefaultBalance(), nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInspectSave_Summarizes(t *testing.T) {
	dir := t.TempDir()
	bal := config.DefaultBalance()

	store, err := save.NewFileStore(dir)
	require.NoError(t, err)
	clock := game.NewFakeClock(time.Unix(1_700_000_000, 0))
	mgr := save.NewManager(store, bal, clock, nil)

	st := game.NewState(bal)
	st.PlayerName = "Mukhtar"
	st.CompanyName = "Reports"
	st.Money = 1234.5
	st.Leads = 8
	st.IncomeRate = 2.5
	st.Stats.PlayTime = 3600
	st.Stats.TotalMoneyEarned = 9000
	st.HiredStaff["Azret"] = true
	st.HiredStaff["Artyom"] = true
	st.Achievements["mukhtarSatisfied"].Unlocked = true
	require.NoError(t, mgr.Save(st))

	sum, ok, err := InspectSave(dir, bal, nil)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, "Mukhtar", sum.PlayerName)
	assert.Equal(t, "Reports", sum.CompanyName)
	assert.InDelta(t, 1234.5, sum.Money, 1e-9)
	assert.Equal(t, 8, sum.Leads)
	assert.InDelta(t, 2.5, sum.IncomeRate, 1e-9)
	assert.Equal(t, 3600, sum.PlayTimeSeconds)
	assert.Equal(t, 2, sum.HiredStaff)
	assert.Equal(t, 1, sum.AchievementsUnlocked)
	assert.Equal(t, clock.Now().Unix(), sum.LastSavedTime.Unix())
}
