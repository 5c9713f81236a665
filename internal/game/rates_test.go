package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BananaMi1kshake/TheMonetizationGame/internal/event"
	"github.com/BananaMi1kshake/TheMonetizationGame/internal/upgrade"
)

func TestLeadChance(t *testing.T) {
	e := newTestEngine(t, nil)
	assert.InDelta(t, 0.02, e.LeadChance(), 1e-9)

	e.st.Upgrades[upgrade.KeyBetterLeadForms].Level = 3
	assert.InDelta(t, 0.02+3*0.002, e.LeadChance(), 1e-9)

	// betterEmailSubject scales with hired sales staff.
	e.st.Upgrades[upgrade.KeyBetterEmailSubject].Level = 2
	e.st.HiredStaff["Artyom"] = true
	e.st.HiredStaff["Alan"] = true
	assert.InDelta(t, 0.02+3*0.002+0.01*2*2, e.LeadChance(), 1e-9)

	e.st.Active = &event.Active{Key: event.KeyNegativePR, TimeLeft: 10}
	assert.InDelta(t, (0.02+3*0.002+0.01*2*2)/2, e.LeadChance(), 1e-9)
}

func TestIncomeFromLead_Modifiers(t *testing.T) {
	e := newTestEngine(t, nil)
	assert.InDelta(t, 0.02, e.incomeFromLead(), 1e-9)

	e.st.Upgrades[upgrade.KeySYCGlobal].Purchased = true
	assert.InDelta(t, 0.02*1.2, e.incomeFromLead(), 1e-9)

	e.st.Active = &event.Active{Key: event.KeyBullMarket, TimeLeft: 10}
	assert.InDelta(t, 0.02*1.2*2, e.incomeFromLead(), 1e-9)

	e.st.Active = &event.Active{Key: event.KeyAdNetworkOutage, TimeLeft: 10}
	assert.InDelta(t, 0.02*1.2/2, e.incomeFromLead(), 1e-9)
}

func TestStaffIntervals(t *testing.T) {
	e := newTestEngine(t, nil)
	assert.InDelta(t, 750, e.salesStaffInterval(), 1e-9)
	assert.InDelta(t, 500, e.accountsStaffInterval(), 1e-9)

	e.st.Upgrades[upgrade.KeyAmirsAutomation].Purchased = true
	assert.InDelta(t, 250, e.accountsStaffInterval(), 1e-9)

	e.st.Active = &event.Active{Key: event.KeyProductivityGuru, TimeLeft: 10}
	assert.InDelta(t, 125, e.accountsStaffInterval(), 1e-9)

	e.st.Active = &event.Active{Key: event.KeyTeamBurnout, TimeLeft: 10}
	assert.InDelta(t, 312.5, e.accountsStaffInterval(), 1e-9)

	e.st.Active = nil
	e.st.Settings.AllStaffSpeedMultiplier = 2
	assert.InDelta(t, 500, e.accountsStaffInterval(), 1e-9)
}

func TestLeadGenerationRate(t *testing.T) {
	e := newTestEngine(t, nil)
	assert.Zero(t, e.leadGenerationRate())

	// One sales hire at the default 750ms interval and base chance.
	e.st.HiredStaff["Artyom"] = true
	assert.InDelta(t, (1000.0/750)*0.02, e.leadGenerationRate(), 1e-9)

	e.st.Upgrades[upgrade.KeyReferralProgram].Level = 3
	assert.InDelta(t, (1000.0/750)*0.02+0.3, e.leadGenerationRate(), 1e-9)

	e.st.Active = &event.Active{Key: event.KeyViralMarketing, TimeLeft: 10}
	assert.InDelta(t, ((1000.0/750)*0.02+0.3)*5, e.leadGenerationRate(), 1e-9)

	e.st.IsLeadGenerationHalted = true
	assert.Zero(t, e.leadGenerationRate())
}

func TestLeadDevelopmentRate(t *testing.T) {
	e := newTestEngine(t, nil)
	e.st.HiredStaff["Azret"] = true
	assert.InDelta(t, 1000.0/500, e.leadDevelopmentRate(), 1e-9)

	e.st.Upgrades[upgrade.KeyBackgroundMusic].Level = 2
	assert.InDelta(t, 1000.0/500+1*2, e.leadDevelopmentRate(), 1e-9)

	e.st.Active = &event.Active{Key: event.KeyServerCrashPenalty, TimeLeft: 10}
	assert.Zero(t, e.leadDevelopmentRate())
}

func TestCurrentRates_Bundle(t *testing.T) {
	e := newTestEngine(t, nil)
	e.st.IncomeRate = 7

	r := e.CurrentRates()
	assert.InDelta(t, 0.02, r.LeadChance, 1e-9)
	assert.InDelta(t, 7, r.PassiveIncomePerSec, 1e-9)
	assert.InDelta(t, 750, r.SalesIntervalMS, 1e-9)
	assert.InDelta(t, 500, r.AccountsIntervalMS, 1e-9)
}
