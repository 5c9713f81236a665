package game

import (
	"github.com/BananaMi1kshake/TheMonetizationGame/internal/event"
	"github.com/BananaMi1kshake/TheMonetizationGame/internal/staff"
	"github.com/BananaMi1kshake/TheMonetizationGame/internal/upgrade"
)

// Rates is the derived-rate bundle the render surface polls each frame.
type Rates struct {
	LeadChance            float64 `json:"leadChance"`
	PassiveIncomePerSec   float64 `json:"passiveIncomePerSec"`
	LeadGenerationPerSec  float64 `json:"leadGenerationPerSec"`
	LeadDevelopmentPerSec float64 `json:"leadDevelopmentPerSec"`
	SalesIntervalMS       float64 `json:"salesIntervalMs"`
	AccountsIntervalMS    float64 `json:"accountsIntervalMs"`
}

// CurrentRates recomputes every derived rate from live state.
func (e *Engine) CurrentRates() Rates {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Rates{
		LeadChance:            e.leadChance(),
		PassiveIncomePerSec:   e.passiveIncome(),
		LeadGenerationPerSec:  e.leadGenerationRate(),
		LeadDevelopmentPerSec: e.leadDevelopmentRate(),
		SalesIntervalMS:       e.salesStaffInterval(),
		AccountsIntervalMS:    e.accountsStaffInterval(),
	}
}

// LeadChance is the per-trial success probability of a generation action.
func (e *Engine) LeadChance() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.leadChance()
}

// leadChance accumulates additive bonuses with no upper clamp: values past
// 1 just make every Bernoulli trial succeed.
func (e *Engine) leadChance() float64 {
	chance := e.bal.BaseLeadChance
	if blf := e.st.Upgrades[upgrade.KeyBetterLeadForms]; blf != nil {
		chance += float64(blf.Level) * blf.ChanceIncrease
	}
	if bes := e.st.Upgrades[upgrade.KeyBetterEmailSubject]; bes != nil {
		chance += e.bal.SalesStaffChanceBonus * float64(staff.Count(staff.Sales, e.st.HiredStaff)) * float64(bes.Level)
	}
	if e.st.IsActive(event.KeyNegativePR) {
		chance /= 2
	}
	return chance
}

// incomeFromLead draws the permanent income-rate increase for one
// converted lead. All modifiers are scalar products, so the order does not
// matter.
func (e *Engine) incomeFromLead() float64 {
	income := e.st.IncomePerLead
	if e.purchased(upgrade.KeySYCGlobal) {
		if def, ok := upgrade.Find(upgrade.KeySYCGlobal); ok && def.IncomeMultiplier > 0 {
			income *= def.IncomeMultiplier
		}
	}
	if cpm := e.st.Upgrades[upgrade.KeyCPMOptimization]; cpm != nil && cpm.Chance > 0 && e.rng.Float64() < cpm.Chance {
		income *= 2
	}
	if e.st.IsActive(event.KeyBullMarket) {
		income *= 2
	}
	if e.st.IsActive(event.KeyAdNetworkOutage) {
		income /= 2
	}
	return income
}

func (e *Engine) passiveIncome() float64 {
	if e.st.IsActive(event.KeyServerCrashPenalty) {
		return 0
	}
	return e.st.IncomeRate
}

// baseStaffInterval is the automation period in milliseconds before
// department factors.
func (e *Engine) baseStaffInterval() float64 {
	iv := e.bal.BaseStaffIntervalMS
	if e.purchased(upgrade.KeyAmirsAutomation) {
		iv /= 2
	}
	if e.st.IsActive(event.KeyProductivityGuru) {
		iv *= 0.5
	}
	if e.st.IsActive(event.KeyTeamBurnout) {
		iv *= 1.25
	}
	if m := e.st.Settings.AllStaffSpeedMultiplier; m > 0 {
		iv *= m
	}
	return iv
}

func (e *Engine) salesStaffInterval() float64 {
	return e.baseStaffInterval() * e.bal.SalesIntervalFactor
}

func (e *Engine) accountsStaffInterval() float64 {
	iv := e.baseStaffInterval()
	if e.st.IsActive(event.KeyAccountRevitalization) {
		iv *= 0.75
	}
	return iv
}

func (e *Engine) leadGenerationRate() float64 {
	if e.st.IsLeadGenerationHalted {
		return 0
	}
	rate := 0.0
	salesCount := staff.Count(staff.Sales, e.st.HiredStaff)
	if iv := e.salesStaffInterval(); salesCount > 0 && iv > 0 {
		rate += (float64(salesCount) * 1000 / iv) * e.leadChance()
	}
	if rp := e.st.Upgrades[upgrade.KeyReferralProgram]; rp != nil && rp.Level > 0 {
		rate += float64(rp.Level) / 10
	}
	if e.st.IsActive(event.KeyViralMarketing) {
		rate *= 5
	}
	return rate
}

func (e *Engine) leadDevelopmentRate() float64 {
	if e.st.IsLeadDevelopmentHalted || e.st.IsActive(event.KeyServerCrashPenalty) {
		return 0
	}
	rate := 0.0
	accountsCount := staff.Count(staff.Accounts, e.st.HiredStaff)
	if iv := e.accountsStaffInterval(); accountsCount > 0 && iv > 0 {
		rate += float64(accountsCount) * 1000 / iv
	}
	if bm := e.st.Upgrades[upgrade.KeyBackgroundMusic]; bm != nil && bm.Level > 0 {
		rate += float64(accountsCount) * float64(bm.Level)
	}
	return rate
}
