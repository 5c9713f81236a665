package game

import (
	"math"

	"github.com/BananaMi1kshake/TheMonetizationGame/internal/event"
	"github.com/BananaMi1kshake/TheMonetizationGame/internal/notify"
	"github.com/BananaMi1kshake/TheMonetizationGame/internal/upgrade"
)

// applyUpgradeEffect is the single dispatcher for upgrade purchases. Every
// effect is a tagged descriptor; per-upgrade behavior lives here, not in
// the catalog.
func (e *Engine) applyUpgradeEffect(def upgrade.Def, st *upgrade.State) {
	switch def.Effect.Kind {
	case upgrade.EffectLevel:
		st.Level++

	case upgrade.EffectGrowMultiplier:
		st.Level++
		if st.Multiplier <= 0 {
			st.Multiplier = 1
		}
		st.Multiplier *= def.Effect.Amount

	case upgrade.EffectAddChance:
		st.Level++
		st.Chance += def.Effect.Amount
		if def.Effect.Cap > 0 && st.Chance > def.Effect.Cap {
			st.Chance = def.Effect.Cap
		}

	case upgrade.EffectReduceDevelopClicks:
		st.Level++
		next := e.st.ClicksToDevelopLead - st.ClicksReduction
		if next < e.bal.DevelopClicksFloor {
			next = e.bal.DevelopClicksFloor
		}
		e.st.ClicksToDevelopLead = next

	case upgrade.EffectAddIncomePerLead:
		st.Level++
		e.st.IncomePerLead += st.IncomeBonus

	case upgrade.EffectPurchase:
		st.Purchased = true

	case upgrade.EffectTuningBoost:
		st.Purchased = true
		if blf := e.st.Upgrades[upgrade.KeyBetterLeadForms]; blf != nil {
			blf.ChanceIncrease *= def.Effect.Amount
		}
		if ash := e.st.Upgrades[upgrade.KeyAsiyasHelp]; ash != nil {
			ash.ClicksReduction = int(math.Round(float64(ash.ClicksReduction) * def.Effect.Amount))
		}
	}
}

// applyEventEffects interprets an event's effect batch. Start/end batches
// are exact inverses, so an ended event always restores what its start
// changed.
func (e *Engine) applyEventEffects(effects []event.Effect) {
	for _, ef := range effects {
		switch ef.Kind {
		case event.EffectAddIncomePerLead:
			e.st.IncomePerLead += ef.Amount

		case event.EffectScaleIncomePerLead:
			e.st.IncomePerLead *= ef.Amount

		case event.EffectGainBalancePct:
			gain := e.st.Money * ef.Amount
			e.st.Money += gain
			e.st.Stats.TotalMoneyEarned += gain

		case event.EffectLoseBalancePct:
			e.st.Money -= e.st.Money * ef.Amount

		case event.EffectStartEvent:
			e.startEvent(ef.Key)

		case event.EffectPayOrStart:
			if e.st.Money >= ef.Amount {
				e.st.Money -= ef.Amount
			} else {
				e.startEvent(ef.Key)
			}

		case event.EffectMarkWaitedOut:
			e.st.Stats.WaitedOutServerCrash = true

		case event.EffectHaltDevelopment:
			e.st.IsLeadDevelopmentHalted = true

		case event.EffectResumeDevelopment:
			e.st.IsLeadDevelopmentHalted = false
		}
	}
}

// startEvent activates a chained event (a penalty following a choice).
func (e *Engine) startEvent(key string) {
	def, effects, ok := event.Start(&e.st.SlotState, key)
	if !ok {
		return
	}
	e.applyEventEffects(effects)
	notify.Publish(e.notifier, notify.KindEventStarted, def.Title, def.EffectText, map[string]any{"key": def.Key})
}
