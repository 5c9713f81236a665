package game

import (
	"context"
	"time"

	"github.com/BananaMi1kshake/TheMonetizationGame/internal/event"
	"github.com/BananaMi1kshake/TheMonetizationGame/internal/notify"
	"github.com/BananaMi1kshake/TheMonetizationGame/internal/staff"
	"github.com/BananaMi1kshake/TheMonetizationGame/internal/upgrade"
)

// Tick advances the simulation by one second: passive income accrues, the
// event slot counts down, matured staff actions run in one batch, play
// time accumulates, achievements are scanned and the state autosaves.
func (e *Engine) Tick() {
	e.mu.Lock()
	defer e.mu.Unlock()

	income := e.passiveIncome()
	e.st.Money += income
	e.st.Stats.TotalMoneyEarned += income

	out := event.Tick(&e.st.SlotState, e.rng, e.st.HiredCount())
	if out.Ended != nil {
		e.applyEventEffects(out.Ended.OnEnd)
		e.resetAccumulators()
		notify.Publish(e.notifier, notify.KindEventEnded, out.Ended.Title, out.Ended.EffectText, map[string]any{"key": out.Ended.Key})
	}
	if out.Offered != nil {
		fields := map[string]any{"key": out.Offered.Key, "type": string(out.Offered.Type)}
		if len(out.Offered.Choices) > 0 {
			texts := []string{}
			for _, c := range out.Offered.Choices {
				texts = append(texts, c.Text)
			}
			fields["choices"] = texts
		}
		notify.Publish(e.notifier, notify.KindEventOffered, out.Offered.Title, out.Offered.Desc, fields)
	}

	e.runAutomation()

	e.st.Stats.PlayTime++
	e.checkAchievements()

	if e.saver != nil && e.bal.Autosave {
		// Fire-and-forget: local persistence never fails the tick.
		_ = e.saver.Save(e.st)
	}
}

// runAutomation counts staff actions by interval: each tick accumulates
// how many actions of each kind have matured and applies them in one
// batch. Per-member trigger animation is derived from the batch as a
// round-robin pulse.
func (e *Engine) runAutomation() {
	salesCount := staff.Count(staff.Sales, e.st.HiredStaff)
	if iv := e.salesStaffInterval(); salesCount > 0 && iv > 0 {
		e.salesAcc += float64(salesCount) * 1000 / iv
		for e.salesAcc >= 1 {
			e.salesAcc--
			e.generateLead(false)
			e.pulse(staff.Sales, &e.salesPulse)
		}
	}

	accountsCount := staff.Count(staff.Accounts, e.st.HiredStaff)
	if iv := e.accountsStaffInterval(); accountsCount > 0 && iv > 0 {
		e.accountsAcc += float64(accountsCount) * 1000 / iv
		for e.accountsAcc >= 1 {
			e.accountsAcc--
			e.developLead(false)
			e.pulse(staff.Accounts, &e.accountsPulse)
		}
	}

	// Referral program drips its level in leads every 10 seconds.
	if rp := e.st.Upgrades[upgrade.KeyReferralProgram]; rp != nil && rp.Level > 0 {
		e.referralAcc++
		if e.referralAcc >= 10 {
			e.referralAcc -= 10
			e.st.Leads += rp.Level
		}
	}

	// Background music adds level extra develop clicks per accounts staff
	// every second.
	if bm := e.st.Upgrades[upgrade.KeyBackgroundMusic]; bm != nil && bm.Level > 0 {
		clicks := accountsCount * bm.Level
		for i := 0; i < clicks; i++ {
			e.developLead(false)
		}
	}
}

// resetAccumulators discards fractional automation progress. Intervals are
// baked into the accumulation rate, so any rate-affecting change (hire,
// purchase, event start/end, speed setting) restarts counting from zero.
func (e *Engine) resetAccumulators() {
	e.salesAcc = 0
	e.accountsAcc = 0
	e.referralAcc = 0
}

func (e *Engine) pulse(dept staff.Department, cursor *int) {
	if e.notifier == nil {
		return
	}
	members := e.hiredMembers(dept)
	if len(members) == 0 {
		return
	}
	name := members[*cursor%len(members)]
	*cursor++
	e.notifier.Publish(notify.KindStaffWorked, "", "", map[string]any{"name": name})
}

// Run drives the engine with a wall-clock one-second ticker until the
// context is cancelled. A panicking tick is logged and the loop keeps
// going; the simulation runs for the lifetime of the process.
func (e *Engine) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.safeTick()
		}
	}
}

func (e *Engine) safeTick() {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Printf("tick panic recovered: %v", r)
		}
	}()
	e.Tick()
}
