package game

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/BananaMi1kshake/TheMonetizationGame/internal/achievement"
	"github.com/BananaMi1kshake/TheMonetizationGame/internal/config"
	"github.com/BananaMi1kshake/TheMonetizationGame/internal/event"
	"github.com/BananaMi1kshake/TheMonetizationGame/internal/notify"
	"github.com/BananaMi1kshake/TheMonetizationGame/internal/staff"
	"github.com/BananaMi1kshake/TheMonetizationGame/internal/upgrade"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrUnknownDepartment = errors.New("unknown department")
	ErrUnknownStaff      = errors.New("staff member not in roster")
	ErrAlreadyHired      = errors.New("staff member already hired")
	ErrStaffLocked       = errors.New("staff member not unlocked yet")
	ErrUnknownUpgrade    = errors.New("unknown upgrade")
	ErrUpgradeMaxed      = errors.New("upgrade already maxed")
	ErrUnknownSetting    = errors.New("unknown setting")
)

// Saver is the persistence hook the tick calls for autosaves. The save
// layer implements it; writes are synchronous and never fail the tick.
type Saver interface {
	Save(*State) error
}

// Engine owns the game state and enforces every economic rule. All
// mutation funnels through its mutex; hire and purchase are real critical
// sections, so a balance can never be double-spent between the manual and
// automation paths.
type Engine struct {
	mu sync.Mutex
	st *State

	bal      config.Balance
	clock    Clock
	rng      *rand.Rand
	notifier notify.Notifier
	saver    Saver
	logger   *log.Logger

	// Automation accumulators: fractional staff actions matured since the
	// last tick. Reset wholesale whenever any rate-affecting state changes
	// so stale progress never carries across an interval change.
	salesAcc    float64
	accountsAcc float64
	referralAcc float64

	salesPulse    int
	accountsPulse int
}

type Options struct {
	State    *State // nil starts fresh
	Balance  config.Balance
	Clock    Clock
	Rand     *rand.Rand
	Notifier notify.Notifier
	Saver    Saver
	Logger   *log.Logger
}

func New(opts Options) *Engine {
	bal := opts.Balance
	if bal == (config.Balance{}) {
		bal = config.DefaultBalance()
	}
	st := opts.State
	if st == nil {
		st = NewState(bal)
	}
	clock := opts.Clock
	if clock == nil {
		clock = RealClock{}
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{
		st:       st,
		bal:      bal,
		clock:    clock,
		rng:      rng,
		notifier: opts.Notifier,
		saver:    opts.Saver,
		logger:   logger,
	}
}

// ReplaceState swaps in a new state wholesale. Used by reset; automation
// progress does not carry across states.
func (e *Engine) ReplaceState(st *State) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.st = st
	e.resetAccumulators()
}

// Snapshot returns a deep copy of the current state for rendering or
// persistence.
func (e *Engine) Snapshot() *State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.st.Clone()
}

// GenerateLead runs the lead-generation trial(s) for one trigger. Manual
// triggers count toward click stats, may run a second trial under
// corporateCulture, and can cascade into developing a lead via
// aggressiveFollowup.
func (e *Engine) GenerateLead(manual bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.generateLead(manual)
}

func (e *Engine) generateLead(manual bool) {
	if e.st.IsLeadGenerationHalted {
		return
	}
	if manual {
		e.st.Stats.TotalManualClicks++
	}
	if manual || e.st.Settings.StaffTextAnimation {
		e.st.EmailCharIndex = (e.st.EmailCharIndex + 1) % (len(EmailContent) + 1)
	}

	trials := 1
	if manual && e.purchased(upgrade.KeyCorporateCulture) {
		trials = 2
	}
	for i := 0; i < trials; i++ {
		if e.rng.Float64() < e.leadChance() {
			gained := 1
			if lm := e.st.Upgrades[upgrade.KeyLeadMagnet]; lm != nil && lm.Multiplier >= 1 {
				gained = int(lm.Multiplier)
			}
			if e.st.IsActive(event.KeyViralMarketing) {
				gained *= 5
			}
			e.st.Leads += gained
			e.st.Stats.TotalLeadsGenerated += gained
			if manual {
				notify.Publish(e.notifier, notify.KindActionFeedback, "", fmt.Sprintf("+%d Lead", gained),
					map[string]any{"anchor": "generateLead"})
			}
		}
		if manual {
			if af := e.st.Upgrades[upgrade.KeyAggressiveFollowup]; af != nil && e.rng.Float64() < af.Chance {
				e.developLead(false)
			}
		}
	}
}

// DevelopLead advances the develop progress for one trigger and converts
// as many leads as the accumulated clicks cover. Each conversion is a
// permanent increase to the passive income rate, not a one-shot payment.
func (e *Engine) DevelopLead(manual bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.developLead(manual)
}

func (e *Engine) developLead(manual bool) {
	if e.st.IsLeadDevelopmentHalted {
		return
	}
	if e.st.Leads <= 0 {
		// Nothing to develop; only the typing cursor moves.
		if manual || e.st.Settings.StaffTextAnimation {
			e.st.AdCharIndex = (e.st.AdCharIndex + 1) % (len(AdScriptContent) + 1)
		}
		return
	}
	if manual {
		e.st.Stats.TotalManualClicks++
	}
	if manual || e.st.Settings.StaffTextAnimation {
		e.st.AdCharIndex = (e.st.AdCharIndex + 1) % (len(AdScriptContent) + 1)
	}

	mult := 1
	if manual {
		if e.purchased(upgrade.KeySecondMonitor) {
			mult *= 2
		}
		if e.purchased(upgrade.KeyCorporateCulture) {
			mult *= 2
		}
	}
	e.st.DevelopClicks += mult

	for e.st.DevelopClicks >= e.st.ClicksToDevelopLead && e.st.Leads > 0 {
		income := e.incomeFromLead()
		e.st.IncomeRate += income
		e.st.DevelopClicks -= e.st.ClicksToDevelopLead
		e.st.Leads--
		if manual {
			notify.Publish(e.notifier, notify.KindActionFeedback, "", fmt.Sprintf("+$%.2f/s", income),
				map[string]any{"anchor": "developLead"})
		}
	}
}

// HireStaff debits the department's current price and adds the member.
// The unlock chain must hold at hire time; the department price escalates
// multiplicatively afterwards.
func (e *Engine) HireStaff(dept staff.Department, name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	def, ok := staff.Get(dept)
	if !ok {
		return ErrUnknownDepartment
	}
	member := false
	for _, m := range def.Members {
		if m == name {
			member = true
			break
		}
	}
	if !member {
		return fmt.Errorf("%w: %s is not in %s", ErrUnknownStaff, name, dept)
	}
	if e.st.HiredStaff[name] {
		return ErrAlreadyHired
	}
	if !staff.Unlocked(name, e.st.HiredStaff) {
		return ErrStaffLocked
	}

	cost := e.st.StaffCosts[dept]
	if e.st.Money < cost {
		return ErrInsufficientFunds
	}
	e.st.Money -= cost
	e.st.HiredStaff[name] = true
	e.st.StaffCosts[dept] = cost * def.CostMultiplier
	if dept == staff.Products {
		e.st.IncomeRate += e.bal.ProductsHireIncomeBonus
	}
	e.resetAccumulators()
	e.checkAchievements()
	return nil
}

// BuyUpgrade debits the current price, applies the upgrade's effect and
// escalates leveled costs. Maxed and already-purchased upgrades are
// rejected with no state change.
func (e *Engine) BuyUpgrade(category, key string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	def, ok := upgrade.FindIn(category, key)
	if !ok {
		return fmt.Errorf("%w: %s/%s", ErrUnknownUpgrade, category, key)
	}
	st := e.st.Upgrades[key]
	if st == nil {
		st = upgrade.InitialState(def)
		e.st.Upgrades[key] = st
	}
	if upgrade.Maxed(def, st, e.st.ClicksToDevelopLead) {
		return ErrUpgradeMaxed
	}

	cost := upgrade.CurrentCost(def, st)
	if e.st.Money < cost {
		return ErrInsufficientFunds
	}
	e.st.Money -= cost
	e.applyUpgradeEffect(def, st)
	if !def.OneTime {
		st.Cost *= def.CostMultiplier
	}
	e.resetAccumulators()
	e.checkAchievements()
	return nil
}

// ToggleSetting flips a boolean setting by its save key.
func (e *Engine) ToggleSetting(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch name {
	case "offlineProgress":
		e.st.Settings.OfflineProgress = !e.st.Settings.OfflineProgress
	case "staffTextAnimation":
		e.st.Settings.StaffTextAnimation = !e.st.Settings.StaffTextAnimation
	default:
		return fmt.Errorf("%w: %s", ErrUnknownSetting, name)
	}
	return nil
}

// SetStaffSpeedMultiplier scales every automation interval; values <= 0
// are ignored.
func (e *Engine) SetStaffSpeedMultiplier(m float64) {
	if m <= 0 {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.st.Settings.AllStaffSpeedMultiplier = m
	e.resetAccumulators()
}

// Rename updates the player/company display names. Empty strings keep the
// existing values.
func (e *Engine) Rename(playerName, companyName string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if playerName != "" {
		e.st.PlayerName = playerName
	}
	if companyName != "" {
		e.st.CompanyName = companyName
	}
}

// PendingEvent returns the event currently awaiting acknowledgement or a
// choice, if any.
func (e *Engine) PendingEvent() (event.Def, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.st.Pending == "" {
		return event.Def{}, false
	}
	return event.Find(e.st.Pending)
}

// AcknowledgeEvent resolves a pending non-choice event: duration events
// become active, instantaneous ones apply immediately.
func (e *Engine) AcknowledgeEvent() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	def, effects, err := event.Acknowledge(&e.st.SlotState, e.rng)
	if err != nil {
		return err
	}
	e.applyEventEffects(effects)
	e.resetAccumulators()
	notify.Publish(e.notifier, notify.KindEventStarted, def.Title, def.EffectText, map[string]any{"key": def.Key})
	e.checkAchievements()
	return nil
}

// ChooseEventOption resolves a pending choice event with the selected
// option.
func (e *Engine) ChooseEventOption(choice int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	def, effects, err := event.Choose(&e.st.SlotState, e.rng, choice)
	if err != nil {
		return err
	}
	e.applyEventEffects(effects)
	e.resetAccumulators()
	notify.Publish(e.notifier, notify.KindEventStarted, def.Title, def.EffectText, map[string]any{"key": def.Key, "choice": choice})
	e.checkAchievements()
	return nil
}

// Save pushes the current state through the persistence hook (manual save
// button).
func (e *Engine) Save() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.saver == nil {
		return nil
	}
	if err := e.saver.Save(e.st); err != nil {
		return err
	}
	notify.Publish(e.notifier, notify.KindSaved, "Saved!", "", nil)
	return nil
}

func (e *Engine) purchased(key string) bool {
	st := e.st.Upgrades[key]
	return st != nil && st.Purchased
}

func (e *Engine) checkAchievements() {
	view := achievement.View{
		TotalMoneyEarned:     e.st.Stats.TotalMoneyEarned,
		TotalManualClicks:    e.st.Stats.TotalManualClicks,
		WaitedOutServerCrash: e.st.Stats.WaitedOutServerCrash,
		Hired:                e.st.HiredStaff,
		Upgrades:             e.st.Upgrades,
	}
	for _, def := range achievement.Check(view, e.st.Achievements) {
		notify.Publish(e.notifier, notify.KindAchievementUnlocked, def.Name, def.Description, map[string]any{"key": def.Key})
	}
}

// hiredMembers returns the hired names of one department in roster order,
// skipping stale save entries.
func (e *Engine) hiredMembers(dept staff.Department) []string {
	def, ok := staff.Get(dept)
	if !ok {
		return nil
	}
	names := []string{}
	for _, m := range def.Members {
		if e.st.HiredStaff[m] {
			names = append(names, m)
		}
	}
	return names
}
