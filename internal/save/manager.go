package save

import (
	"encoding/json"
	"log"

	"github.com/BananaMi1kshake/TheMonetizationGame/internal/achievement"
	"github.com/BananaMi1kshake/TheMonetizationGame/internal/config"
	"github.com/BananaMi1kshake/TheMonetizationGame/internal/game"
	"github.com/BananaMi1kshake/TheMonetizationGame/internal/upgrade"
)

// Manager loads and writes the save blob. It implements game.Saver so the
// engine can autosave through it.
type Manager struct {
	store  Store
	bal    config.Balance
	clock  game.Clock
	logger *log.Logger
}

func NewManager(store Store, bal config.Balance, clock game.Clock, logger *log.Logger) *Manager {
	if clock == nil {
		clock = game.RealClock{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{store: store, bal: bal, clock: clock, logger: logger}
}

// OfflineCredit reports income granted for time spent away.
type OfflineCredit struct {
	Credited    bool    `json:"credited"`
	AwaySeconds float64 `json:"awaySeconds"`
	Amount      float64 `json:"amount"`
}

// LoadResult is what a session starts from.
type LoadResult struct {
	State   *game.State
	Fresh   bool
	Offline OfflineCredit
}

// Save stamps the save time and writes the state through the store. Called
// by the engine under its own lock, so the state is stable for the
// duration.
func (m *Manager) Save(st *game.State) error {
	st.LastSavedTime = m.clock.Now()
	b, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return m.store.Write(b)
}

// Load reads the save and merges it over a fresh default state, so a blob
// written by an older build silently gains any fields and catalog entries
// added since. A corrupt blob is logged and replaced with a fresh game
// rather than refusing to start.
func (m *Manager) Load() LoadResult {
	blob, ok, err := m.store.Read()
	if err != nil {
		m.logger.Printf("save: read failed, starting fresh: %v", err)
		return LoadResult{State: game.NewState(m.bal), Fresh: true}
	}
	if !ok {
		return LoadResult{State: game.NewState(m.bal), Fresh: true}
	}

	st, err := m.merge(blob)
	if err != nil {
		m.logger.Printf("save: corrupt blob, starting fresh: %v", err)
		return LoadResult{State: game.NewState(m.bal), Fresh: true}
	}

	return LoadResult{State: st, Offline: m.creditOffline(st)}
}

// merge unmarshals the blob over defaults in two passes. The first pass
// fills scalars and whole-map entries; the second re-runs the upgrade and
// achievement maps key by key over freshly seeded defaults, because a map
// entry decode starts from a zero value and would otherwise wipe seeded
// tuning fields an old save never wrote. Keys the catalogs no longer know
// are dropped.
func (m *Manager) merge(blob []byte) (*game.State, error) {
	st := game.NewState(m.bal)
	if err := json.Unmarshal(blob, st); err != nil {
		return nil, err
	}

	var aux struct {
		Upgrades     map[string]json.RawMessage `json:"upgrades"`
		Achievements map[string]json.RawMessage `json:"achievements"`
	}
	if err := json.Unmarshal(blob, &aux); err != nil {
		return nil, err
	}

	st.Upgrades = upgrade.InitialStates()
	for key, raw := range aux.Upgrades {
		base, known := st.Upgrades[key]
		if !known {
			continue
		}
		if err := json.Unmarshal(raw, base); err != nil {
			return nil, err
		}
	}

	st.Achievements = achievement.InitialStates()
	for key, raw := range aux.Achievements {
		base, known := st.Achievements[key]
		if !known {
			continue
		}
		if err := json.Unmarshal(raw, base); err != nil {
			return nil, err
		}
	}

	if st.ClicksToDevelopLead <= 0 {
		st.ClicksToDevelopLead = m.bal.ClicksToDevelopLead
	}
	if st.Settings.AllStaffSpeedMultiplier <= 0 {
		st.Settings.AllStaffSpeedMultiplier = 1
	}
	return st, nil
}

// creditOffline grants reduced-rate passive income for the time between
// the last save and now, when the player has opted in.
func (m *Manager) creditOffline(st *game.State) OfflineCredit {
	if !st.Settings.OfflineProgress || st.LastSavedTime.IsZero() {
		return OfflineCredit{}
	}
	gap := m.clock.Now().Sub(st.LastSavedTime).Seconds()
	if gap <= float64(m.bal.OfflineMinGapSeconds) {
		return OfflineCredit{}
	}
	amount := st.IncomeRate * gap * m.bal.OfflineEfficiency
	if amount <= 0 {
		return OfflineCredit{AwaySeconds: gap}
	}
	st.Money += amount
	st.Stats.TotalMoneyEarned += amount
	return OfflineCredit{Credited: true, AwaySeconds: gap, Amount: amount}
}

// Reset wipes the save and returns a fresh default state.
func (m *Manager) Reset() (*game.State, error) {
	if err := m.store.Clear(); err != nil {
		return nil, err
	}
	return game.NewState(m.bal), nil
}
