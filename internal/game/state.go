package game

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/BananaMi1kshake/TheMonetizationGame/internal/achievement"
	"github.com/BananaMi1kshake/TheMonetizationGame/internal/config"
	"github.com/BananaMi1kshake/TheMonetizationGame/internal/event"
	"github.com/BananaMi1kshake/TheMonetizationGame/internal/staff"
	"github.com/BananaMi1kshake/TheMonetizationGame/internal/upgrade"
)

// EmailContent and AdScriptContent back the typing animation on the sales
// and accounts screens; the char indices below cursor through them.
const (
	EmailContent    = "Dear Valued Client,\n\nWe hope this message finds you well..."
	AdScriptContent = "// Monetization Script\nfunction showAd() {...}"
)

// StaffSet is the hired-staff membership set. It serializes as a sorted
// name list so saves are stable and diffable.
type StaffSet map[string]bool

func (s StaffSet) MarshalJSON() ([]byte, error) {
	names := make([]string, 0, len(s))
	for name, ok := range s {
		if ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return json.Marshal(names)
}

func (s *StaffSet) UnmarshalJSON(b []byte) error {
	var names []string
	if err := json.Unmarshal(b, &names); err != nil {
		return err
	}
	set := StaffSet{}
	for _, name := range names {
		set[name] = true
	}
	*s = set
	return nil
}

type Stats struct {
	TotalMoneyEarned     float64 `json:"totalMoneyEarned"`
	TotalManualClicks    int     `json:"totalManualClicks"`
	TotalLeadsGenerated  int     `json:"totalLeadsGenerated"`
	PlayTime             int     `json:"playTime"` // seconds
	WaitedOutServerCrash bool    `json:"waitedOutServerCrash"`
}

type Settings struct {
	OfflineProgress         bool    `json:"offlineProgress"`
	StaffTextAnimation      bool    `json:"staffTextAnimation"`
	AllStaffSpeedMultiplier float64 `json:"allStaffSpeedMultiplier"`
}

// State is the single mutable aggregate of the simulation, owned
// exclusively by one Engine. Everything here round-trips through the save
// blob; transient run-state (automation accumulators, the pending event
// offer) lives outside it.
type State struct {
	PlayerName  string `json:"playerName"`
	CompanyName string `json:"companyName"`

	Leads               int     `json:"leads"`
	Money               float64 `json:"money"`
	DevelopClicks       int     `json:"developClicks"`
	IncomePerLead       float64 `json:"incomePerLead"`
	IncomeRate          float64 `json:"incomeRate"`
	ClicksToDevelopLead int     `json:"clicksToDevelopLead"`

	HiredStaff StaffSet                     `json:"hiredStaff"`
	StaffCosts map[staff.Department]float64 `json:"staffCosts"`

	Upgrades     map[string]*upgrade.State     `json:"upgrades"`
	Achievements map[string]*achievement.State `json:"achievements"`

	Stats    Stats    `json:"stats"`
	Settings Settings `json:"settings"`

	event.SlotState

	IsLeadGenerationHalted  bool `json:"isLeadGenerationHalted"`
	IsLeadDevelopmentHalted bool `json:"isLeadDevelopmentHalted"`

	EmailCharIndex int `json:"emailCharIndex"`
	AdCharIndex    int `json:"adCharIndex"`

	LastSavedTime time.Time `json:"lastSavedTime"`
}

// NewState builds a fresh default state for the given balance.
func NewState(bal config.Balance) *State {
	costs := map[staff.Department]float64{}
	for _, def := range staff.Departments() {
		costs[def.Department] = def.Cost
	}
	return &State{
		IncomePerLead:       bal.BaseIncomePerLead,
		ClicksToDevelopLead: bal.ClicksToDevelopLead,
		HiredStaff:          StaffSet{},
		StaffCosts:          costs,
		Upgrades:            upgrade.InitialStates(),
		Achievements:        achievement.InitialStates(),
		Settings: Settings{
			OfflineProgress:         false,
			StaffTextAnimation:      true,
			AllStaffSpeedMultiplier: 1,
		},
		SlotState: event.SlotState{Cooldown: event.DefaultCooldown},
	}
}

// HiredCount counts members, skipping any stale names a save may carry for
// staff that no longer exist in the roster.
func (s *State) HiredCount() int {
	n := 0
	for name, ok := range s.HiredStaff {
		if !ok {
			continue
		}
		if _, known := staff.DepartmentOf(name); known {
			n++
		}
	}
	return n
}

// Clone returns a deep copy safe to hand to render/persistence code while
// the engine keeps mutating the original.
func (s *State) Clone() *State {
	out := *s

	out.HiredStaff = StaffSet{}
	for name, ok := range s.HiredStaff {
		out.HiredStaff[name] = ok
	}

	out.StaffCosts = map[staff.Department]float64{}
	for dept, cost := range s.StaffCosts {
		out.StaffCosts[dept] = cost
	}

	out.Upgrades = map[string]*upgrade.State{}
	for key, st := range s.Upgrades {
		cp := *st
		out.Upgrades[key] = &cp
	}

	out.Achievements = map[string]*achievement.State{}
	for key, st := range s.Achievements {
		cp := *st
		out.Achievements[key] = &cp
	}

	if s.Active != nil {
		cp := *s.Active
		out.Active = &cp
	}
	return &out
}
