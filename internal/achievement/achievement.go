package achievement

import (
	"github.com/BananaMi1kshake/TheMonetizationGame/internal/staff"
	"github.com/BananaMi1kshake/TheMonetizationGame/internal/upgrade"
)

// View is the read-only slice of game state the predicates evaluate.
type View struct {
	TotalMoneyEarned     float64
	TotalManualClicks    int
	WaitedOutServerCrash bool
	Hired                map[string]bool
	Upgrades             map[string]*upgrade.State
}

type Def struct {
	Key         string          `json:"key"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Condition   func(View) bool `json:"-"`
}

type State struct {
	Unlocked bool `json:"unlocked"`
}

func moneyEarned(threshold float64) func(View) bool {
	return func(v View) bool { return v.TotalMoneyEarned >= threshold }
}

var registry = []Def{
	{Key: "mukhtarSatisfied", Name: "Mukhtar is satisfied", Description: "Earn $50 total.", Condition: moneyEarned(50)},
	{Key: "mukhtarHappy", Name: "Mukhtar is happy", Description: "Earn $100 total.", Condition: moneyEarned(100)},
	{Key: "mukhtarReallyHappy", Name: "Mukhtar is REALLY happy", Description: "Earn $1,000 total.", Condition: moneyEarned(1000)},
	{Key: "someonePromoted", Name: "Someone is getting promoted", Description: "Earn $5,000 total.", Condition: moneyEarned(5000)},
	{Key: "syc", Name: "100% СУЦ", Description: "Earn $10,000 total.", Condition: moneyEarned(10000)},
	{Key: "carpalTunnel", Name: "Carpal Tunnel Syndrome", Description: "Manually click 10,000 times.",
		Condition: func(v View) bool { return v.TotalManualClicks >= 10000 }},
	{Key: "buyMyUSDT", Name: "Buy my USDT", Description: "Hire Emil.",
		Condition: func(v View) bool { return v.Hired["Emil"] }},
	{Key: "salesDivision", Name: "Sales Division Assembled", Description: "Hire every staff member from the Sales department.",
		Condition: func(v View) bool { return staff.Complete(staff.Sales, v.Hired) }},
	{Key: "accountsDivision", Name: "Accounts Division Assembled", Description: "Hire every staff member from the Accounts department.",
		Condition: func(v View) bool { return staff.Complete(staff.Accounts, v.Hired) }},
	{Key: "peakEfficiency", Name: "Peak Efficiency", Description: "Purchase all of the one-time Global Upgrades.",
		Condition: func(v View) bool {
			for _, key := range upgrade.GlobalOneTimeKeys() {
				st, ok := v.Upgrades[key]
				if !ok || !st.Purchased {
					return false
				}
			}
			return true
		}},
	{Key: "shapkaGang", Name: "Шапка gang", Description: "Hire all staff.",
		Condition: func(v View) bool {
			n := 0
			for _, ok := range v.Hired {
				if ok {
					n++
				}
			}
			return n == staff.TotalMembers()
		}},
	{Key: "crisisAverted", Name: "Crisis Averted", Description: "Successfully navigate a \"Server Crash\" event by waiting it out instead of paying.",
		Condition: func(v View) bool { return v.WaitedOutServerCrash }},
}

func Registry() []Def { return registry }

func Find(key string) (Def, bool) {
	for _, def := range registry {
		if def.Key == key {
			return def, true
		}
	}
	return Def{}, false
}

// InitialStates builds the locked default map for the full registry.
func InitialStates() map[string]*State {
	states := map[string]*State{}
	for _, def := range registry {
		states[def.Key] = &State{}
	}
	return states
}

// Check scans every still-locked achievement against the view, flags new
// unlocks in place and returns them in registry order so the caller can
// batch one notification pass.
func Check(v View, states map[string]*State) []Def {
	var unlocked []Def
	for _, def := range registry {
		st, ok := states[def.Key]
		if !ok {
			st = &State{}
			states[def.Key] = st
		}
		if st.Unlocked || !def.Condition(v) {
			continue
		}
		st.Unlocked = true
		unlocked = append(unlocked, def)
	}
	return unlocked
}
