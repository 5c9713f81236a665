package upgrade

// EffectKind tags what a purchase does to the game. Effects are plain data
// interpreted by the engine's dispatcher; definitions hold no behavior.
type EffectKind string

const (
	// EffectLevel increments the upgrade level; derived rates read the level
	// directly (betterLeadForms, betterEmailSubject, referralProgram,
	// backgroundMusic).
	EffectLevel EffectKind = "level"
	// EffectGrowMultiplier increments the level and multiplies the per-click
	// lead multiplier by Amount (leadMagnet).
	EffectGrowMultiplier EffectKind = "grow_multiplier"
	// EffectAddChance increments the level and adds Amount to the stored
	// chance, clamped to Cap when Cap > 0 (aggressiveFollowup,
	// cpmOptimization).
	EffectAddChance EffectKind = "add_chance"
	// EffectReduceDevelopClicks increments the level and lowers the global
	// clicks-to-develop threshold by the stored reduction, floored at 10
	// (asiyasHelp).
	EffectReduceDevelopClicks EffectKind = "reduce_develop_clicks"
	// EffectAddIncomePerLead increments the level and raises the global
	// income per developed lead by the stored bonus (newAdNetworks).
	EffectAddIncomePerLead EffectKind = "add_income_per_lead"
	// EffectPurchase flips the one-time purchased flag.
	EffectPurchase EffectKind = "purchase"
	// EffectTuningBoost is nytPuzzles: purchase, then scale
	// betterLeadForms' chance increase and asiyasHelp's clicks reduction by
	// Amount (the reduction is rounded to the nearest whole click).
	EffectTuningBoost EffectKind = "tuning_boost"
)

type Effect struct {
	Kind   EffectKind `json:"kind"`
	Amount float64    `json:"amount,omitempty"`
	Cap    float64    `json:"cap,omitempty"`
}

// State is the mutable per-upgrade slice of the save. One-time upgrades use
// only Purchased; leveled upgrades use Level/Cost plus whichever tuning
// fields their effect reads. The shape is fixed by the definition.
type State struct {
	Purchased bool `json:"purchased,omitempty"`

	Level int     `json:"level,omitempty"`
	Cost  float64 `json:"cost,omitempty"`

	ChanceIncrease  float64 `json:"chanceIncrease,omitempty"`
	Multiplier      float64 `json:"multiplier,omitempty"`
	Chance          float64 `json:"chance,omitempty"`
	ClicksReduction int     `json:"clicksReduction,omitempty"`
	IncomeBonus     float64 `json:"incomeBonus,omitempty"`
}

type Def struct {
	Key            string  `json:"key"`
	Category       string  `json:"category"`
	Name           string  `json:"name"`
	Desc           string  `json:"desc"`
	Cost           float64 `json:"cost"`
	CostMultiplier float64 `json:"costMultiplier,omitempty"`
	OneTime        bool    `json:"oneTime,omitempty"`
	Effect         Effect  `json:"effect"`

	// IncomeMultiplier is read at income-draw time for sycGlobal.
	IncomeMultiplier float64 `json:"incomeMultiplier,omitempty"`

	// Seed carries the initial values of the leveled tuning fields.
	Seed State `json:"-"`
}

type Category struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Upgrades []Def  `json:"upgrades"`
}

// Well-known keys referenced by the engine's rate math.
const (
	KeyBetterLeadForms    = "betterLeadForms"
	KeyLeadMagnet         = "leadMagnet"
	KeyBetterEmailSubject = "betterEmailSubject"
	KeyReferralProgram    = "referralProgram"
	KeyAggressiveFollowup = "aggressiveFollowup"
	KeyAsiyasHelp         = "asiyasHelp"
	KeySecondMonitor      = "secondMonitor"
	KeyNewAdNetworks      = "newAdNetworks"
	KeyBackgroundMusic    = "backgroundMusic"
	KeyCPMOptimization    = "cpmOptimization"
	KeyNYTPuzzles         = "nytPuzzles"
	KeyCorporateCulture   = "corporateCulture"
	KeySYCGlobal          = "sycGlobal"
	KeyAmirsAutomation    = "amirsAutomation"
	KeyCoffeeMachine      = "coffeeMachine"
)

var catalog = []Category{
	{
		Key:  "sales",
		Name: "Sales Upgrades",
		Upgrades: []Def{
			{
				Key: KeyBetterLeadForms, Category: "sales", Name: "Better Lead Forms",
				Desc: "Increases manual lead generation chance.",
				Cost: 1, CostMultiplier: 5,
				Effect: Effect{Kind: EffectLevel},
				Seed:   State{ChanceIncrease: 0.002},
			},
			{
				Key: KeyLeadMagnet, Category: "sales", Name: "Lead Magnet",
				Desc: "Manual clicks generate multiplied leads.",
				Cost: 50, CostMultiplier: 10,
				Effect: Effect{Kind: EffectGrowMultiplier, Amount: 2},
				Seed:   State{Multiplier: 1},
			},
			{
				Key: KeyBetterEmailSubject, Category: "sales", Name: "Better Email Subject",
				Desc: "+1% bonus lead chance per Sales staff.",
				Cost: 20, CostMultiplier: 3,
				Effect: Effect{Kind: EffectLevel},
			},
			{
				Key: KeyReferralProgram, Category: "sales", Name: "Referral Program",
				Desc: "Passively generate leads every 10 seconds.",
				Cost: 15, CostMultiplier: 3,
				Effect: Effect{Kind: EffectLevel},
			},
			{
				Key: KeyAggressiveFollowup, Category: "sales", Name: "Aggressive Followup",
				Desc: "+5% chance per click to instantly develop a lead.",
				Cost: 7, CostMultiplier: 3,
				Effect: Effect{Kind: EffectAddChance, Amount: 0.05},
			},
		},
	},
	{
		Key:  "accounts",
		Name: "Accounts Upgrades",
		Upgrades: []Def{
			{
				Key: KeyAsiyasHelp, Category: "accounts", Name: "Asiya’s Help",
				Desc: "Reduces clicks needed to develop a lead.",
				Cost: 3, CostMultiplier: 5,
				Effect: Effect{Kind: EffectReduceDevelopClicks},
				Seed:   State{ClicksReduction: 15},
			},
			{
				Key: KeySecondMonitor, Category: "accounts", Name: "2nd Monitor",
				Desc: "Each manual click on \"Develop Lead\" counts as two.",
				Cost: 10, OneTime: true,
				Effect: Effect{Kind: EffectPurchase},
			},
			{
				Key: KeyNewAdNetworks, Category: "accounts", Name: "New Ad Networks",
				Desc: "Each developed lead earns more.",
				Cost: 10, CostMultiplier: 2,
				Effect: Effect{Kind: EffectAddIncomePerLead},
				Seed:   State{IncomeBonus: 0.01},
			},
			{
				Key: KeyBackgroundMusic, Category: "accounts", Name: "Background Music",
				Desc: "+1 click/sec to each Accounts staff per level.",
				Cost: 80, CostMultiplier: 15,
				Effect: Effect{Kind: EffectLevel},
			},
			{
				Key: KeyCPMOptimization, Category: "accounts", Name: "CPM Optimization",
				Desc: "Chance to double money from a lead.",
				Cost: 500, CostMultiplier: 3,
				Effect: Effect{Kind: EffectAddChance, Amount: 0.2, Cap: 1},
			},
		},
	},
	{
		Key:  "global",
		Name: "Global Upgrades",
		Upgrades: []Def{
			{
				Key: KeyNYTPuzzles, Category: "global", Name: "NYT Puzzles",
				Desc: "Boosts Sales/Account upgrade effectiveness by x1.5.",
				Cost: 15, OneTime: true,
				Effect: Effect{Kind: EffectTuningBoost, Amount: 1.5},
			},
			{
				Key: KeyCorporateCulture, Category: "global", Name: "Corporate Culture",
				Desc: "All manual clicks count as two.",
				Cost: 50, OneTime: true,
				Effect: Effect{Kind: EffectPurchase},
			},
			{
				Key: KeySYCGlobal, Category: "global", Name: "СУЦ",
				Desc: "All income from developing leads is increased by 20%.",
				Cost: 250, OneTime: true,
				Effect:           Effect{Kind: EffectPurchase},
				IncomeMultiplier: 1.2,
			},
			{
				Key: KeyAmirsAutomation, Category: "global", Name: "Amir’s Automation",
				Desc: "Automated staff work twice as fast.",
				Cost: 5000, OneTime: true,
				Effect: Effect{Kind: EffectPurchase},
			},
			{
				Key: KeyCoffeeMachine, Category: "global", Name: "Coffee Machine",
				Desc: "Allows holding down the mouse button to click rapidly.",
				Cost: 100, OneTime: true,
				Effect: Effect{Kind: EffectPurchase},
			},
		},
	},
}

func Catalog() []Category { return catalog }

func Find(key string) (Def, bool) {
	for _, cat := range catalog {
		for _, def := range cat.Upgrades {
			if def.Key == key {
				return def, true
			}
		}
	}
	return Def{}, false
}

// FindIn resolves a key within a specific category, the shape purchase
// requests arrive in.
func FindIn(category, key string) (Def, bool) {
	for _, cat := range catalog {
		if cat.Key != category {
			continue
		}
		for _, def := range cat.Upgrades {
			if def.Key == key {
				return def, true
			}
		}
	}
	return Def{}, false
}

// GlobalOneTimeKeys lists the purchase-completeness set used by the
// peakEfficiency achievement.
func GlobalOneTimeKeys() []string {
	keys := []string{}
	for _, cat := range catalog {
		if cat.Key != "global" {
			continue
		}
		for _, def := range cat.Upgrades {
			if def.OneTime {
				keys = append(keys, def.Key)
			}
		}
	}
	return keys
}

// InitialState builds the default state for one definition: one-time
// upgrades start unpurchased, leveled upgrades start at level 0 with the
// base cost and seeded tuning fields.
func InitialState(def Def) *State {
	if def.OneTime {
		return &State{}
	}
	st := def.Seed
	st.Cost = def.Cost
	return &st
}

// InitialStates builds the default state map for the full catalog.
func InitialStates() map[string]*State {
	states := map[string]*State{}
	for _, cat := range catalog {
		for _, def := range cat.Upgrades {
			states[def.Key] = InitialState(def)
		}
	}
	return states
}

// CurrentCost is the fixed cost for one-time upgrades and the escalated
// per-level cost otherwise.
func CurrentCost(def Def, st *State) float64 {
	if def.OneTime {
		return def.Cost
	}
	return st.Cost
}

// Maxed reports whether further purchases would be no-ops: asiyasHelp once
// the develop threshold hits its floor, cpmOptimization once the double
// chance is certain.
func Maxed(def Def, st *State, clicksToDevelop int) bool {
	switch def.Key {
	case KeyAsiyasHelp:
		return clicksToDevelop <= 10
	case KeyCPMOptimization:
		return st.Chance >= 1
	}
	if def.OneTime {
		return st.Purchased
	}
	return false
}

// Visible hides cpmOptimization until Amir joins Accounts.
func Visible(def Def, hired map[string]bool) bool {
	if def.Key == KeyCPMOptimization {
		return hired["Amir"]
	}
	return true
}
