package event

// Type classifies an event for selection gating and presentation.
type Type string

const (
	TypeGood   Type = "good"
	TypeBad    Type = "bad"
	TypeChoice Type = "choice"
)

// EffectKind tags an event side effect. Like upgrade effects these are data
// interpreted by the engine; the catalog holds no behavior.
type EffectKind string

const (
	// EffectAddIncomePerLead adds Amount (possibly negative) to the base
	// income per lead.
	EffectAddIncomePerLead EffectKind = "add_income_per_lead"
	// EffectScaleIncomePerLead multiplies the base income per lead by
	// Amount. Start/end pairs use reciprocal factors so the end restores the
	// start exactly.
	EffectScaleIncomePerLead EffectKind = "scale_income_per_lead"
	// EffectGainBalancePct credits Amount (fraction) of the current balance.
	EffectGainBalancePct EffectKind = "gain_balance_pct"
	// EffectLoseBalancePct debits Amount (fraction) of the current balance.
	// Percentage deductions can never drive the balance negative.
	EffectLoseBalancePct EffectKind = "lose_balance_pct"
	// EffectStartEvent activates another catalog event by key.
	EffectStartEvent EffectKind = "start_event"
	// EffectPayOrStart debits Amount if affordable, otherwise starts the
	// event named by Key.
	EffectPayOrStart EffectKind = "pay_or_start"
	// EffectMarkWaitedOut records that the player waited out the server
	// crash instead of paying.
	EffectMarkWaitedOut EffectKind = "mark_waited_out"
	// EffectHaltDevelopment and EffectResumeDevelopment flip the
	// lead-development halt flag for the penalty window.
	EffectHaltDevelopment   EffectKind = "halt_development"
	EffectResumeDevelopment EffectKind = "resume_development"
)

type Effect struct {
	Kind   EffectKind `json:"kind"`
	Amount float64    `json:"amount,omitempty"`
	Key    string     `json:"key,omitempty"`
}

type Choice struct {
	Text    string   `json:"text"`
	Effects []Effect `json:"effects"`
}

type Def struct {
	Key        string   `json:"key"`
	Title      string   `json:"title"`
	Desc       string   `json:"desc"`
	EffectText string   `json:"effectText"`
	Duration   int      `json:"duration"` // seconds; 0 means instantaneous
	Type       Type     `json:"type"`
	OnStart    []Effect `json:"onStart,omitempty"`
	OnEnd      []Effect `json:"onEnd,omitempty"`
	Choices    []Choice `json:"choices,omitempty"`
}

// Keys the engine's rate math inspects directly. These events act through
// derived-rate factors rather than state mutation, so they carry no
// start/end effects.
const (
	KeyViralMarketing        = "viralMarketing"
	KeyBullMarket            = "bullMarket"
	KeyProductivityGuru      = "productivityGuru"
	KeyTeamBurnout           = "teamBurnout"
	KeyNegativePR            = "negativePR"
	KeyAdNetworkOutage       = "adNetworkOutage"
	KeyServerCrash           = "serverCrash"
	KeyServerCrashPenalty    = "serverCrashPenalty"
	KeyAccountRevitalization = "accountRevitalization"
)

var catalog = []Def{
	{
		Key: KeyViralMarketing, Title: "Viral Marketing Campaign",
		Desc:       "The latest email campaign went viral on social media! The leads are pouring in.",
		EffectText: "For the next 60 seconds, every lead generation action produces 5x the normal amount of leads.",
		Duration:   60, Type: TypeGood,
	},
	{
		Key: KeyBullMarket, Title: "Bull Market",
		Desc:       "The market is hot! Advertisers are paying a premium for ad space.",
		EffectText: "All income from developing leads is doubled for the next 90 seconds.",
		Duration:   90, Type: TypeGood,
	},
	{
		Key: KeyProductivityGuru, Title: "Productivity Guru Visits",
		Desc:       "A famous инфоцыган visited the office and motivated the team!",
		EffectText: "All staff members work 50% faster for the next 3 minutes.",
		Duration:   180, Type: TypeGood,
	},
	{
		Key: "foundInvoice", Title: "Found an Old Invoice",
		Desc:       "While cleaning out a filing cabinet, someone found an old, unpaid invoice from a client.",
		EffectText: "Instantly gain a lump sum of money equal to 10% of your current balance.",
		Duration:   0, Type: TypeGood,
		OnStart: []Effect{{Kind: EffectGainBalancePct, Amount: 0.10}},
	},
	{
		Key: "abTest", Title: "Successful A/B Test",
		Desc:       "An A/B test on a new ad format is a huge success!",
		EffectText: "The base income per lead is temporarily increased by +$0.50 for the next 2 minutes.",
		Duration:   120, Type: TypeGood,
		OnStart: []Effect{{Kind: EffectAddIncomePerLead, Amount: 0.5}},
		OnEnd:   []Effect{{Kind: EffectAddIncomePerLead, Amount: -0.5}},
	},
	{
		Key: KeyServerCrash, Title: "Server Crash!",
		Desc: "Oh no! Reports has crashed, halting all operations.",
		Type: TypeChoice,
		Choices: []Choice{
			{Text: "Pay $500", Effects: []Effect{{Kind: EffectPayOrStart, Amount: 500, Key: KeyServerCrashPenalty}}},
			{Text: "Wait 60s", Effects: []Effect{
				{Kind: EffectStartEvent, Key: KeyServerCrashPenalty},
				{Kind: EffectMarkWaitedOut},
			}},
		},
	},
	{
		Key: KeyServerCrashPenalty, Title: "Server Down",
		EffectText: "All income and lead development is halted.",
		Duration:   60, Type: TypeBad,
		OnStart: []Effect{{Kind: EffectHaltDevelopment}},
		OnEnd:   []Effect{{Kind: EffectResumeDevelopment}},
	},
	{
		Key: KeyAdNetworkOutage, Title: "Ad Network Outage",
		Desc:       "One of your biggest ad networks is experiencing a global outage.",
		EffectText: "The money earned per lead is halved for the next 90 seconds.",
		Duration:   90, Type: TypeBad,
		OnStart: []Effect{{Kind: EffectScaleIncomePerLead, Amount: 0.5}},
		OnEnd:   []Effect{{Kind: EffectScaleIncomePerLead, Amount: 2}},
	},
	{
		Key: KeyTeamBurnout, Title: "Team Burnout",
		Desc:       "The team is feeling overworked and exhausted after a long week.",
		EffectText: "All staff members work 25% slower for the next 3 minutes.",
		Duration:   180, Type: TypeBad,
	},
	{
		Key: "officeExpense", Title: "Unexpected Office Expense",
		Desc:       "The water cooler broke down and needs an immediate, expensive repair!",
		EffectText: "Instantly lose 5% of your current money.",
		Duration:   0, Type: TypeBad,
		OnStart: []Effect{{Kind: EffectLoseBalancePct, Amount: 0.05}},
	},
	{
		Key: KeyNegativePR, Title: "Negative PR",
		Desc:       "A competitor published a negative article about your company, hurting your reputation.",
		EffectText: "Your chance to generate a lead is reduced by 50% for the next 2 minutes.",
		Duration:   120, Type: TypeBad,
	},
}

func Catalog() []Def { return catalog }

func Find(key string) (Def, bool) {
	for _, def := range catalog {
		if def.Key == key {
			return def, true
		}
	}
	return Def{}, false
}
