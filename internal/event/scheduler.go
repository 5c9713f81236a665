package event

import (
	"errors"
	"math/rand"
)

// DefaultCooldown is the first-session cooldown; every later reset draws
// uniformly from [CooldownMin, CooldownMax).
const (
	DefaultCooldown = 180
	CooldownMin     = 180
	CooldownMax     = 300
)

// BadEventStaffGate is the hired-staff count that must be exceeded before
// bad-typed events enter the selection pool.
const BadEventStaffGate = 2

var (
	ErrNoPendingEvent = errors.New("no event awaiting a decision")
	ErrNotChoiceEvent = errors.New("pending event has no choices")
	ErrChoiceRequired = errors.New("pending event requires a choice")
	ErrBadChoice      = errors.New("choice index out of range")
)

// Active marks a duration-bearing event currently in effect.
type Active struct {
	Key      string `json:"key"`
	TimeLeft int    `json:"timeLeft"`
}

// SlotState is the single event slot. It is embedded into the game state so
// the cooldown and active event persist across sessions; the pending offer
// is transient and re-rolled after a restart.
type SlotState struct {
	Active   *Active `json:"activeEvent"`
	Cooldown int     `json:"eventCooldown"`
	Pending  string  `json:"-"`
}

// Outcome reports what one scheduler tick did. At most one of Offered and
// Ended is set.
type Outcome struct {
	// Offered is a newly selected event awaiting acknowledgement or a
	// choice.
	Offered *Def
	// Ended is a duration event whose timer just expired; its OnEnd effects
	// must be applied by the caller.
	Ended *Def
}

// Tick advances the slot by one second. While an event is active its timer
// counts down; otherwise, with at least one staff member hired and no offer
// outstanding, the cooldown counts down and expiry selects the next event.
func Tick(s *SlotState, rng *rand.Rand, staffCount int) Outcome {
	if s.Active != nil {
		s.Active.TimeLeft--
		if s.Active.TimeLeft > 0 {
			return Outcome{}
		}
		key := s.Active.Key
		s.Active = nil
		ResetCooldown(s, rng)
		if def, ok := Find(key); ok {
			return Outcome{Ended: &def}
		}
		return Outcome{}
	}

	if s.Pending != "" || staffCount == 0 {
		return Outcome{}
	}

	s.Cooldown--
	if s.Cooldown > 0 {
		return Outcome{}
	}
	s.Cooldown = 0

	def := pick(rng, staffCount)
	s.Pending = def.Key
	return Outcome{Offered: &def}
}

func pick(rng *rand.Rand, staffCount int) Def {
	pool := make([]Def, 0, len(catalog))
	for _, def := range catalog {
		if def.Type == TypeBad && staffCount <= BadEventStaffGate {
			continue
		}
		pool = append(pool, def)
	}
	return pool[rng.Intn(len(pool))]
}

// Acknowledge resolves a pending non-choice event. The returned effects are
// the event's OnStart batch; for duration events the slot is now active and
// the cooldown stays parked until the event ends, for instantaneous events
// the cooldown resets immediately.
func Acknowledge(s *SlotState, rng *rand.Rand) (Def, []Effect, error) {
	if s.Pending == "" {
		return Def{}, nil, ErrNoPendingEvent
	}
	def, ok := Find(s.Pending)
	if !ok {
		s.Pending = ""
		return Def{}, nil, ErrNoPendingEvent
	}
	if def.Type == TypeChoice {
		return Def{}, nil, ErrChoiceRequired
	}
	s.Pending = ""
	if def.Duration > 0 {
		s.Active = &Active{Key: def.Key, TimeLeft: def.Duration}
	} else {
		ResetCooldown(s, rng)
	}
	return def, def.OnStart, nil
}

// Choose resolves a pending choice event with the selected option. Choice
// events never activate themselves; any follow-up activation happens
// through an EffectStartEvent in the chosen branch, so the cooldown resets
// here and Start re-parks it if a penalty follows.
func Choose(s *SlotState, rng *rand.Rand, choice int) (Def, []Effect, error) {
	if s.Pending == "" {
		return Def{}, nil, ErrNoPendingEvent
	}
	def, ok := Find(s.Pending)
	if !ok {
		s.Pending = ""
		return Def{}, nil, ErrNoPendingEvent
	}
	if def.Type != TypeChoice {
		return Def{}, nil, ErrNotChoiceEvent
	}
	if choice < 0 || choice >= len(def.Choices) {
		return Def{}, nil, ErrBadChoice
	}
	s.Pending = ""
	ResetCooldown(s, rng)
	return def, def.Choices[choice].Effects, nil
}

// Start activates an event by key, bypassing selection. Used for penalty
// events chained from a choice. Instantaneous events return their OnStart
// batch without occupying the slot.
func Start(s *SlotState, key string) (Def, []Effect, bool) {
	def, ok := Find(key)
	if !ok {
		return Def{}, nil, false
	}
	if def.Duration > 0 {
		s.Active = &Active{Key: def.Key, TimeLeft: def.Duration}
	}
	return def, def.OnStart, true
}

// IsActive reports whether the named event currently occupies the slot.
func (s *SlotState) IsActive(key string) bool {
	return s.Active != nil && s.Active.Key == key
}

// ResetCooldown re-arms the slot with a uniform draw from
// [CooldownMin, CooldownMax).
func ResetCooldown(s *SlotState, rng *rand.Rand) {
	s.Cooldown = CooldownMin + rng.Intn(CooldownMax-CooldownMin)
}
