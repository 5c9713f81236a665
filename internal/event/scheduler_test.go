package event

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSlot() *SlotState {
	return &SlotState{Cooldown: DefaultCooldown}
}

func TestTick_CooldownOnlyWithStaff(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s := newSlot()

	Tick(s, rng, 0)
	assert.Equal(t, DefaultCooldown, s.Cooldown, "cooldown must not move without staff")

	Tick(s, rng, 1)
	assert.Equal(t, DefaultCooldown-1, s.Cooldown)
}

func TestTick_SelectsOnExpiry(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s := newSlot()
	s.Cooldown = 1

	out := Tick(s, rng, 1)
	require.NotNil(t, out.Offered)
	assert.Equal(t, out.Offered.Key, s.Pending)
	assert.Nil(t, s.Active)

	// While an offer is outstanding nothing else is selected.
	out = Tick(s, rng, 1)
	assert.Nil(t, out.Offered)
	assert.Nil(t, out.Ended)
}

func TestTick_BadEventsGatedBehindStaffCount(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		s := newSlot()
		s.Cooldown = 1
		out := Tick(s, rng, BadEventStaffGate)
		require.NotNil(t, out.Offered)
		assert.NotEqual(t, TypeBad, out.Offered.Type,
			"bad event %s offered with only %d staff", out.Offered.Key, BadEventStaffGate)
	}
}

func TestAcknowledge_DurationEventActivates(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	s := newSlot()
	s.Pending = "abTest"

	def, effects, err := Acknowledge(s, rng)
	require.NoError(t, err)
	assert.Equal(t, "abTest", def.Key)
	require.NotNil(t, s.Active)
	assert.Equal(t, 120, s.Active.TimeLeft)
	require.Len(t, effects, 1)
	assert.Equal(t, EffectAddIncomePerLead, effects[0].Kind)
	assert.Equal(t, 0.5, effects[0].Amount)
}

func TestAcknowledge_InstantEventResetsCooldown(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	s := newSlot()
	s.Pending = "foundInvoice"
	s.Cooldown = 0

	_, effects, err := Acknowledge(s, rng)
	require.NoError(t, err)
	assert.Nil(t, s.Active)
	assert.GreaterOrEqual(t, s.Cooldown, CooldownMin)
	assert.Less(t, s.Cooldown, CooldownMax)
	require.Len(t, effects, 1)
	assert.Equal(t, EffectGainBalancePct, effects[0].Kind)
}

func TestTick_ActiveCountsDownAndEndsOnce(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	s := newSlot()
	s.Active = &Active{Key: "abTest", TimeLeft: 3}

	out := Tick(s, rng, 5)
	assert.Nil(t, out.Ended)
	assert.Equal(t, 2, s.Active.TimeLeft)

	Tick(s, rng, 5)
	out = Tick(s, rng, 5)
	require.NotNil(t, out.Ended)
	assert.Equal(t, "abTest", out.Ended.Key)
	assert.Nil(t, s.Active)
	assert.GreaterOrEqual(t, s.Cooldown, CooldownMin)
	assert.Less(t, s.Cooldown, CooldownMax)
}

func TestChoose_ServerCrash(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	s := newSlot()
	s.Pending = KeyServerCrash

	_, effects, err := Choose(s, rng, 1)
	require.NoError(t, err)
	require.Len(t, effects, 2)
	assert.Equal(t, EffectStartEvent, effects[0].Kind)
	assert.Equal(t, KeyServerCrashPenalty, effects[0].Key)
	assert.Equal(t, EffectMarkWaitedOut, effects[1].Kind)
	assert.Empty(t, s.Pending)

	s.Pending = KeyServerCrash
	_, effects, err = Choose(s, rng, 0)
	require.NoError(t, err)
	require.Len(t, effects, 1)
	assert.Equal(t, EffectPayOrStart, effects[0].Kind)
	assert.Equal(t, 500.0, effects[0].Amount)

	s.Pending = KeyServerCrash
	_, _, err = Choose(s, rng, 5)
	assert.ErrorIs(t, err, ErrBadChoice)
}

func TestChoose_RejectsNonChoice(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	s := newSlot()
	s.Pending = "bullMarket"

	_, _, err := Choose(s, rng, 0)
	assert.ErrorIs(t, err, ErrNotChoiceEvent)

	s.Pending = ""
	_, _, err = Choose(s, rng, 0)
	assert.ErrorIs(t, err, ErrNoPendingEvent)
}

func TestStart_PenaltyOccupiesSlot(t *testing.T) {
	s := newSlot()
	def, effects, ok := Start(s, KeyServerCrashPenalty)
	require.True(t, ok)
	assert.Equal(t, 60, def.Duration)
	require.NotNil(t, s.Active)
	assert.Equal(t, KeyServerCrashPenalty, s.Active.Key)
	require.Len(t, effects, 1)
	assert.Equal(t, EffectHaltDevelopment, effects[0].Kind)
}
