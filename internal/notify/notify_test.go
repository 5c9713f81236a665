package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySink_PublishAndDrain(t *testing.T) {
	s := NewMemorySink(10)
	s.Publish(KindAchievementUnlocked, "Mukhtar is satisfied", "Earn $50 total.", nil)
	s.Publish(KindStaffWorked, "", "", map[string]any{"name": "Artyom"})

	all := s.Since(0)
	require.Len(t, all, 2)
	assert.Equal(t, KindAchievementUnlocked, all[0].Kind)
	assert.Equal(t, 1, all[0].ID)

	rest := s.Since(all[0].ID)
	require.Len(t, rest, 1)
	assert.Equal(t, KindStaffWorked, rest[0].Kind)
}

func TestMemorySink_LimitKeepsNewest(t *testing.T) {
	s := NewMemorySink(3)
	for i := 0; i < 5; i++ {
		s.Publish(KindSaved, "", "", nil)
	}
	all := s.Since(0)
	require.Len(t, all, 3)
	assert.Equal(t, 3, all[0].ID)
	assert.Equal(t, 5, all[2].ID)
}

func TestPublish_NilNotifierIsSafe(t *testing.T) {
	assert.NotPanics(t, func() {
		Publish(nil, KindSaved, "", "", nil)
	})
}
