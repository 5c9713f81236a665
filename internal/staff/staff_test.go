package staff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepartmentOf(t *testing.T) {
	d, ok := DepartmentOf("Artyom")
	require.True(t, ok)
	assert.Equal(t, Sales, d)

	d, ok = DepartmentOf("Azret")
	require.True(t, ok)
	assert.Equal(t, Accounts, d)

	d, ok = DepartmentOf("Emil")
	require.True(t, ok)
	assert.Equal(t, Products, d)

	_, ok = DepartmentOf("Nobody")
	assert.False(t, ok)
}

func TestUnlockChain_BootstrapOrder(t *testing.T) {
	hired := map[string]bool{}

	assert.True(t, Unlocked("Azret", hired))
	assert.False(t, Unlocked("Artyom", hired))
	assert.False(t, Unlocked("Asiya", hired))
	assert.False(t, Unlocked("Emil", hired))
	assert.False(t, Unlocked("Madi", hired))

	hired["Azret"] = true
	assert.True(t, Unlocked("Artyom", hired))
	assert.False(t, Unlocked("Asiya", hired))

	hired["Artyom"] = true
	assert.True(t, Unlocked("Asiya", hired))
	assert.False(t, Unlocked("Emil", hired))
	assert.False(t, Unlocked("Saniya", hired))

	hired["Asiya"] = true
	assert.True(t, Unlocked("Emil", hired))
	// Once Asiya is in, the whole remaining roster opens up.
	for _, def := range Departments() {
		for _, name := range def.Members {
			assert.True(t, Unlocked(name, hired), "expected %s unlocked", name)
		}
	}
}

func TestCountAndComplete(t *testing.T) {
	hired := map[string]bool{"Artyom": true, "Alan": true, "Azret": true}
	assert.Equal(t, 2, Count(Sales, hired))
	assert.Equal(t, 1, Count(Accounts, hired))
	assert.Equal(t, 0, Count(Products, hired))
	assert.False(t, Complete(Sales, hired))

	def, ok := Get(Products)
	require.True(t, ok)
	for _, m := range def.Members {
		hired[m] = true
	}
	assert.True(t, Complete(Products, hired))
}

func TestTotalMembers(t *testing.T) {
	assert.Equal(t, 22, TotalMembers())
}
