package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleOrdering(t *testing.T) {
	roles := Roles()
	for i := 1; i < len(roles); i++ {
		assert.Greater(t, roles[i].Rank(), roles[i-1].Rank())
		assert.True(t, roles[i].AtLeast(roles[i-1]))
		assert.False(t, roles[i-1].AtLeast(roles[i]))
	}
	assert.False(t, Role("owner").AtLeast(RoleUser))
	assert.Equal(t, 0, Role("").Rank())
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole(" Admin ")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, r)

	_, err = ParseRole("owner")
	assert.Error(t, err)
}

func TestRequestable(t *testing.T) {
	assert.True(t, RoleBroker.Requestable())
	assert.True(t, RoleAdmin.Requestable())
	assert.False(t, RoleUser.Requestable())
	assert.False(t, RoleSuperAdmin.Requestable())
}

func TestHasCompleteProfile(t *testing.T) {
	assert.True(t, (&User{Name: "Asha", Mobile: "9876543210"}).HasCompleteProfile())
	assert.False(t, (&User{Name: "Asha"}).HasCompleteProfile())
	assert.False(t, (&User{Name: "  ", Mobile: "9876543210"}).HasCompleteProfile())
}

func TestStoredDateJSON(t *testing.T) {
	day := StoredDate{Time: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), FromString: true}
	b, err := json.Marshal(day)
	require.NoError(t, err)
	assert.JSONEq(t, `"2026-03-10"`, string(b))

	var back StoredDate
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, day, back)

	ts := StoredDate{Time: time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)}
	b, err = json.Marshal(ts)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, &back))
	assert.False(t, back.FromString)
	assert.True(t, ts.Time.Equal(back.Time))

	b, err = json.Marshal(StoredDate{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))
}
