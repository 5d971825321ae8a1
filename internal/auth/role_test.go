package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for in, expected := range map[string]Role{
		"admin":     RoleAdmin,
		"ADMIN":     RoleAdmin,
		"gym_owner": RoleGymOwner,
		" member ":  RoleMember,
	} {
		role, err := ParseRole(in)
		require.NoError(t, err, in)
		assert.Equal(t, expected, role)
	}

	role, err := ParseRole("trainer")
	require.Error(t, err)
	assert.Equal(t, RoleUnknown, role)
	assert.False(t, role.IsValid())
}

func TestRole_Can(t *testing.T) {
	testCases := []struct {
		role     Role
		cap      Capability
		expected bool
	}{
		{RoleMember, CapCheckIn, true},
		{RoleMember, CapViewAnalytics, false},
		{RoleMember, CapBackfillAttendance, false},
		{RoleMember, CapRebuildStreaks, false},
		{RoleGymOwner, CapViewAnalytics, true},
		{RoleGymOwner, CapCheckIn, false},
		{RoleGymOwner, CapGenerateRoutine, false},
		{RoleAdmin, CapRebuildStreaks, true},
		{RoleAdmin, CapViewLeaderboard, true},
		{RoleUnknown, CapViewLeaderboard, false},
		{RoleUnknown, CapRecommend, false},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, tc.role.Can(tc.cap), "%s / %d", tc.role, tc.cap)
	}
}
