package auth

import (
	"fmt"
	"strings"
)

// Role is the closed set of user roles. Any behavior depending on a role
// goes through Can, never through comparing role names.
type Role int

const (
	RoleUnknown Role = iota
	RoleAdmin
	RoleGymOwner
	RoleMember
)

type Capability int

const (
	CapViewLeaderboard Capability = iota + 1
	CapViewAnalytics
	CapCheckIn
	CapBackfillAttendance
	CapViewOwnStreak
	CapRecommend
	CapGenerateRoutine
	CapRebuildStreaks
)

var capabilities = map[Role]map[Capability]bool{
	RoleAdmin: {
		CapViewLeaderboard:    true,
		CapViewAnalytics:      true,
		CapBackfillAttendance: true,
		CapRecommend:          true,
		CapGenerateRoutine:    true,
		CapRebuildStreaks:     true,
	},
	RoleGymOwner: {
		CapViewLeaderboard:    true,
		CapViewAnalytics:      true,
		CapBackfillAttendance: true,
		CapRecommend:          true,
	},
	RoleMember: {
		CapViewLeaderboard: true,
		CapCheckIn:         true,
		CapViewOwnStreak:   true,
		CapRecommend:       true,
		CapGenerateRoutine: true,
	},
}

func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin, nil
	case "gym_owner":
		return RoleGymOwner, nil
	case "member":
		return RoleMember, nil
	default:
		return RoleUnknown, fmt.Errorf("unknown role: %q", s)
	}
}

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleGymOwner:
		return "gym_owner"
	case RoleMember:
		return "member"
	default:
		return "unknown"
	}
}

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleGymOwner || r == RoleMember
}

func (r Role) Can(c Capability) bool {
	return capabilities[r][c]
}

func (r Role) MarshalText() ([]byte, error) {
	if !r.IsValid() {
		return nil, fmt.Errorf("invalid role: %d", int(r))
	}
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(text []byte) error {
	role, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = role
	return nil
}
