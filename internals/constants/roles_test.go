package constants

import "testing"

func TestRolePriorityOrdering(t *testing.T) {
	if !(RolePriority(RoleAdmin) > RolePriority(RoleModerator)) {
		t.Error("admin must outrank moderator")
	}
	if !(RolePriority(RoleModerator) > RolePriority(RoleUser)) {
		t.Error("moderator must outrank user")
	}
	if RolePriority("unknown") != 0 {
		t.Error("unknown roles must rank lowest")
	}
}
