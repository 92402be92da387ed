package rbac

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want Role
	}{
		{"ADMIN", RoleAdmin},
		{"MEMBER", RoleMember},
		{"", RoleMember},
		{"admin", RoleMember},
		{"superuser", RoleMember},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCanManage(t *testing.T) {
	if !CanManage(RoleAdmin, "usr_a", "usr_b") {
		t.Error("admin should manage any resource")
	}
	if !CanManage(RoleMember, "usr_a", "usr_a") {
		t.Error("owner should manage own resource")
	}
	if CanManage(RoleMember, "usr_a", "usr_b") {
		t.Error("member should not manage another user's resource")
	}
	if CanManage(RoleMember, "", "") {
		t.Error("empty caller id must never match")
	}
}
