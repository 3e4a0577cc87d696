package domain

import (
	"errors"
	"testing"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
		err  bool
	}{
		{"ADMIN", RoleAdmin, false},
		{"CAPITAN", RoleCapitan, false},
		{"ESTUDIANTE", RoleEstudiante, false},
		{"admin", "", true},
		{"PROFESOR", "", true},
		{"", "", true},
	}
	for _, tc := range tests {
		got, err := ParseRole(tc.in)
		if tc.err {
			if !errors.Is(err, ErrInvalidRole) {
				t.Errorf("ParseRole(%q): got err %v, want ErrInvalidRole", tc.in, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("ParseRole(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
		}
	}
}
