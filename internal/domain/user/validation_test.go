package user

import "testing"

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  bool
	}{
		{"empty", "", false},
		{"whitespace only", "   ", false},
		{"missing at sign", "test.test.com", false},
		{"missing local part", "@test.com", false},
		{"missing domain", "test@", false},
		{"plain address", "test@test.com", true},
		{"dotless domain accepted", "test@localhost", true},
		{"plus and dots in local part", "first.last+tag@example.org", true},
		{"digits and hyphens", "user-42@mail-server.io", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateEmail(tt.email); got != tt.want {
				t.Errorf("ValidateEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

func TestValidateAge(t *testing.T) {
	tests := []struct {
		age  int
		want bool
	}{
		{-1, false},
		{0, true},
		{20, true},
		{80, true},
		{81, false},
	}

	for _, tt := range tests {
		if got := ValidateAge(tt.age); got != tt.want {
			t.Errorf("ValidateAge(%d) = %v, want %v", tt.age, got, tt.want)
		}
	}
}
