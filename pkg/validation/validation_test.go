package validation

import "testing"

func TestValidateZipCode(t *testing.T) {
	v, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	tests := []struct {
		zip   string
		valid bool
	}{
		{"94105", true},
		{"94105-1234", true},
		{"9410", false},
		{"941051", false},
		{"94105-12", false},
		{"abcde", false},
		{"", false},
	}

	for _, tt := range tests {
		err := v.Var(tt.zip, "zipcode")
		if (err == nil) != tt.valid {
			t.Errorf("zipcode %q: expected valid=%v, got err=%v", tt.zip, tt.valid, err)
		}
	}
}

func TestValidatePasswordStrength(t *testing.T) {
	v, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	tests := []struct {
		password string
		valid    bool
	}{
		{"Passw0rd", true},
		{"aB3", true},
		{"password1", false},
		{"PASSWORD1", false},
		{"Password", false},
		{"", false},
	}

	for _, tt := range tests {
		err := v.Var(tt.password, "password_strength")
		if (err == nil) != tt.valid {
			t.Errorf("password %q: expected valid=%v, got err=%v", tt.password, tt.valid, err)
		}
	}
}

func TestValidateAppointmentTime(t *testing.T) {
	v, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	tests := []struct {
		value string
		valid bool
	}{
		{"00:00", true},
		{"09:30", true},
		{"23:59", true},
		{"24:00", false},
		{"9:30", false},
		{"12:60", false},
		{"noon", false},
		{"", false},
	}

	for _, tt := range tests {
		err := v.Var(tt.value, "appointment_time")
		if (err == nil) != tt.valid {
			t.Errorf("time %q: expected valid=%v, got err=%v", tt.value, tt.valid, err)
		}
	}
}
