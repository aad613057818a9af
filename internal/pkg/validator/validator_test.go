package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	date, ok := IsValidDate("2025-03-10")
	if !ok {
		t.Fatal("expected 2025-03-10 to parse")
	}
	if date.Hour() != 0 || date.Location().String() != "UTC" {
		t.Errorf("expected UTC midnight, got %v", date)
	}

	for _, bad := range []string{"2025-13-01", "10-03-2025", "2025-03-10T00:00:00Z", ""} {
		if _, ok := IsValidDate(bad); ok {
			t.Errorf("IsValidDate(%q) = true, want false", bad)
		}
	}
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "a", Message: "is required"},
		{Field: "b", Message: "must be positive"},
	}
	if errs.Error() != "a: is required; b: must be positive" {
		t.Errorf("unexpected message: %s", errs.Error())
	}
	m := errs.ToMap()
	if m["a"] != "is required" || m["b"] != "must be positive" {
		t.Errorf("unexpected map: %v", m)
	}
}
