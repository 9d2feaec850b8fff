package utils

import "testing"

func TestAddDays(t *testing.T) {
	tests := []struct {
		name string
		day  string
		n    int
		want string
	}{
		{"forward", "2024-03-01", 3, "2024-03-04"},
		{"backward", "2024-03-01", -1, "2024-02-29"},
		{"zero", "2024-03-01", 0, "2024-03-01"},
		{"across year", "2023-12-30", 5, "2024-01-04"},
		{"across month backward", "2024-05-01", -1, "2024-04-30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AddDays(tt.day, tt.n); got != tt.want {
				t.Errorf("AddDays(%s, %d) = %s, want %s", tt.day, tt.n, got, tt.want)
			}
		})
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"same day", "2024-01-10", "2024-01-10", 0},
		{"one apart", "2024-01-10", "2024-01-11", 1},
		{"reversed", "2024-01-11", "2024-01-10", -1},
		{"leap february", "2024-02-01", "2024-03-01", 29},
		{"full year", "2024-01-01", "2025-01-01", 366},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(tt.a, tt.b); got != tt.want {
				t.Errorf("DaysBetween(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestValidDay(t *testing.T) {
	valid := []string{"2024-01-01", "1999-12-31", "2024-02-29"}
	for _, day := range valid {
		if !ValidDay(day) {
			t.Errorf("ValidDay(%s) = false, want true", day)
		}
	}

	invalid := []string{"", "2024-1-1", "01-01-2024", "2024/01/01", "2023-02-29", "not-a-date"}
	for _, day := range invalid {
		if ValidDay(day) {
			t.Errorf("ValidDay(%s) = true, want false", day)
		}
	}
}

func TestMaxDay(t *testing.T) {
	if got := MaxDay("2024-01-05", "2024-01-10"); got != "2024-01-10" {
		t.Errorf("MaxDay = %s, want 2024-01-10", got)
	}
	if got := MaxDay("2024-02-01", "2023-12-31"); got != "2024-02-01" {
		t.Errorf("MaxDay = %s, want 2024-02-01", got)
	}
}

func TestToday(t *testing.T) {
	day, err := Today("Local")
	if err != nil {
		t.Fatalf("Today(Local) returned error: %v", err)
	}
	if !ValidDay(day) {
		t.Errorf("Today(Local) = %q, not a valid day string", day)
	}

	if _, err := Today("Not/AZone"); err == nil {
		t.Error("Today with invalid timezone should return an error")
	}
}

func TestValidateTimezone(t *testing.T) {
	for _, tz := range []string{"", "Local", "UTC", "America/New_York"} {
		if !ValidateTimezone(tz) {
			t.Errorf("ValidateTimezone(%q) = false, want true", tz)
		}
	}
	if ValidateTimezone("Invalid/Zone") {
		t.Error("ValidateTimezone(Invalid/Zone) = true, want false")
	}
}
