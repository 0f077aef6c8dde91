package timezone

import (
	"regexp"
	"testing"
)

func TestIsValid(t *testing.T) {
	if !IsValid("America/Sao_Paulo") {
		t.Fatal("America/Sao_Paulo should be valid")
	}
	if IsValid("") || IsValid("Mars/Olympus") {
		t.Fatal("invalid timezones accepted")
	}
}

func TestLocationFallsBackToDefault(t *testing.T) {
	if got := Location("Not/AZone").String(); got != DefaultTimezone {
		t.Fatalf("want fallback to %s, got %s", DefaultTimezone, got)
	}
	if got := Location("UTC").String(); got != "UTC" {
		t.Fatalf("valid timezone ignored, got %s", got)
	}
}

func TestTodayFormat(t *testing.T) {
	re := regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	if got := Today("UTC"); !re.MatchString(got) {
		t.Fatalf("Today must be YYYY-MM-DD, got %q", got)
	}
}
