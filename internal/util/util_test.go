package util

import (
	"testing"
	"time"
)

func TestPickRandomCoversAllItems(t *testing.T) {
	items := []string{"a", "b", "c"}
	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		seen[PickRandom(items)] = true
	}
	if len(seen) != len(items) {
		t.Errorf("expected all %d items to appear, saw %d", len(items), len(seen))
	}
}

func TestUpcomingWeekday(t *testing.T) {
	// 2026-08-29 is a Saturday, so two days out is Monday.
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	code, name := UpcomingWeekday(now)
	if code != "MO" || name != "Monday" {
		t.Errorf("got (%q, %q), want (MO, Monday)", code, name)
	}
}

func TestFullDayName(t *testing.T) {
	if got := FullDayName("TH"); got != "Thursday" {
		t.Errorf("FullDayName(TH) = %q", got)
	}
	if got := FullDayName("??"); got != "??" {
		t.Errorf("unknown code should pass through, got %q", got)
	}
}

func TestParseBoolEnv(t *testing.T) {
	t.Setenv("DP_TEST_BOOL", "yes")
	if !ParseBoolEnv("DP_TEST_BOOL", false) {
		t.Error("yes should parse as true")
	}
	t.Setenv("DP_TEST_BOOL", "garbage")
	if ParseBoolEnv("DP_TEST_BOOL", false) {
		t.Error("invalid value should fall back to default")
	}
	if ParseBoolEnv("DP_TEST_BOOL_UNSET", true) != true {
		t.Error("unset should return default")
	}
}
