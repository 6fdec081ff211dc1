package fsm

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from string
		to   string
		want bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusPending, StatusAwaitingHomeowner, false},
		{StatusConfirmed, StatusAwaitingHomeowner, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusCompleted, false},
		{StatusAwaitingHomeowner, StatusCompleted, true},
		{StatusAwaitingHomeowner, StatusCancelled, false},
		{StatusCompleted, StatusPending, false},
		{StatusCancelled, StatusPending, false},
		{StatusPending, StatusPending, false},
		{StatusConfirmed, StatusConfirmed, false},
		{"unknown", StatusConfirmed, false},
		{StatusPending, "unknown", false},
	}
	for _, c := range cases {
		if got := CanTransition(c.from, c.to); got != c.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	for _, s := range []string{StatusCompleted, StatusCancelled} {
		if !IsTerminal(s) {
			t.Errorf("IsTerminal(%q) = false, want true", s)
		}
	}
	for _, s := range []string{StatusPending, StatusConfirmed, StatusAwaitingHomeowner, "unknown"} {
		if IsTerminal(s) {
			t.Errorf("IsTerminal(%q) = true, want false", s)
		}
	}
}

func TestSuspensionCancels(t *testing.T) {
	for _, s := range []string{StatusPending, StatusConfirmed} {
		if !SuspensionCancels(s) {
			t.Errorf("SuspensionCancels(%q) = false, want true", s)
		}
	}
	for _, s := range []string{StatusAwaitingHomeowner, StatusCompleted, StatusCancelled, "unknown"} {
		if SuspensionCancels(s) {
			t.Errorf("SuspensionCancels(%q) = true, want false", s)
		}
	}
}

func TestIsValid(t *testing.T) {
	for _, s := range []string{StatusPending, StatusConfirmed, StatusAwaitingHomeowner, StatusCompleted, StatusCancelled} {
		if !IsValid(s) {
			t.Errorf("IsValid(%q) = false, want true", s)
		}
	}
	if IsValid("in_progress") {
		t.Error(`IsValid("in_progress") = true, want false`)
	}
}
