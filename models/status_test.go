package models

import "testing"

func TestStatusCodes(t *testing.T) {
	// persisted wire contract
	if StatusPending != 1 || StatusAccepted != 2 || StatusPreparing != 3 || StatusDelivering != 4 || StatusCompleted != 5 {
		t.Fatal("status codes renumbered")
	}
}

func TestStatusName(t *testing.T) {
	cases := map[int]string{
		1: "pending",
		2: "accepted",
		3: "preparing",
		4: "delivering",
		5: "completed",
		0: "unknown",
		6: "unknown",
	}
	for code, want := range cases {
		if got := StatusName(code); got != want {
			t.Errorf("StatusName(%d) = %q, want %q", code, got, want)
		}
	}
}

func TestStatusFromName(t *testing.T) {
	if got := StatusFromName("Delivering"); got != StatusDelivering {
		t.Errorf("StatusFromName(Delivering) = %d", got)
	}
	if got := StatusFromName(" completed "); got != StatusCompleted {
		t.Errorf("StatusFromName with padding = %d", got)
	}
	if got := StatusFromName("cancelled"); got != 0 {
		t.Errorf("StatusFromName(cancelled) = %d, want 0", got)
	}
}

func TestCanAdvance(t *testing.T) {
	for current := StatusPending; current < StatusCompleted; current++ {
		if !CanAdvance(current, current+1) {
			t.Errorf("CanAdvance(%d, %d) = false", current, current+1)
		}
	}

	denied := [][2]int{
		{StatusPending, StatusPreparing},   // skip
		{StatusAccepted, StatusPending},    // backwards
		{StatusCompleted, StatusCompleted}, // terminal
		{StatusCompleted, 6},               // off the end
		{0, StatusPending},                 // unknown current
	}
	for _, d := range denied {
		if CanAdvance(d[0], d[1]) {
			t.Errorf("CanAdvance(%d, %d) = true", d[0], d[1])
		}
	}
}
