package models

import "strings"

// Order status codes. The integer values are a persisted wire contract and
// must never be renumbered.
const (
	StatusPending    = 1
	StatusAccepted   = 2
	StatusPreparing  = 3
	StatusDelivering = 4
	StatusCompleted  = 5
)

var statusNames = map[int]string{
	StatusPending:    "pending",
	StatusAccepted:   "accepted",
	StatusPreparing:  "preparing",
	StatusDelivering: "delivering",
	StatusCompleted:  "completed",
}

func StatusName(code int) string {
	if name, ok := statusNames[code]; ok {
		return name
	}
	return "unknown"
}

// StatusFromName maps a status name to its code. Returns 0 when the name is
// not part of the lifecycle (e.g. the dead "cancelled" filter label).
func StatusFromName(name string) int {
	for code, n := range statusNames {
		if n == strings.ToLower(strings.TrimSpace(name)) {
			return code
		}
	}
	return 0
}

func ValidStatus(code int) bool {
	_, ok := statusNames[code]
	return ok
}

// CanAdvance reports whether an order may move from one status to the next.
// The lifecycle is strictly linear: each step must be exactly the successor
// of the current status, and completed is terminal.
func CanAdvance(current, next int) bool {
	if !ValidStatus(current) || !ValidStatus(next) {
		return false
	}
	return next == current+1
}
