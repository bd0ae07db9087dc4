// Defines the Request record that models a single customer arrival, and the
// minute-resolution simulated clock used throughout the simulator.

package sim

import (
	"fmt"
	"strconv"
	"strings"
)

// Minutes is a simulated timestamp: whole minutes since the simulation's
// time zero (00:00). The clock never tracks wall time.
type Minutes int64

// ParseClock converts an "HH:MM" string into Minutes.
func ParseClock(s string) (Minutes, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("invalid clock value %q: want HH:MM", s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q: %w", s, err)
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock value %q out of range", s)
	}
	return Minutes(h*60 + m), nil
}

// Clock renders the timestamp as "HH:MM". Timestamps past midnight wrap
// around, so a service finishing at 24:05 displays as 00:05.
func (m Minutes) Clock() string {
	return fmt.Sprintf("%02d:%02d", (m/60)%24, m%60)
}

// Request models a single customer's arrival: when they show up, which
// product they want and how much of it. Requests are immutable once parsed;
// each one is either converted into exactly one CompletionEvent or counted
// as a lost customer.
type Request struct {
	ArrivalTime Minutes // minute the customer arrives at the station
	Quantity    int     // requested fuel volume in litres, positive
	Product     string  // product identifier, e.g. "AI-95"
}

// String returns a human-readable representation of a Request.
func (r Request) String() string {
	return fmt.Sprintf("Request: (ArrivalTime: %s, Product: %s, Quantity: %d)", r.ArrivalTime.Clock(), r.Product, r.Quantity)
}

func maxMinutes(a, b Minutes) Minutes {
	if a > b {
		return a
	}
	return b
}
