package battleship

import (
	"fmt"
	"strings"
)

// Outcome is the closed set of ways a shot can resolve.
type Outcome int

const (
	OutcomeMiss Outcome = iota
	OutcomeHit
	OutcomeSunk
	OutcomeRepeat
)

func (o Outcome) String() string {
	switch o {
	case OutcomeHit:
		return "hit"
	case OutcomeSunk:
		return "sunk"
	case OutcomeRepeat:
		return "repeat"
	default:
		return "miss"
	}
}

// ShotResult is the resolution of one shot. Ship is set only for OutcomeSunk
// and carries the exact name of the ship that went down.
type ShotResult struct {
	Outcome Outcome
	Ship    string
}

var (
	Miss   = ShotResult{Outcome: OutcomeMiss}
	Hit    = ShotResult{Outcome: OutcomeHit}
	Repeat = ShotResult{Outcome: OutcomeRepeat}
)

// Sunk returns the result for a shot that sank the named ship.
func Sunk(name string) ShotResult {
	return ShotResult{Outcome: OutcomeSunk, Ship: name}
}

// IsSunk reports whether the shot sank a ship.
func (r ShotResult) IsSunk() bool { return r.Outcome == OutcomeSunk }

// IsHit reports whether the shot struck a ship, sinking it or not.
func (r ShotResult) IsHit() bool {
	return r.Outcome == OutcomeHit || r.Outcome == OutcomeSunk
}

// String renders the result tag: "repeat", "hit", "miss" or "sunk:<name>".
func (r ShotResult) String() string {
	if r.Outcome == OutcomeSunk {
		return "sunk:" + r.Ship
	}
	return r.Outcome.String()
}

// ParseShotResult is the inverse of String.
func ParseShotResult(s string) (ShotResult, error) {
	switch s {
	case "miss":
		return Miss, nil
	case "hit":
		return Hit, nil
	case "repeat":
		return Repeat, nil
	}
	if name, ok := strings.CutPrefix(s, "sunk:"); ok {
		return Sunk(name), nil
	}
	return ShotResult{}, fmt.Errorf("unknown shot result %q", s)
}

func (r ShotResult) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *ShotResult) UnmarshalText(b []byte) error {
	parsed, err := ParseShotResult(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
