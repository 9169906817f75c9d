package bot

import (
	"slices"

	"github.com/freeeve/battleship/pkg/battleship"
)

// Mode is the targeting agent's search phase.
type Mode string

const (
	// ModeHunt scores the whole board with the probability field.
	ModeHunt Mode = "hunt"
	// ModeTarget works a stack of cells next to an unsunk hit.
	ModeTarget Mode = "target"
)

// TargetingAgent is the two-phase hunt/target strategy.
//
// The pending stack may hold cells that were shot after being pushed;
// NextMove drops them as it pops, so consumers must never assume every
// entry is still open.
type TargetingAgent struct {
	mode  Mode
	stack []battleship.Coord // pending targets, top is the last element
	hits  []battleship.Coord // hits on the ship currently being worked
	bias  BiasSource
}

// NewTargetingAgent returns an agent in hunt mode. bias may be nil.
func NewTargetingAgent(bias BiasSource) *TargetingAgent {
	return &TargetingAgent{mode: ModeHunt, bias: bias}
}

func (a *TargetingAgent) Name() string {
	if a.bias != nil {
		return DifficultyLearning
	}
	return DifficultyHunt
}

func (a *TargetingAgent) Mode() Mode { return a.mode }

// PendingTargets returns a copy of the target stack, bottom first.
func (a *TargetingAgent) PendingTargets() []battleship.Coord {
	return slices.Clone(a.stack)
}

// CurrentHits returns the hits attributed to the ship being worked.
func (a *TargetingAgent) CurrentHits() []battleship.Coord {
	return slices.Clone(a.hits)
}

// NextMove pops the target stack in target mode, skipping stale entries,
// and falls back to the probability field once the stack is empty.
func (a *TargetingAgent) NextMove(view battleship.BoardView) (battleship.Coord, bool) {
	if a.mode == ModeTarget {
		for len(a.stack) > 0 {
			next := a.stack[len(a.stack)-1]
			a.stack = a.stack[:len(a.stack)-1]
			if !view.WasShot(next) {
				return next, true
			}
		}
		a.mode = ModeHunt
	}

	field := ComputeField(view, view.RemainingShipLengths(), a.bias)
	if move, ok := BestHuntMove(view, field); ok {
		return move, true
	}
	return randomUnshot(view)
}

// Observe updates the search state from the result of a shot at c.
func (a *TargetingAgent) Observe(c battleship.Coord, result battleship.ShotResult, view battleship.BoardView) {
	switch result.Outcome {
	case battleship.OutcomeSunk:
		a.stack = nil
		a.hits = nil
		a.mode = ModeHunt
	case battleship.OutcomeHit:
		a.mode = ModeTarget
		a.hits = append(a.hits, c)
		a.pushNeighbours(c, view)
	}
}

func (a *TargetingAgent) pushNeighbours(c battleship.Coord, view battleship.BoardView) {
	size := view.Size()
	var candidates []battleship.Coord
	for _, n := range c.Orthogonal() {
		if n.InBounds(size) && !view.WasShot(n) {
			candidates = append(candidates, n)
		}
	}

	// Two hits fix the axis; drop anything off it, including guesses
	// pushed before the axis was known.
	if len(a.hits) >= 2 {
		h1, h2 := a.hits[0], a.hits[1]
		var keep func(battleship.Coord) bool
		switch {
		case h1.Row == h2.Row:
			keep = func(p battleship.Coord) bool { return p.Row == h1.Row }
		case h1.Col == h2.Col:
			keep = func(p battleship.Coord) bool { return p.Col == h1.Col }
		}
		if keep != nil {
			candidates = slices.DeleteFunc(candidates, func(p battleship.Coord) bool { return !keep(p) })
			a.stack = slices.DeleteFunc(a.stack, func(p battleship.Coord) bool { return !keep(p) })
		}
	}

	for _, n := range candidates {
		if !slices.Contains(a.stack, n) {
			a.stack = append(a.stack, n)
		}
	}
}
