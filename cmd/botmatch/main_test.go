package main

import (
	"math"
	"testing"

	"github.com/freeeve/battleship/internal/bot"
)

func TestParseMatchup(t *testing.T) {
	tests := []struct {
		in         string
		player, ai string
		ok         bool
	}{
		{"learning-vs-hunt", "learning", "hunt", true},
		{"random-vs-random", "random", "random", true},
		{"hunt", "", "", false},
		{"-vs-hunt", "", "", false},
	}
	for _, tt := range tests {
		player, ai, ok := parseMatchup(tt.in)
		if ok != tt.ok || player != tt.player || ai != tt.ai {
			t.Errorf("parseMatchup(%q) = %q, %q, %v; want %q, %q, %v", tt.in, player, ai, ok, tt.player, tt.ai, tt.ok)
		}
	}
}

func TestParseStrategies(t *testing.T) {
	got := parseStrategies(" random, hunt,,learning ")
	want := []string{"random", "hunt", "learning"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestAggregateSoloSkipsFailures(t *testing.T) {
	results := []*bot.SoloResult{
		{Moves: 40, Sunk: true},
		nil,
		{Moves: 60, Sunk: true},
		{Moves: 110, Sunk: false},
	}
	s := aggregateSolo(results)
	if s.games != 3 || s.sunk != 2 {
		t.Errorf("expected 3 games and 2 cleared, got %d and %d", s.games, s.sunk)
	}
	if s.min != 40 || s.max != 110 {
		t.Errorf("expected min 40 max 110, got %d %d", s.min, s.max)
	}
	if math.Abs(s.avg()-70) > 1e-9 {
		t.Errorf("expected avg 70, got %f", s.avg())
	}
}

func TestImprovement(t *testing.T) {
	if got := improvement(100, 60); math.Abs(got-40) > 1e-9 {
		t.Errorf("expected 40%%, got %f", got)
	}
	if got := improvement(0, 60); got != 0 {
		t.Errorf("expected 0 without a baseline, got %f", got)
	}
}

func TestGameSeed(t *testing.T) {
	if gameSeed(0, 5) != 0 {
		t.Error("random base seed should stay random")
	}
	if gameSeed(100, 5) != 105 {
		t.Errorf("expected 105, got %d", gameSeed(100, 5))
	}
}
