package models

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNewHuntValidation(t *testing.T) {
	reward, _ := NewCallbackReward(func(context.Context, Player) error { return nil }, "prize")
	cases := []struct {
		name     string
		species  Species
		traits   []Trait
		rewards  []Reward
		duration int64
	}{
		{"no species", NoSpecies, []Trait{"Bold"}, nil, 60},
		{"no traits", "Pikachu", nil, nil, 60},
		{"duplicate traits", "Pikachu", []Trait{"Bold", "Bold"}, nil, 60},
		{"empty trait", "Pikachu", []Trait{""}, nil, 60},
		{"nil reward", "Pikachu", []Trait{"Bold"}, []Reward{reward, nil}, 60},
		{"zero duration", "Pikachu", []Trait{"Bold"}, nil, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewHunt(tc.species, tc.traits, tc.rewards, tc.duration); !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestHuntIsImmutable(t *testing.T) {
	traits := []Trait{"Adamant", "Bold"}
	h, err := NewHunt("Pikachu", traits, nil, 90)
	if err != nil {
		t.Fatal(err)
	}

	traits[0] = "Calm"
	got := h.Traits()
	got[1] = "Timid"

	if !h.HasTrait("Adamant") || !h.HasTrait("Bold") || h.HasTrait("Calm") || h.HasTrait("Timid") {
		t.Fatalf("hunt traits changed: %v", h.Traits())
	}
	if h.Duration() != 90*time.Second || h.DurationSeconds() != 90 {
		t.Fatalf("duration = %s", h.Duration())
	}
	if len(h.Rewards()) != 0 {
		t.Fatal("expected no rewards")
	}
}

func TestCatalogLookup(t *testing.T) {
	c := DefaultCatalog()
	if len(c.Species) != 151 || len(c.Traits) != 25 {
		t.Fatalf("catalog = %d species, %d traits", len(c.Species), len(c.Traits))
	}

	species := map[string]Species{
		"pikachu":   "Pikachu",
		"Mr. Mime":  "MrMime",
		"FARFETCHD": "Farfetchd",
	}
	for in, want := range species {
		if got, ok := c.LookupSpecies(in); !ok || got != want {
			t.Errorf("LookupSpecies(%q) = %q, %v", in, got, ok)
		}
	}
	if _, ok := c.LookupSpecies("Missingno"); ok {
		t.Error("found a species outside the catalog")
	}
	if _, ok := c.LookupSpecies("  "); ok {
		t.Error("blank name matched")
	}
	if got, ok := c.LookupTrait("ADAMANT"); !ok || got != "Adamant" {
		t.Errorf("LookupTrait = %q, %v", got, ok)
	}
}
