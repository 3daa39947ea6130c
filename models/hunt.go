package models

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Hunt asks players to catch a species with one of the hunted traits before
// the hunt expires. Hunts are immutable once built.
type Hunt struct {
	id       uuid.UUID
	species  Species
	traits   []Trait
	rewards  []Reward
	duration int64 // seconds
}

// NewHunt validates and builds a hunt. Slices are copied.
func NewHunt(species Species, traits []Trait, rewards []Reward, durationSeconds int64) (*Hunt, error) {
	if species == NoSpecies {
		return nil, fmt.Errorf("%w: species must not be empty", ErrInvalidArgument)
	}
	if len(traits) == 0 {
		return nil, fmt.Errorf("%w: trait list must not be empty", ErrInvalidArgument)
	}
	if err := ValidateTraits(traits); err != nil {
		return nil, err
	}
	for _, r := range rewards {
		if r == nil {
			return nil, fmt.Errorf("%w: reward must not be nil", ErrInvalidArgument)
		}
	}
	if durationSeconds <= 0 {
		return nil, fmt.Errorf("%w: duration value must be greater than 0", ErrInvalidArgument)
	}
	return &Hunt{
		id:       uuid.New(),
		species:  species,
		traits:   slices.Clone(traits),
		rewards:  slices.Clone(rewards),
		duration: durationSeconds,
	}, nil
}

// ValidateTraits rejects empty and repeated traits.
func ValidateTraits(traits []Trait) error {
	seen := make(map[Trait]struct{}, len(traits))
	for _, t := range traits {
		if t == "" {
			return fmt.Errorf("%w: trait must not be empty", ErrInvalidArgument)
		}
		if _, dup := seen[t]; dup {
			return fmt.Errorf("%w: trait %q listed twice", ErrInvalidArgument, t)
		}
		seen[t] = struct{}{}
	}
	return nil
}

func (h *Hunt) ID() uuid.UUID { return h.id }

// Species returns the hunted species.
func (h *Hunt) Species() Species { return h.species }

// Traits returns a copy of the hunted traits.
func (h *Hunt) Traits() []Trait { return slices.Clone(h.traits) }

// HasTrait reports whether catching the species with trait t completes the hunt.
func (h *Hunt) HasTrait(t Trait) bool { return slices.Contains(h.traits, t) }

// Rewards returns a copy of the rewards given on completion, in order.
func (h *Hunt) Rewards() []Reward { return slices.Clone(h.rewards) }

// Duration is how long the hunt stays active once added to a board.
func (h *Hunt) Duration() time.Duration { return time.Duration(h.duration) * time.Second }

func (h *Hunt) DurationSeconds() int64 { return h.duration }
