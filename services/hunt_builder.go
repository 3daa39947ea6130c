package services

import (
	"fmt"
	"slices"
	"time"

	"pixel-hunt-system/models"
)

// DefaultTraitsPerHunt is how many traits a hunt gets when none were set.
const DefaultTraitsPerHunt = 4

// DefaultHuntDuration applies when configuration does not say otherwise.
const DefaultHuntDuration = 60 * time.Minute

// RewardPicker supplies rewards for hunts built without any.
type RewardPicker interface {
	Pick() []models.Reward
}

// HuntBuilder stages the properties of a Hunt. A builder may be reused;
// random traits and rewards are drawn fresh on every Build.
type HuntBuilder struct {
	catalog    *models.Catalog
	species    models.Species
	traits     []models.Trait
	rewards    []models.Reward
	duration   int64 // seconds
	traitCount int
	picker     RewardPicker
}

// NewHuntBuilder creates a builder over catalog with a default duration.
// picker may be nil, in which case hunts without rewards have none.
func NewHuntBuilder(catalog *models.Catalog, duration time.Duration, picker RewardPicker) *HuntBuilder {
	secs := int64(duration / time.Second)
	if secs <= 0 {
		secs = int64(DefaultHuntDuration / time.Second)
	}
	return &HuntBuilder{
		catalog:    catalog,
		duration:   secs,
		traitCount: DefaultTraitsPerHunt,
		picker:     picker,
	}
}

func (b *HuntBuilder) Catalog() *models.Catalog { return b.catalog }

// SetTarget sets the species to be hunted.
func (b *HuntBuilder) SetTarget(species models.Species) error {
	if species == models.NoSpecies {
		return fmt.Errorf("%w: species must not be empty", models.ErrInvalidArgument)
	}
	b.species = species
	return nil
}

// SetTraits sets the traits that complete the hunt. No traits means they
// are randomised at build time.
func (b *HuntBuilder) SetTraits(traits ...models.Trait) error {
	if len(traits) == 0 {
		b.traits = nil
		return nil
	}
	if err := models.ValidateTraits(traits); err != nil {
		return err
	}
	b.traits = slices.Clone(traits)
	return nil
}

// SetRewards sets the rewards given on completion. No rewards means the
// configured reward policy decides at build time.
func (b *HuntBuilder) SetRewards(rewards ...models.Reward) error {
	for _, r := range rewards {
		if r == nil {
			return fmt.Errorf("%w: reward must not be nil", models.ErrInvalidArgument)
		}
	}
	b.rewards = slices.Clone(rewards)
	return nil
}

// SetDuration sets how long the hunt stays active, as value units.
func (b *HuntBuilder) SetDuration(value int64, unit time.Duration) error {
	if value <= 0 {
		return fmt.Errorf("%w: time value must be greater than 0", models.ErrInvalidArgument)
	}
	if unit <= 0 {
		return fmt.Errorf("%w: time unit must be positive", models.ErrInvalidArgument)
	}
	secs := int64(time.Duration(value) * unit / time.Second)
	if secs <= 0 {
		return fmt.Errorf("%w: duration must be at least one second", models.ErrInvalidArgument)
	}
	b.duration = secs
	return nil
}

// SetTraitCount sets how many random traits are drawn when none are set.
func (b *HuntBuilder) SetTraitCount(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: trait count must be greater than 0", models.ErrInvalidArgument)
	}
	b.traitCount = n
	return nil
}

// RandomHunt builds a hunt for a random species not in excluded.
// excluded must be a proper subset of the catalog's species or this never returns.
func (b *HuntBuilder) RandomHunt(excluded ...models.Species) (*models.Hunt, error) {
	species := b.catalog.RandomSpecies()
	for slices.Contains(excluded, species) {
		species = b.catalog.RandomSpecies()
	}
	b.species = species
	return b.Build()
}

// Build creates the hunt. It fails with ErrInvalidState if no species is set.
func (b *HuntBuilder) Build() (*models.Hunt, error) {
	if b.species == models.NoSpecies {
		return nil, fmt.Errorf("%w: species must be set", models.ErrInvalidState)
	}

	traits := b.traits
	if len(traits) == 0 {
		traits = b.randomTraits()
	}

	rewards := b.rewards
	if len(rewards) == 0 && b.picker != nil {
		rewards = b.picker.Pick()
	}

	return models.NewHunt(b.species, traits, rewards, b.duration)
}

func (b *HuntBuilder) randomTraits() []models.Trait {
	n := min(b.traitCount, len(b.catalog.Traits))
	traits := make([]models.Trait, 0, n)
	for len(traits) < n {
		t := b.catalog.RandomTrait()
		if !slices.Contains(traits, t) {
			traits = append(traits, t)
		}
	}
	return traits
}
