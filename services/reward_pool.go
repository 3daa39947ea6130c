// services/reward_pool.go
package services

import (
	"fmt"
	"log"
	"math/rand/v2"
	"strings"
	"sync"

	"pixel-hunt-system/models"
)

// Reward policies for hunts built without rewards.
const (
	RewardPolicyNone = "none" // such hunts give nothing
	RewardPolicyPool = "pool" // draw from Rewards.Pool
)

// RewardSpec is one entry of Rewards.Pool in Configuration.yaml.
type RewardSpec struct {
	Type        models.RewardType `yaml:"Type"`
	Amount      float64           `yaml:"Amount"`
	Currency    string            `yaml:"Currency"`
	Item        string            `yaml:"Item"`
	Quantity    int               `yaml:"Quantity"`
	Description string            `yaml:"Description"`
}

// RewardPool is the configured set of rewards random hunts draw from.
type RewardPool struct {
	config    ConfigSource
	economy   models.EconomySource
	inventory models.Inventory

	mu      sync.RWMutex
	policy  string
	perHunt int
	rewards []models.Reward
}

func NewRewardPool(config ConfigSource, economy models.EconomySource, inventory models.Inventory) *RewardPool {
	return &RewardPool{config: config, economy: economy, inventory: inventory, policy: RewardPolicyNone}
}

// Reload rebuilds the pool from configuration. Entries that cannot be built
// right now (currency without an economy) are skipped and logged.
func (p *RewardPool) Reload() error {
	policy := strings.ToLower(p.config.String("Rewards.Policy", RewardPolicyNone))
	if policy != RewardPolicyNone && policy != RewardPolicyPool {
		return fmt.Errorf("%w: unknown reward policy %q", models.ErrInvalidArgument, policy)
	}

	var specs []RewardSpec
	if err := p.config.Decode("Rewards.Pool", &specs); err != nil {
		return fmt.Errorf("read reward pool: %w", err)
	}

	rewards := make([]models.Reward, 0, len(specs))
	for i, spec := range specs {
		r, err := p.build(spec)
		if err != nil {
			log.Printf("[RewardPool] ⚠️ Skipping reward %d (%s): %v", i+1, spec.Type, err)
			continue
		}
		rewards = append(rewards, r)
	}

	p.mu.Lock()
	p.policy = policy
	p.perHunt = p.config.Int("Rewards.Per-Hunt", 1)
	p.rewards = rewards
	p.mu.Unlock()

	log.Printf("[RewardPool] Loaded %d of %d reward(s), policy=%s", len(rewards), len(specs), policy)
	return nil
}

func (p *RewardPool) build(spec RewardSpec) (models.Reward, error) {
	switch spec.Type {
	case models.RewardTypeCurrency:
		return models.NewCurrencyReward(p.economy, spec.Amount, spec.Currency, spec.Description)
	case models.RewardTypeItem:
		qty := spec.Quantity
		if qty == 0 {
			qty = 1
		}
		return models.NewItemReward(p.inventory, spec.Item, qty, spec.Description)
	default:
		return nil, fmt.Errorf("%w: reward type %q cannot be configured", models.ErrInvalidArgument, spec.Type)
	}
}

// Pick draws distinct rewards for one hunt. It returns nil under the "none"
// policy or when the pool is empty.
func (p *RewardPool) Pick() []models.Reward {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.policy != RewardPolicyPool || len(p.rewards) == 0 || p.perHunt <= 0 {
		return nil
	}
	n := min(p.perHunt, len(p.rewards))
	picked := make([]models.Reward, 0, n)
	for _, i := range rand.Perm(len(p.rewards))[:n] {
		picked = append(picked, p.rewards[i])
	}
	return picked
}

// Len returns the number of rewards in the pool.
func (p *RewardPool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.rewards)
}
