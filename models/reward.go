package models

import (
	"context"
	"fmt"
	"log"
)

// RewardType indicates which kind of grant a reward makes
type RewardType string

const (
	RewardTypeCurrency RewardType = "currency"
	RewardTypeItem     RewardType = "item"
	RewardTypeCallback RewardType = "callback"
)

// Player is the actor that completed a hunt.
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Reward is given to a player who completes a Hunt.
type Reward interface {
	Type() RewardType
	// Distribute applies the reward to the player.
	Distribute(ctx context.Context, player Player) error
	// Description is shown on the hunt board and accepts colour codes.
	Description() string
}

// Economy deposits currency into player accounts.
type Economy interface {
	DefaultCurrency() string
	Deposit(ctx context.Context, playerID, currency string, amount float64) error
}

// EconomySource resolves the economy currently loaded, if any.
type EconomySource interface {
	Economy() (Economy, bool)
}

// Inventory hands items to players.
type Inventory interface {
	Give(ctx context.Context, playerID, item string, quantity int) error
}

type rewardBase struct {
	description string
}

func (r rewardBase) Description() string { return r.description }

// CurrencyReward deposits an amount of money into the player's account.
type CurrencyReward struct {
	rewardBase
	amount   float64
	currency string
	economy  EconomySource
}

// NewCurrencyReward fails with ErrInvalidState when no economy is loaded.
// An empty currency means the economy's default currency.
func NewCurrencyReward(economy EconomySource, amount float64, currency, description string) (*CurrencyReward, error) {
	if economy == nil {
		return nil, fmt.Errorf("%w: no economy service is loaded", ErrInvalidState)
	}
	svc, ok := economy.Economy()
	if !ok {
		return nil, fmt.Errorf("%w: no economy service is loaded", ErrInvalidState)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be greater than 0", ErrInvalidArgument)
	}
	if currency == "" {
		currency = svc.DefaultCurrency()
	}
	return &CurrencyReward{
		rewardBase: rewardBase{description: description},
		amount:     amount,
		currency:   currency,
		economy:    economy,
	}, nil
}

func (r *CurrencyReward) Type() RewardType { return RewardTypeCurrency }
func (r *CurrencyReward) Amount() float64  { return r.amount }
func (r *CurrencyReward) Currency() string { return r.currency }

// Distribute deposits into the player's account. The economy is resolved
// again here; if it went away since construction the deposit is skipped.
func (r *CurrencyReward) Distribute(ctx context.Context, player Player) error {
	svc, ok := r.economy.Economy()
	if !ok {
		log.Printf("[Reward] Economy unavailable, skipping %.2f %s for %s", r.amount, r.currency, player.ID)
		return nil
	}
	return svc.Deposit(ctx, player.ID, r.currency, r.amount)
}

// ItemReward gives the player a stack of items.
type ItemReward struct {
	rewardBase
	item      string
	quantity  int
	inventory Inventory
}

func NewItemReward(inventory Inventory, item string, quantity int, description string) (*ItemReward, error) {
	if inventory == nil {
		return nil, fmt.Errorf("%w: inventory must not be nil", ErrInvalidArgument)
	}
	if item == "" {
		return nil, fmt.Errorf("%w: item must not be empty", ErrInvalidArgument)
	}
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidArgument)
	}
	return &ItemReward{
		rewardBase: rewardBase{description: description},
		item:       item,
		quantity:   quantity,
		inventory:  inventory,
	}, nil
}

func (r *ItemReward) Type() RewardType { return RewardTypeItem }
func (r *ItemReward) Item() string     { return r.item }
func (r *ItemReward) Quantity() int    { return r.quantity }

func (r *ItemReward) Distribute(ctx context.Context, player Player) error {
	return r.inventory.Give(ctx, player.ID, r.item, r.quantity)
}

// CallbackReward runs arbitrary code for the player.
type CallbackReward struct {
	rewardBase
	fn func(ctx context.Context, player Player) error
}

func NewCallbackReward(fn func(ctx context.Context, player Player) error, description string) (*CallbackReward, error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: callback must not be nil", ErrInvalidArgument)
	}
	return &CallbackReward{rewardBase: rewardBase{description: description}, fn: fn}, nil
}

func (r *CallbackReward) Type() RewardType { return RewardTypeCallback }

func (r *CallbackReward) Distribute(ctx context.Context, player Player) error {
	return r.fn(ctx, player)
}
