package models

import (
	"context"
	"errors"
	"testing"
)

type testEconomy struct {
	deposits map[string]float64
}

func (e *testEconomy) DefaultCurrency() string { return "coins" }

func (e *testEconomy) Deposit(_ context.Context, playerID, currency string, amount float64) error {
	e.deposits[playerID+"/"+currency] += amount
	return nil
}

type inventoryFunc func(ctx context.Context, playerID, item string, quantity int) error

func (f inventoryFunc) Give(ctx context.Context, playerID, item string, quantity int) error {
	return f(ctx, playerID, item, quantity)
}

type switchableEconomy struct {
	economy Economy
}

func (s *switchableEconomy) Economy() (Economy, bool) { return s.economy, s.economy != nil }

func TestCurrencyRewardRequiresEconomy(t *testing.T) {
	if _, err := NewCurrencyReward(nil, 10, "", "x"); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("nil source: %v", err)
	}
	if _, err := NewCurrencyReward(&switchableEconomy{}, 10, "", "x"); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("no economy loaded: %v", err)
	}
	src := &switchableEconomy{economy: &testEconomy{deposits: map[string]float64{}}}
	if _, err := NewCurrencyReward(src, 0, "", "x"); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("zero amount: %v", err)
	}
}

func TestCurrencyRewardDistribute(t *testing.T) {
	eco := &testEconomy{deposits: map[string]float64{}}
	src := &switchableEconomy{economy: eco}

	r, err := NewCurrencyReward(src, 250, "", "&e250 coins")
	if err != nil {
		t.Fatal(err)
	}
	if r.Type() != RewardTypeCurrency || r.Currency() != "coins" || r.Amount() != 250 {
		t.Fatalf("reward = %+v", r)
	}

	player := Player{ID: "ash", Name: "Ash"}
	if err := r.Distribute(context.Background(), player); err != nil {
		t.Fatal(err)
	}
	if eco.deposits["ash/coins"] != 250 {
		t.Fatalf("deposits = %v", eco.deposits)
	}

	// Economy unloaded after construction: skipped, not failed.
	src.economy = nil
	if err := r.Distribute(context.Background(), player); err != nil {
		t.Fatal(err)
	}
	if eco.deposits["ash/coins"] != 250 {
		t.Fatal("deposit made without economy")
	}
}

func TestItemRewardValidation(t *testing.T) {
	inv := inventoryFunc(func(context.Context, string, string, int) error { return nil })
	if _, err := NewItemReward(nil, "potion", 1, ""); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("nil inventory: %v", err)
	}
	if _, err := NewItemReward(inv, "", 1, ""); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("empty item: %v", err)
	}
	if _, err := NewItemReward(inv, "potion", 0, ""); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("zero quantity: %v", err)
	}
}

func TestItemRewardDistribute(t *testing.T) {
	var gotPlayer, gotItem string
	var gotQty int
	inv := inventoryFunc(func(_ context.Context, playerID, item string, qty int) error {
		gotPlayer, gotItem, gotQty = playerID, item, qty
		return nil
	})
	r, err := NewItemReward(inv, "rare_candy", 3, "&d3 Rare Candy")
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Distribute(context.Background(), Player{ID: "misty"}); err != nil {
		t.Fatal(err)
	}
	if gotPlayer != "misty" || gotItem != "rare_candy" || gotQty != 3 {
		t.Fatalf("gave %s %d to %s", gotItem, gotQty, gotPlayer)
	}
	if r.Description() != "&d3 Rare Candy" || r.Type() != RewardTypeItem {
		t.Fatalf("reward = %+v", r)
	}
}

func TestCallbackReward(t *testing.T) {
	if _, err := NewCallbackReward(nil, ""); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("nil callback: %v", err)
	}
	boom := errors.New("boom")
	r, _ := NewCallbackReward(func(context.Context, Player) error { return boom }, "")
	if err := r.Distribute(context.Background(), Player{ID: "x"}); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}
