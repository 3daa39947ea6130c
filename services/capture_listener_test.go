package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"pixel-hunt-system/models"
)

type memoryRecorder struct {
	mu          sync.Mutex
	completions []*models.HuntCompletion
}

func (r *memoryRecorder) Record(_ context.Context, c *models.HuntCompletion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completions = append(r.completions, c)
	return nil
}

func newCaptureFixture(t *testing.T, rewards ...models.Reward) (*CaptureListener, *HuntBoard, *models.Hunt, *memoryRecorder) {
	t.Helper()
	board, _ := newTestBoard(t, "Main", 0)
	reg := NewHuntBoardRegistry()
	if err := reg.AddHuntBoard(board); err != nil {
		t.Fatal(err)
	}
	hunt, err := models.NewHunt("Pikachu", []models.Trait{"Adamant", "Bold"}, rewards, 3600)
	if err != nil {
		t.Fatal(err)
	}
	if err := board.AddHunts(hunt); err != nil {
		t.Fatal(err)
	}
	rec := &memoryRecorder{}
	return NewCaptureListener(reg, rec), board, hunt, rec
}

func TestCaptureCompletesMatchingHuntOnce(t *testing.T) {
	var paid atomic.Int32
	reward, _ := models.NewCallbackReward(func(context.Context, models.Player) error {
		paid.Add(1)
		return nil
	}, "&e100 coins")
	listener, board, hunt, rec := newCaptureFixture(t, reward)
	ctx := context.Background()
	ash := models.Player{ID: "ash", Name: "Ash"}

	// Wrong trait: nothing happens.
	got, err := listener.OnCapture(ctx, CaptureEvent{Species: "Pikachu", Trait: "Calm", Player: ash})
	if err != nil || len(got) != 0 {
		t.Fatalf("wrong trait completed %v (err %v)", got, err)
	}
	// Wrong species: nothing happens.
	got, _ = listener.OnCapture(ctx, CaptureEvent{Species: "Eevee", Trait: "Adamant", Player: ash})
	if len(got) != 0 {
		t.Fatal("wrong species completed a hunt")
	}

	got, err = listener.OnCapture(ctx, CaptureEvent{Species: "Pikachu", Trait: "Adamant", Player: ash})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Hunt != hunt || got[0].Board != "Main" {
		t.Fatalf("completions = %+v", got)
	}
	if paid.Load() != 1 {
		t.Fatalf("paid = %d, want 1", paid.Load())
	}
	if board.Len() != 0 {
		t.Fatal("completed hunt still on board")
	}

	// The hunt is gone; a second matching catch does nothing.
	got, _ = listener.OnCapture(ctx, CaptureEvent{Species: "Pikachu", Trait: "Bold", Player: ash})
	if len(got) != 0 || paid.Load() != 1 {
		t.Fatal("hunt completed twice")
	}

	if len(rec.completions) != 1 {
		t.Fatalf("recorded = %d, want 1", len(rec.completions))
	}
	c := rec.completions[0]
	if c.HuntID != hunt.ID().String() || c.ExternalUserID != "ash" || c.Trait != "Adamant" || c.Rewards != "&e100 coins" {
		t.Fatalf("recorded %+v", c)
	}
}

func TestCaptureRewardFailureStillCompletes(t *testing.T) {
	var paid atomic.Int32
	broken, _ := models.NewCallbackReward(func(context.Context, models.Player) error {
		return errors.New("inventory full")
	}, "broken")
	working, _ := models.NewCallbackReward(func(context.Context, models.Player) error {
		paid.Add(1)
		return nil
	}, "working")
	listener, board, _, rec := newCaptureFixture(t, broken, working)

	got, err := listener.OnCapture(context.Background(), CaptureEvent{Species: "Pikachu", Trait: "Bold", Player: models.Player{ID: "misty"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Failed != 1 {
		t.Fatalf("completions = %+v", got)
	}
	if paid.Load() != 1 {
		t.Fatal("later reward skipped after a failure")
	}
	if board.Len() != 0 || rec.completions[0].Failed != 1 {
		t.Fatal("hunt not completed")
	}
}

func TestCaptureConcurrentCatchesPayOnce(t *testing.T) {
	var paid atomic.Int32
	reward, _ := models.NewCallbackReward(func(context.Context, models.Player) error {
		paid.Add(1)
		return nil
	}, "prize")
	listener, _, _, _ := newCaptureFixture(t, reward)

	var wg sync.WaitGroup
	var completed atomic.Int32
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, _ := listener.OnCapture(context.Background(), CaptureEvent{Species: "Pikachu", Trait: "Adamant", Player: models.Player{ID: "brock"}})
			completed.Add(int32(len(got)))
		}()
	}
	wg.Wait()

	if paid.Load() != 1 || completed.Load() != 1 {
		t.Fatalf("paid=%d completed=%d, want 1/1", paid.Load(), completed.Load())
	}
}

func TestCaptureValidation(t *testing.T) {
	listener, _, _, _ := newCaptureFixture(t)
	ctx := context.Background()
	bad := []CaptureEvent{
		{Trait: "Bold", Player: models.Player{ID: "ash"}},
		{Species: "Pikachu", Player: models.Player{ID: "ash"}},
		{Species: "Pikachu", Trait: "Bold"},
	}
	for _, ev := range bad {
		if _, err := listener.OnCapture(ctx, ev); !errors.Is(err, models.ErrInvalidArgument) {
			t.Errorf("%+v: expected ErrInvalidArgument, got %v", ev, err)
		}
	}
}

func TestCaptureWithoutRecorder(t *testing.T) {
	board, _ := newTestBoard(t, "Main", 0)
	reg := NewHuntBoardRegistry()
	_ = reg.AddHuntBoard(board)
	_ = board.AddHunts(mustHunt(t, "Eevee", "Calm"))

	got, err := NewCaptureListener(reg, nil).OnCapture(context.Background(), CaptureEvent{Species: "Eevee", Trait: "Calm", Player: models.Player{ID: "gary"}})
	if err != nil || len(got) != 1 {
		t.Fatalf("got %v, err %v", got, err)
	}
}
