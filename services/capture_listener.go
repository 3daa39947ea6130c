package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"pixel-hunt-system/models"
)

// CaptureEvent is sent by the game when a player successfully catches a creature.
type CaptureEvent struct {
	Species models.Species
	Trait   models.Trait
	Player  models.Player
}

// Completion describes a hunt completed by a capture.
type Completion struct {
	Board  string       `json:"board"`
	Hunt   *models.Hunt `json:"-"`
	Failed int          `json:"failed"` // rewards that errored
}

// CompletionRecorder stores completed hunts.
type CompletionRecorder interface {
	Record(ctx context.Context, completion *models.HuntCompletion) error
}

// CaptureListener checks captures against every registered board. If a
// capture completes a hunt, the player gets its rewards and the hunt is
// removed from its board.
type CaptureListener struct {
	registry *HuntBoardRegistry
	recorder CompletionRecorder
}

// NewCaptureListener creates a listener. recorder may be nil.
func NewCaptureListener(registry *HuntBoardRegistry, recorder CompletionRecorder) *CaptureListener {
	return &CaptureListener{registry: registry, recorder: recorder}
}

// OnCapture completes every hunt the capture satisfies.
func (l *CaptureListener) OnCapture(ctx context.Context, ev CaptureEvent) ([]Completion, error) {
	if ev.Species == models.NoSpecies || ev.Trait == "" {
		return nil, fmt.Errorf("%w: capture must name species and trait", models.ErrInvalidArgument)
	}
	if ev.Player.ID == "" {
		return nil, fmt.Errorf("%w: capture must name a player", models.ErrInvalidArgument)
	}

	var completed []Completion
	for _, board := range l.registry.HuntBoards() {
		for _, hunt := range board.ActiveHuntsFor(ev.Species, ev.Trait) {
			// Another capture may have got here first.
			if !board.Claim(hunt) {
				continue
			}
			failed := l.distribute(ctx, hunt, ev.Player)
			if err := board.RemoveHunts(hunt); err != nil {
				log.Printf("[Capture] ❌ Failed to remove hunt %s from board %q: %v", hunt.ID(), board.Name(), err)
			}
			log.Printf("[Capture] 🎯 %s completed the %s hunt on board %q", ev.Player.ID, hunt.Species(), board.Name())

			l.record(ctx, board.Name(), hunt, ev, failed)
			completed = append(completed, Completion{Board: board.Name(), Hunt: hunt, Failed: failed})
		}
	}
	return completed, nil
}

// distribute hands out every reward, in order, and returns how many failed.
func (l *CaptureListener) distribute(ctx context.Context, hunt *models.Hunt, player models.Player) int {
	failed := 0
	for _, reward := range hunt.Rewards() {
		if err := reward.Distribute(ctx, player); err != nil {
			failed++
			log.Printf("[Capture] ⚠️ Failed to give %s reward %q to %s: %v",
				reward.Type(), reward.Description(), player.ID, err)
		}
	}
	return failed
}

func (l *CaptureListener) record(ctx context.Context, board string, hunt *models.Hunt, ev CaptureEvent, failed int) {
	if l.recorder == nil {
		return
	}
	descriptions := make([]string, 0, len(hunt.Rewards()))
	for _, r := range hunt.Rewards() {
		descriptions = append(descriptions, r.Description())
	}
	err := l.recorder.Record(ctx, &models.HuntCompletion{
		Board:          board,
		HuntID:         hunt.ID().String(),
		Species:        string(hunt.Species()),
		Trait:          string(ev.Trait),
		ExternalUserID: ev.Player.ID,
		PlayerName:     ev.Player.Name,
		Rewards:        strings.Join(descriptions, "\n"),
		Failed:         failed,
	})
	if err != nil {
		log.Printf("[Capture] ⚠️ Failed to record completion of hunt %s: %v", hunt.ID(), err)
	}
}
