package services

import (
	"fmt"
	"log"
	"slices"
	"sync"
	"time"

	"pixel-hunt-system/models"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/jonboulle/clockwork"
)

// activeHunt is a hunt on a board together with when it started and the
// task that expires it.
type activeHunt struct {
	hunt      *models.Hunt
	startedAt time.Time
	expiry    TaskHandle
	claimed   bool
}

// BoardEntry is a read-only view of an active hunt.
type BoardEntry struct {
	Hunt      *models.Hunt
	StartedAt time.Time
}

// HuntBoard keeps a fixed number of hunts active. Each hunt expires on its
// own; whenever one leaves, the board tops itself back up.
type HuntBoard struct {
	name     string
	slug     string
	numSlots int

	scheduler  Scheduler
	clock      clockwork.Clock
	newBuilder func() *HuntBuilder
	pages      *PageRenderer

	mu      sync.Mutex
	entries map[uuid.UUID]*activeHunt
	order   []uuid.UUID
}

// NewHuntBoard creates an empty board. newBuilder is called for every hunt
// the board generates on refill. pages may be nil.
func NewHuntBoard(name string, numSlots int, scheduler Scheduler, clock clockwork.Clock, newBuilder func() *HuntBuilder, pages *PageRenderer) (*HuntBoard, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name must not be empty", models.ErrInvalidArgument)
	}
	if numSlots < 0 {
		return nil, fmt.Errorf("%w: number of slots must be greater than or equal to 0", models.ErrInvalidArgument)
	}
	if scheduler == nil || newBuilder == nil {
		return nil, fmt.Errorf("%w: scheduler and builder must not be nil", models.ErrInvalidArgument)
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &HuntBoard{
		name:       name,
		slug:       slug.Make(name),
		numSlots:   numSlots,
		scheduler:  scheduler,
		clock:      clock,
		newBuilder: newBuilder,
		pages:      pages,
		entries:    make(map[uuid.UUID]*activeHunt),
	}, nil
}

func (b *HuntBoard) Name() string { return b.name }

// Slug is the URL-safe form of the board name.
func (b *HuntBoard) Slug() string { return b.slug }

// Slots is the number of hunts the board keeps active.
func (b *HuntBoard) Slots() int { return b.numSlots }

// Len returns the number of entries on the board, including hunts being completed.
func (b *HuntBoard) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// AddHunts makes hunts active and arms their expiry. Capacity is not
// checked here; it only bounds refill.
func (b *HuntBoard) AddHunts(hunts ...*models.Hunt) error {
	for _, h := range hunts {
		if h == nil {
			return fmt.Errorf("%w: hunt must not be nil", models.ErrInvalidArgument)
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for i, h := range hunts {
		if _, ok := b.entries[h.ID()]; ok || slices.ContainsFunc(hunts[:i], func(o *models.Hunt) bool { return o.ID() == h.ID() }) {
			return fmt.Errorf("%w: hunt %s is already active on board %q", models.ErrInvalidArgument, h.ID(), b.name)
		}
	}
	for _, h := range hunts {
		if err := b.addLocked(h); err != nil {
			return err
		}
	}
	return nil
}

// RemoveHunts removes hunts and refills the board. Hunts that are not on
// the board are ignored.
func (b *HuntBoard) RemoveHunts(hunts ...*models.Hunt) error {
	for _, h := range hunts {
		if h == nil {
			return fmt.Errorf("%w: hunt must not be nil", models.ErrInvalidArgument)
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, h := range hunts {
		b.removeLocked(h.ID(), true)
	}
	b.refillLocked()
	return nil
}

// RemoveSlot removes the hunt shown at the 1-based slot of the board page.
func (b *HuntBoard) RemoveSlot(slot int) (*models.Hunt, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	visible := b.visibleLocked()
	if slot < 1 || slot > len(visible) {
		return nil, fmt.Errorf("%w: slot %d is not on board %q (1-%d)", models.ErrInvalidArgument, slot, b.name, len(visible))
	}
	h := visible[slot-1].hunt
	b.removeLocked(h.ID(), true)
	b.refillLocked()
	return h, nil
}

// Clear removes every hunt that is not being completed, then refills.
func (b *HuntBoard) Clear() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	visible := b.visibleLocked()
	for _, e := range visible {
		b.removeLocked(e.hunt.ID(), true)
	}
	b.refillLocked()
	return len(visible)
}

// Refill tops the board up to its slot count.
func (b *HuntBoard) Refill() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.refillLocked()
}

// Claim marks an active hunt as being completed. Exactly one caller wins
// the claim for a given entry; claimed hunts are hidden from queries and
// no longer expire. The winner must call RemoveHunts when done.
func (b *HuntBoard) Claim(h *models.Hunt) bool {
	if h == nil {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	e, ok := b.entries[h.ID()]
	if !ok || e.claimed {
		return false
	}
	e.claimed = true
	return true
}

// ActiveHunts returns a copy of the active hunts in activation order.
func (b *HuntBoard) ActiveHunts() []*models.Hunt {
	return b.filter(func(*models.Hunt) bool { return true })
}

// ActiveHuntsOf returns active hunts for species.
func (b *HuntBoard) ActiveHuntsOf(species models.Species) []*models.Hunt {
	return b.filter(func(h *models.Hunt) bool { return h.Species() == species })
}

// ActiveHuntsFor returns active hunts that a catch of species with trait completes.
func (b *HuntBoard) ActiveHuntsFor(species models.Species, trait models.Trait) []*models.Hunt {
	return b.filter(func(h *models.Hunt) bool { return h.Species() == species && h.HasTrait(trait) })
}

// Entries returns the active hunts with their activation times.
func (b *HuntBoard) Entries() []BoardEntry {
	b.mu.Lock()
	defer b.mu.Unlock()

	visible := b.visibleLocked()
	out := make([]BoardEntry, len(visible))
	for i, e := range visible {
		out[i] = BoardEntry{Hunt: e.hunt, StartedAt: e.startedAt}
	}
	return out
}

// HuntBoardPage renders the board for display.
func (b *HuntBoard) HuntBoardPage() (*BoardPage, error) {
	if b.pages == nil {
		return nil, fmt.Errorf("%w: board %q has no page renderer", models.ErrInvalidState, b.name)
	}
	return b.pages.Render(b.name, b.Entries()), nil
}

// Close cancels every pending expiry and empties the board without refilling.
func (b *HuntBoard) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, id := range slices.Clone(b.order) {
		b.removeLocked(id, true)
	}
}

func (b *HuntBoard) filter(keep func(*models.Hunt) bool) []*models.Hunt {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []*models.Hunt
	for _, e := range b.visibleLocked() {
		if keep(e.hunt) {
			out = append(out, e.hunt)
		}
	}
	return out
}

func (b *HuntBoard) visibleLocked() []*activeHunt {
	out := make([]*activeHunt, 0, len(b.order))
	for _, id := range b.order {
		if e := b.entries[id]; !e.claimed {
			out = append(out, e)
		}
	}
	return out
}

func (b *HuntBoard) addLocked(h *models.Hunt) error {
	e := &activeHunt{hunt: h, startedAt: b.clock.Now()}
	handle, err := b.scheduler.After(h.Duration(), func() { b.expire(h.ID(), e) }, "hunt-board", b.slug)
	if err != nil {
		return fmt.Errorf("arm expiry for hunt %s on board %q: %w", h.ID(), b.name, err)
	}
	e.expiry = handle
	b.entries[h.ID()] = e
	b.order = append(b.order, h.ID())
	return nil
}

func (b *HuntBoard) removeLocked(id uuid.UUID, cancel bool) bool {
	e, ok := b.entries[id]
	if !ok {
		return false
	}
	delete(b.entries, id)
	if i := slices.Index(b.order, id); i >= 0 {
		b.order = slices.Delete(b.order, i, i+1)
	}
	if cancel {
		b.scheduler.Cancel(e.expiry)
	}
	return true
}

// expire runs on the scheduler when a hunt's time is up. Entries that were
// replaced or claimed in the meantime are left alone.
func (b *HuntBoard) expire(id uuid.UUID, e *activeHunt) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[HuntBoard] ❌ Expiry on board %q panicked: %v", b.name, r)
		}
	}()

	b.mu.Lock()
	defer b.mu.Unlock()

	if cur, ok := b.entries[id]; !ok || cur != e || cur.claimed {
		return
	}
	b.removeLocked(id, false)
	log.Printf("[HuntBoard] ⌛ Hunt for %s expired on board %q", e.hunt.Species(), b.name)
	b.refillLocked()
}

// refillLocked adds random hunts until the board is back at capacity. It
// never adds more than the deficit observed on entry.
func (b *HuntBoard) refillLocked() {
	deficit := b.numSlots - len(b.entries)
	for i := 0; i < deficit; i++ {
		builder := b.newBuilder()
		h, err := builder.RandomHunt(b.exclusionsLocked(builder.Catalog())...)
		if err != nil {
			log.Printf("[HuntBoard] ❌ Failed to generate hunt for board %q: %v", b.name, err)
			return
		}
		if err := b.addLocked(h); err != nil {
			log.Printf("[HuntBoard] ❌ Failed to refill board %q: %v", b.name, err)
			return
		}
	}
}

// exclusionsLocked lists species already on the board, unless that would
// leave nothing to pick from.
func (b *HuntBoard) exclusionsLocked(catalog *models.Catalog) []models.Species {
	excluded := make([]models.Species, 0, len(b.entries))
	for _, e := range b.entries {
		s := e.hunt.Species()
		if slices.Contains(catalog.Species, s) && !slices.Contains(excluded, s) {
			excluded = append(excluded, s)
		}
	}
	if len(excluded) >= len(catalog.Species) {
		return nil
	}
	return excluded
}
