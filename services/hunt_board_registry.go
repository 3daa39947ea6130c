package services

import (
	"fmt"
	"slices"
	"sync"

	"pixel-hunt-system/models"

	"github.com/gosimple/slug"
	"golang.org/x/text/cases"
)

// HuntBoardRegistry contains all hunt boards players can see and complete.
// Board names are unique ignoring case.
type HuntBoardRegistry struct {
	mu     sync.RWMutex
	boards []*HuntBoard
}

func NewHuntBoardRegistry() *HuntBoardRegistry {
	return &HuntBoardRegistry{}
}

// HuntBoards returns a snapshot of the registered boards.
func (r *HuntBoardRegistry) HuntBoards() []*HuntBoard {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.boards)
}

// HuntBoard finds a board by name, ignoring case.
func (r *HuntBoardRegistry) HuntBoard(name string) (*HuntBoard, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.findLocked(name)
}

// FindHuntBoard finds a board by name or by slug.
func (r *HuntBoardRegistry) FindHuntBoard(key string) (*HuntBoard, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if b, ok := r.findLocked(key); ok {
		return b, true
	}
	s := slug.Make(key)
	for _, b := range r.boards {
		if b.Slug() == s {
			return b, true
		}
	}
	return nil, false
}

// AddHuntBoard registers a board. It fails if a board with the same name,
// ignoring case, is already registered.
func (r *HuntBoardRegistry) AddHuntBoard(board *HuntBoard) error {
	if board == nil {
		return fmt.Errorf("%w: hunt board must not be nil", models.ErrInvalidArgument)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.findLocked(board.Name()); exists {
		return fmt.Errorf("%w: %q", models.ErrDuplicateBoard, board.Name())
	}
	r.boards = append(r.boards, board)
	return nil
}

// RemoveHuntBoard unregisters a board. Removing an unknown board is a no-op.
func (r *HuntBoardRegistry) RemoveHuntBoard(board *HuntBoard) error {
	if board == nil {
		return fmt.Errorf("%w: hunt board must not be nil", models.ErrInvalidArgument)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.boards = slices.DeleteFunc(r.boards, func(b *HuntBoard) bool { return b == board })
	return nil
}

func (r *HuntBoardRegistry) findLocked(name string) (*HuntBoard, bool) {
	fold := cases.Fold()
	key := fold.String(name)
	for _, b := range r.boards {
		if fold.String(b.Name()) == key {
			return b, true
		}
	}
	return nil, false
}
