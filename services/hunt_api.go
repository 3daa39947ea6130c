package services

import (
	"fmt"
	"time"

	"pixel-hunt-system/models"

	"github.com/jonboulle/clockwork"
)

// ConfigSource is read-only access to the plugin configuration and messages.
type ConfigSource interface {
	Int(path string, def int) int
	String(path string, def string) string
	Message(path string, def string) string
	// Decode unmarshals the value at path into out. Missing paths leave out untouched.
	Decode(path string, out any) error
}

// HuntAPI is the entry point for everything hunt related: the board
// registry, hunt builders and board construction.
type HuntAPI struct {
	registry  *HuntBoardRegistry
	catalog   *models.Catalog
	config    ConfigSource
	picker    RewardPicker
	scheduler Scheduler
	clock     clockwork.Clock
	pages     *PageRenderer
}

// NewHuntAPI wires the hunt API. picker may be nil.
func NewHuntAPI(catalog *models.Catalog, config ConfigSource, picker RewardPicker, scheduler Scheduler, clock clockwork.Clock) (*HuntAPI, error) {
	if catalog == nil || len(catalog.Species) == 0 || len(catalog.Traits) == 0 {
		return nil, fmt.Errorf("%w: catalog must list species and traits", models.ErrInvalidArgument)
	}
	if config == nil || scheduler == nil {
		return nil, fmt.Errorf("%w: config and scheduler must not be nil", models.ErrInvalidArgument)
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &HuntAPI{
		registry:  NewHuntBoardRegistry(),
		catalog:   catalog,
		config:    config,
		picker:    picker,
		scheduler: scheduler,
		clock:     clock,
		pages:     NewPageRenderer(config, clock),
	}, nil
}

func (a *HuntAPI) HuntBoardRegistry() *HuntBoardRegistry { return a.registry }

func (a *HuntAPI) Catalog() *models.Catalog { return a.catalog }

// HuntBuilder returns a builder primed with the configured duration and
// trait count.
func (a *HuntAPI) HuntBuilder() *HuntBuilder {
	minutes := a.config.Int("General.Hunt-Duration-Minutes", int(DefaultHuntDuration/time.Minute))
	b := NewHuntBuilder(a.catalog, time.Duration(minutes)*time.Minute, a.picker)
	if n := a.config.Int("General.Traits-Per-Hunt", DefaultTraitsPerHunt); n > 0 {
		_ = b.SetTraitCount(n)
	}
	return b
}

// CreateHuntBoard creates a board with numSlots slots. The board is not
// registered; add it to the registry to make it visible.
func (a *HuntAPI) CreateHuntBoard(name string, numSlots int) (*HuntBoard, error) {
	return NewHuntBoard(name, numSlots, a.scheduler, a.clock, a.HuntBuilder, a.pages)
}

// BoardConfig is one entry of the Boards list in Configuration.yaml.
type BoardConfig struct {
	Name  string `yaml:"Name"`
	Slots int    `yaml:"Slots"`
}

// DefaultBoardName is used when no boards are configured.
const DefaultBoardName = "main"

// SetupBoards creates, registers and fills the configured boards. Boards
// that are already registered are skipped.
func (a *HuntAPI) SetupBoards() error {
	var boards []BoardConfig
	if err := a.config.Decode("Boards", &boards); err != nil {
		return fmt.Errorf("read board configuration: %w", err)
	}
	if len(boards) == 0 {
		boards = []BoardConfig{{
			Name:  DefaultBoardName,
			Slots: a.config.Int("General.Number-Hunts", 4),
		}}
	}

	for _, bc := range boards {
		if _, exists := a.registry.HuntBoard(bc.Name); exists {
			continue
		}
		board, err := a.CreateHuntBoard(bc.Name, bc.Slots)
		if err != nil {
			return fmt.Errorf("create board %q: %w", bc.Name, err)
		}
		if err := a.registry.AddHuntBoard(board); err != nil {
			return err
		}
		board.Refill()
	}
	return nil
}
