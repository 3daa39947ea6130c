// handlers/hunt_routes.go
package handlers

import (
	"context"
	"strconv"
	"strings"
	"time"

	"pixel-hunt-system/middleware"
	"pixel-hunt-system/models"
	"pixel-hunt-system/services"

	"github.com/gofiber/fiber/v2"
)

// CompletionHistory lists the hunts a player completed recently.
type CompletionHistory interface {
	Recent(ctx context.Context, playerID string, days int) ([]models.HuntCompletion, error)
}

// HuntRoutes holds everything the hunt endpoints need.
type HuntRoutes struct {
	API      *services.HuntAPI
	Listener *services.CaptureListener
	Messages services.ConfigSource
	History  CompletionHistory // optional
	// Reload reloads configuration and everything derived from it.
	Reload func(ctx context.Context) error
}

type addHuntRequest struct {
	Species         string   `json:"species"`
	Natures         []string `json:"natures"`
	DurationMinutes int64    `json:"duration_minutes"`
}

type captureRequest struct {
	Species    string `json:"species"`
	Nature     string `json:"nature"`
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

type boardSummary struct {
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Slots  int    `json:"slots"`
	Active int    `json:"active"`
}

type huntView struct {
	ID              string   `json:"id"`
	Species         string   `json:"species"`
	Natures         []string `json:"natures"`
	Rewards         []string `json:"rewards"`
	DurationSeconds int64    `json:"duration_seconds"`
}

func SetupHuntRoutes(app *fiber.App, r *HuntRoutes) {
	registry := r.API.HuntBoardRegistry()
	catalog := r.API.Catalog()

	// 🌐 Board views — any gateway request
	app.Get("/boards", func(c *fiber.Ctx) error {
		boards := registry.HuntBoards()
		out := make([]boardSummary, 0, len(boards))
		for _, b := range boards {
			out = append(out, boardSummary{Name: b.Name(), Slug: b.Slug(), Slots: b.Slots(), Active: len(b.ActiveHunts())})
		}
		return c.JSON(fiber.Map{"boards": out})
	})

	app.Get("/boards/:board", func(c *fiber.Ctx) error {
		board, ok := registry.FindHuntBoard(c.Params("board"))
		if !ok {
			return r.unknownBoard(c)
		}
		page, err := board.HuntBoardPage()
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(page)
	})

	// 🎯 Capture events from the game server
	app.Post("/events/capture", func(c *fiber.Ctx) error {
		var req captureRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}

		// Unknown species or natures can't match any hunt; not an error.
		species, ok := catalog.LookupSpecies(req.Species)
		if !ok {
			species = models.Species(req.Species)
		}
		trait, ok := catalog.LookupTrait(req.Nature)
		if !ok {
			trait = models.Trait(req.Nature)
		}

		completions, err := r.Listener.OnCapture(c.UserContext(), services.CaptureEvent{
			Species: species,
			Trait:   trait,
			Player:  models.Player{ID: req.PlayerID, Name: req.PlayerName},
		})
		if err != nil {
			return respondError(c, err)
		}

		out := make([]fiber.Map, 0, len(completions))
		for _, cp := range completions {
			out = append(out, fiber.Map{
				"board":          cp.Board,
				"hunt":           viewHunt(cp.Hunt),
				"failed_rewards": cp.Failed,
			})
		}
		return c.JSON(fiber.Map{"completed": out})
	})

	// 🔐 Player routes
	players := app.Group("/players", middleware.UserContextMiddleware(), middleware.RequireUser())
	players.Get("/me/completions", func(c *fiber.Ctx) error {
		if r.History == nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "completion history is disabled"})
		}
		days, err := strconv.Atoi(c.Query("days", "7"))
		if err != nil || days <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "days must be a positive integer"})
		}
		userID := c.Locals(middleware.LocalUserID).(string)
		completions, err := r.History.Recent(c.UserContext(), userID, days)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"completions": completions})
	})

	// 🔐 Admin routes
	admin := app.Group("/", middleware.UserContextMiddleware())
	requireUser := middleware.RequireUser()
	requireAdmin := middleware.RequireRole(middleware.RoleAdmin)

	admin.Post("/boards/:board/hunts", requireUser, requireAdmin, func(c *fiber.Ctx) error {
		board, ok := registry.FindHuntBoard(c.Params("board"))
		if !ok {
			return r.unknownBoard(c)
		}
		var req addHuntRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}

		species, ok := catalog.LookupSpecies(req.Species)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   "unknown species",
				"message": r.message("Commands.Unknown-Species", "&c{species} is not a huntable species.", "{species}", req.Species),
			})
		}

		builder := r.API.HuntBuilder()
		if err := builder.SetTarget(species); err != nil {
			return respondError(c, err)
		}
		if len(req.Natures) > 0 {
			traits := make([]models.Trait, 0, len(req.Natures))
			for _, n := range req.Natures {
				t, ok := catalog.LookupTrait(n)
				if !ok {
					return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
						"error":   "unknown nature",
						"message": r.message("Commands.Unknown-Nature", "&c{nature} is not a nature.", "{nature}", n),
					})
				}
				traits = append(traits, t)
			}
			if err := builder.SetTraits(traits...); err != nil {
				return respondError(c, err)
			}
		}
		if req.DurationMinutes != 0 {
			if err := builder.SetDuration(req.DurationMinutes, time.Minute); err != nil {
				return respondError(c, err)
			}
		}

		hunt, err := builder.Build()
		if err != nil {
			return respondError(c, err)
		}
		if err := board.AddHunts(hunt); err != nil {
			return respondError(c, err)
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"hunt":    viewHunt(hunt),
			"message": r.message("Commands.Hunt-Added", "&aAdded a {species} hunt to {board}.", "{species}", string(hunt.Species()), "{board}", board.Name()),
		})
	})

	admin.Delete("/boards/:board/hunts", requireUser, requireAdmin, func(c *fiber.Ctx) error {
		board, ok := registry.FindHuntBoard(c.Params("board"))
		if !ok {
			return r.unknownBoard(c)
		}
		removed := board.Clear()
		return c.JSON(fiber.Map{
			"removed": removed,
			"message": r.message("Commands.Board-Cleared", "&aRemoved {count} hunt(s) from {board}.", "{count}", strconv.Itoa(removed), "{board}", board.Name()),
		})
	})

	admin.Delete("/boards/:board/hunts/:slot", requireUser, requireAdmin, func(c *fiber.Ctx) error {
		board, ok := registry.FindHuntBoard(c.Params("board"))
		if !ok {
			return r.unknownBoard(c)
		}
		slot, err := strconv.Atoi(c.Params("slot"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "slot must be a number"})
		}
		hunt, err := board.RemoveSlot(slot)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{
			"hunt":    viewHunt(hunt),
			"message": r.message("Commands.Hunt-Removed", "&aRemoved the {species} hunt from {board}.", "{species}", string(hunt.Species()), "{board}", board.Name()),
		})
	})

	admin.Post("/admin/reload", requireUser, requireAdmin, func(c *fiber.Ctx) error {
		if err := r.Reload(c.UserContext()); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   err.Error(),
				"message": r.message("Commands.Reload-Failed", "&cPixelHunt configuration could not load, keeping previous settings."),
			})
		}
		return c.JSON(fiber.Map{
			"message": r.message("Commands.Reloaded", "&aPixelHunt configuration reloaded."),
		})
	})
}

func (r *HuntRoutes) unknownBoard(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error":   "unknown board",
		"message": r.message("Commands.Unknown-Board", "&cNo hunt board named {board}.", "{board}", c.Params("board")),
	})
}

// message fills a template from Messages.yaml with placeholder/value pairs.
func (r *HuntRoutes) message(key, def string, replacements ...string) string {
	tmpl := def
	if r.Messages != nil {
		tmpl = r.Messages.Message(key, def)
	}
	return strings.NewReplacer(replacements...).Replace(tmpl)
}

func viewHunt(h *models.Hunt) huntView {
	natures := make([]string, 0, len(h.Traits()))
	for _, t := range h.Traits() {
		natures = append(natures, string(t))
	}
	rewards := make([]string, 0, len(h.Rewards()))
	for _, rw := range h.Rewards() {
		rewards = append(rewards, rw.Description())
	}
	return huntView{
		ID:              h.ID().String(),
		Species:         string(h.Species()),
		Natures:         natures,
		Rewards:         rewards,
		DurationSeconds: h.DurationSeconds(),
	}
}
