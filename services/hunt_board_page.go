package services

import (
	"strconv"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
)

// Text is a piece of colour-coded text with optional hover text.
type Text struct {
	Text  string `json:"text"`
	Hover string `json:"hover,omitempty"`
}

// HuntLine is one hunt on a rendered board.
type HuntLine struct {
	Slot             int    `json:"slot"`
	Species          Text   `json:"species"`
	Traits           Text   `json:"traits"`
	Rewards          Text   `json:"rewards"`
	Expiry           Text   `json:"expiry"`
	RemainingSeconds int64  `json:"remaining_seconds"`
	HuntID           string `json:"hunt_id"`
}

// BoardPage is a display snapshot of a hunt board.
type BoardPage struct {
	Board   string     `json:"board"`
	Header  string     `json:"header"`
	Padding string     `json:"padding"`
	Lines   []HuntLine `json:"lines"`
	Footer  Text       `json:"footer"`
}

// PageRenderer builds board pages from the message templates in Messages.yaml.
//
// Placeholders: {species}; {nature} or {trait}; {days}, {hours}, {minutes}
// and {seconds} of the time remaining.
type PageRenderer struct {
	messages ConfigSource
	clock    clockwork.Clock
}

func NewPageRenderer(messages ConfigSource, clock clockwork.Clock) *PageRenderer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &PageRenderer{messages: messages, clock: clock}
}

func (p *PageRenderer) msg(key, def string) string {
	return p.messages.Message("Hunt-Board."+key, def)
}

// Render builds a page for entries, numbering them from 1.
func (p *PageRenderer) Render(board string, entries []BoardEntry) *BoardPage {
	page := &BoardPage{
		Board:   board,
		Header:  p.msg("Board-Header", "&6Pixelmon Hunts"),
		Padding: p.msg("Board-Padding", "&8-"),
		Lines:   make([]HuntLine, 0, len(entries)),
		Footer: Text{
			Text:  p.msg("Board-Info-Label", "&7?"),
			Hover: p.msg("Board-Info-Hover", ""),
		},
	}

	now := p.clock.Now()
	for i, e := range entries {
		h := e.Hunt

		traitTmpl := p.msg("Nature-Hover", "&bNature: &f{nature}")
		traits := make([]string, 0, len(h.Traits()))
		for _, t := range h.Traits() {
			traits = append(traits, strings.NewReplacer("{nature}", string(t), "{trait}", string(t)).Replace(traitTmpl))
		}

		rewards := make([]string, 0, len(h.Rewards()))
		for _, r := range h.Rewards() {
			rewards = append(rewards, r.Description())
		}

		remaining := h.DurationSeconds() - int64(now.Sub(e.StartedAt)/time.Second)
		if remaining < 0 {
			remaining = 0
		}

		page.Lines = append(page.Lines, HuntLine{
			Slot: i + 1,
			Species: Text{
				Text: strings.ReplaceAll(p.msg("Pokemon-Label", "&b{species}"), "{species}", string(h.Species())),
			},
			Traits: Text{
				Text:  p.msg("Nature-Label", "&8&l[&aNatures&8&l]"),
				Hover: strings.Join(traits, "\n"),
			},
			Rewards: Text{
				Text:  p.msg("Reward-Label", "&8&l[&eRewards&8&l]"),
				Hover: strings.Join(rewards, "\n"),
			},
			Expiry: Text{
				Text:  p.msg("Expiry-Label", "&8&l[&cExpiry&8&l]"),
				Hover: countdown(p.msg("Expiry-Hover", "&f{days}&bD &f{hours}&bH &f{minutes}&bM &f{seconds}&bS"), remaining),
			},
			RemainingSeconds: remaining,
			HuntID:           h.ID().String(),
		})
	}
	return page
}

// countdown fills the time placeholders with remaining split into
// days, hours, minutes and seconds.
func countdown(tmpl string, remaining int64) string {
	days := remaining / 86400
	hours := remaining % 86400 / 3600
	minutes := remaining % 3600 / 60
	seconds := remaining % 60
	return strings.NewReplacer(
		"{days}", strconv.FormatInt(days, 10),
		"{hours}", strconv.FormatInt(hours, 10),
		"{minutes}", strconv.FormatInt(minutes, 10),
		"{seconds}", strconv.FormatInt(seconds, 10),
	).Replace(tmpl)
}
