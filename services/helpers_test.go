package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"pixel-hunt-system/models"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// fakeScheduler records armed tasks and fires them on demand.
type fakeScheduler struct {
	mu    sync.Mutex
	tasks map[TaskHandle]*fakeTask
	order []TaskHandle
}

type fakeTask struct {
	fn    func()
	delay time.Duration
	tags  []string
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{tasks: map[TaskHandle]*fakeTask{}}
}

func (s *fakeScheduler) After(d time.Duration, fn func(), tags ...string) (TaskHandle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := TaskHandle(uuid.New())
	s.tasks[h] = &fakeTask{fn: fn, delay: d, tags: tags}
	s.order = append(s.order, h)
	return h, nil
}

func (s *fakeScheduler) Cancel(h TaskHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tasks, h)
}

func (s *fakeScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// handles returns pending task handles in the order they were armed.
func (s *fakeScheduler) handles() []TaskHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []TaskHandle
	for _, h := range s.order {
		if _, ok := s.tasks[h]; ok {
			out = append(out, h)
		}
	}
	return out
}

// Fire runs a task as if its delay had elapsed.
func (s *fakeScheduler) Fire(h TaskHandle) bool {
	s.mu.Lock()
	t, ok := s.tasks[h]
	delete(s.tasks, h)
	s.mu.Unlock()
	if !ok {
		return false
	}
	t.fn()
	return true
}

// stubConfig serves settings from YAML text.
type stubConfig struct {
	doc      map[string]any
	messages map[string]string
}

func newStubConfig(configYAML string) *stubConfig {
	c := &stubConfig{doc: map[string]any{}, messages: map[string]string{}}
	if err := yaml.Unmarshal([]byte(configYAML), &c.doc); err != nil {
		panic(err)
	}
	return c
}

func (c *stubConfig) lookup(path string) (any, bool) {
	var cur any = c.doc
	for _, key := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = m[key]; !ok {
			return nil, false
		}
	}
	return cur, true
}

func (c *stubConfig) Int(path string, def int) int {
	if v, ok := c.lookup(path); ok {
		if n, ok := v.(int); ok {
			return n
		}
	}
	return def
}

func (c *stubConfig) String(path string, def string) string {
	if v, ok := c.lookup(path); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

func (c *stubConfig) Message(path string, def string) string {
	if s, ok := c.messages[path]; ok {
		return s
	}
	return def
}

func (c *stubConfig) Decode(path string, out any) error {
	v, ok := c.lookup(path)
	if !ok {
		return nil
	}
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, out)
}

// smallCatalog is a tiny catalog so tests can reason about exclusion.
func smallCatalog() *models.Catalog {
	return &models.Catalog{
		Species: []models.Species{"Bulbasaur", "Charmander", "Squirtle", "Pikachu", "Eevee"},
		Traits:  []models.Trait{"Adamant", "Bold", "Calm", "Docile", "Modest", "Timid"},
	}
}

// fakeEconomy counts deposits per player.
type fakeEconomy struct {
	mu       sync.Mutex
	deposits map[string]float64
	err      error
}

func newFakeEconomy() *fakeEconomy {
	return &fakeEconomy{deposits: map[string]float64{}}
}

func (e *fakeEconomy) DefaultCurrency() string { return "coins" }

func (e *fakeEconomy) Deposit(_ context.Context, playerID, _ string, amount float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err != nil {
		return e.err
	}
	e.deposits[playerID] += amount
	return nil
}

func (e *fakeEconomy) Balance(playerID string) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.deposits[playerID]
}

// fakeInventory records items given.
type fakeInventory struct {
	mu    sync.Mutex
	items map[string]int
}

func (i *fakeInventory) Give(_ context.Context, playerID, item string, quantity int) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.items == nil {
		i.items = map[string]int{}
	}
	i.items[playerID+"/"+item] += quantity
	return nil
}

type fixedPicker []models.Reward

func (p fixedPicker) Pick() []models.Reward { return p }
