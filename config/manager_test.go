package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"pixel-hunt-system/models"
)

func TestManagerCreatesDefaults(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(NewDirStore(dir))
	if err := m.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	for _, name := range []string{ConfigFile, MessagesFile} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s not created: %v", name, err)
		}
	}

	if got := m.Int("General.Number-Hunts", 0); got != 4 {
		t.Errorf("Number-Hunts = %d, want 4", got)
	}
	if got := m.String("Rewards.Policy", ""); got != "none" {
		t.Errorf("Rewards.Policy = %q", got)
	}
	if got := m.Message("Hunt-Board.Pokemon-Label", ""); got != "&b{species}" {
		t.Errorf("Pokemon-Label = %q", got)
	}

	var boards []struct {
		Name  string `yaml:"Name"`
		Slots int    `yaml:"Slots"`
	}
	if err := m.Decode("Boards", &boards); err != nil {
		t.Fatal(err)
	}
	if len(boards) != 1 || boards[0].Name != "main" || boards[0].Slots != 4 {
		t.Errorf("boards = %+v", boards)
	}
}

func TestManagerDefaultsForMissingPaths(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, ConfigFile, "General:\n  Number-Hunts: seven\n")
	write(t, dir, MessagesFile, "")

	m := NewManager(NewDirStore(dir))
	if err := m.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := m.Int("General.Number-Hunts", 3); got != 3 {
		t.Errorf("non-integer value: got %d, want default 3", got)
	}
	if got := m.Int("General.Missing", 9); got != 9 {
		t.Errorf("missing path: got %d", got)
	}
	if got := m.String("General.Number-Hunts.Deeper", "x"); got != "x" {
		t.Errorf("path through scalar: got %q", got)
	}
	if got := m.Message("Hunt-Board.Board-Header", "fallback"); got != "fallback" {
		t.Errorf("empty messages: got %q", got)
	}

	var untouched = []string{"keep"}
	if err := m.Decode("Nope", &untouched); err != nil || len(untouched) != 1 {
		t.Errorf("decode of missing path changed output: %v %v", untouched, err)
	}
}

func TestManagerKeepsLastGoodConfig(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(NewDirStore(dir))
	ctx := context.Background()
	if err := m.Load(ctx); err != nil {
		t.Fatal(err)
	}

	write(t, dir, ConfigFile, "General: [unclosed\n")
	err := m.Reload(ctx)
	if !errors.Is(err, models.ErrConfigLoad) {
		t.Fatalf("expected ErrConfigLoad, got %v", err)
	}
	if got := m.Int("General.Number-Hunts", 0); got != 4 {
		t.Errorf("previous settings lost: Number-Hunts = %d", got)
	}

	write(t, dir, ConfigFile, "General:\n  Number-Hunts: 6\n")
	if err := m.Reload(ctx); err != nil {
		t.Fatal(err)
	}
	if got := m.Int("General.Number-Hunts", 0); got != 6 {
		t.Errorf("Number-Hunts = %d, want 6", got)
	}
}

func TestManagerSaveBeforeLoad(t *testing.T) {
	m := NewManager(NewDirStore(t.TempDir()))
	if err := m.Save(context.Background()); !errors.Is(err, models.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func write(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
