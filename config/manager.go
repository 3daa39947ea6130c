package config

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"
	"sync"

	"pixel-hunt-system/models"

	"gopkg.in/yaml.v3"
)

// Names of the configuration documents.
const (
	ConfigFile   = "Configuration.yaml"
	MessagesFile = "Messages.yaml"
)

//go:embed defaults/*.yaml
var defaults embed.FS

// Manager loads and stores all configuration settings. It loads from the
// store on startup and whenever an admin reloads the plugin; a failed load
// keeps the last settings that loaded.
type Manager struct {
	store Store

	mu       sync.RWMutex
	config   *yaml.Node
	messages *yaml.Node
}

func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// Load reads both documents, creating them from defaults when missing.
func (m *Manager) Load(ctx context.Context) error {
	cfg, err := m.loadDocument(ctx, ConfigFile)
	if err != nil {
		log.Printf("[Config] ❌ PixelHunt configuration could not load: %v", err)
		return fmt.Errorf("%w: %v", models.ErrConfigLoad, err)
	}
	msgs, err := m.loadDocument(ctx, MessagesFile)
	if err != nil {
		log.Printf("[Config] ❌ PixelHunt messages could not load: %v", err)
		return fmt.Errorf("%w: %v", models.ErrConfigLoad, err)
	}

	m.mu.Lock()
	m.config, m.messages = cfg, msgs
	m.mu.Unlock()
	return nil
}

// Reload loads both documents again and saves them back on success.
func (m *Manager) Reload(ctx context.Context) error {
	if err := m.Load(ctx); err != nil {
		return err
	}
	return m.Save(ctx)
}

// Save writes both documents to the store.
func (m *Manager) Save(ctx context.Context) error {
	m.mu.RLock()
	cfg, msgs := m.config, m.messages
	m.mu.RUnlock()

	if cfg == nil || msgs == nil {
		return fmt.Errorf("%w: configuration was never loaded", models.ErrInvalidState)
	}
	for name, doc := range map[string]*yaml.Node{ConfigFile: cfg, MessagesFile: msgs} {
		data, err := yaml.Marshal(doc)
		if err != nil {
			return fmt.Errorf("encode %s: %w", name, err)
		}
		if err := m.store.Write(ctx, name, data); err != nil {
			log.Printf("[Config] ❌ PixelHunt could not save %s: %v", name, err)
			return fmt.Errorf("save %s: %w", name, err)
		}
	}
	return nil
}

func (m *Manager) loadDocument(ctx context.Context, name string) (*yaml.Node, error) {
	data, err := m.store.Read(ctx, name)
	if errors.Is(err, fs.ErrNotExist) {
		data, err = defaults.ReadFile("defaults/" + name)
		if err != nil {
			return nil, fmt.Errorf("read default %s: %w", name, err)
		}
		if err := m.store.Write(ctx, name, data); err != nil {
			return nil, fmt.Errorf("create %s: %w", name, err)
		}
		log.Printf("[Config] Created %s from defaults", name)
	} else if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if len(doc.Content) == 0 {
		// Empty file: treat as an empty mapping.
		doc = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}}}
	}
	return &doc, nil
}

// Int returns the integer at a dotted path of Configuration.yaml, or def.
func (m *Manager) Int(path string, def int) int {
	v := def
	if n := m.lookup(m.configDoc(), path); n != nil {
		if err := n.Decode(&v); err != nil {
			return def
		}
	}
	return v
}

// String returns the string at a dotted path of Configuration.yaml, or def.
func (m *Manager) String(path string, def string) string {
	return scalar(m.lookup(m.configDoc(), path), def)
}

// Message returns the message template at a dotted path of Messages.yaml, or def.
func (m *Manager) Message(path string, def string) string {
	m.mu.RLock()
	doc := m.messages
	m.mu.RUnlock()
	return scalar(m.lookup(doc, path), def)
}

// Decode unmarshals the value at a dotted path of Configuration.yaml into out.
func (m *Manager) Decode(path string, out any) error {
	n := m.lookup(m.configDoc(), path)
	if n == nil {
		return nil
	}
	if err := n.Decode(out); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func (m *Manager) configDoc() *yaml.Node {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// lookup walks a dotted path ("General.Number-Hunts") through mapping nodes.
func (m *Manager) lookup(doc *yaml.Node, path string) *yaml.Node {
	if doc == nil || len(doc.Content) == 0 {
		return nil
	}
	node := doc.Content[0]
	for _, key := range strings.Split(path, ".") {
		if node.Kind != yaml.MappingNode {
			return nil
		}
		var next *yaml.Node
		for i := 0; i+1 < len(node.Content); i += 2 {
			if node.Content[i].Value == key {
				next = node.Content[i+1]
				break
			}
		}
		if next == nil {
			return nil
		}
		node = next
	}
	return node
}

func scalar(n *yaml.Node, def string) string {
	if n == nil || n.Kind != yaml.ScalarNode || n.Tag == "!!null" {
		return def
	}
	return n.Value
}
