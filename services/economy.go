package services

import (
	"sync"

	"pixel-hunt-system/models"
)

// EconomyProvider holds the economy currently loaded on the server, if any.
// Listeners are notified whenever the provider changes.
type EconomyProvider struct {
	mu        sync.RWMutex
	economy   models.Economy
	listeners []func(models.Economy)
}

func NewEconomyProvider() *EconomyProvider {
	return &EconomyProvider{}
}

// Economy returns the loaded economy, or false if there is none.
func (p *EconomyProvider) Economy() (models.Economy, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.economy, p.economy != nil
}

// Set swaps the loaded economy. nil unloads it.
func (p *EconomyProvider) Set(economy models.Economy) {
	p.mu.Lock()
	if p.economy == economy {
		p.mu.Unlock()
		return
	}
	p.economy = economy
	listeners := append([]func(models.Economy){}, p.listeners...)
	p.mu.Unlock()

	for _, fn := range listeners {
		fn(economy)
	}
}

// OnChange registers fn to run after every change of economy.
func (p *EconomyProvider) OnChange(fn func(models.Economy)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, fn)
}
