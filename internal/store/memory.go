package store

import (
	"context"
	"sync"

	"aurelia_back_end/internal/pricing"
)

// MemoryConfigStore implémente pricing.ConfigStore en mémoire, avec la même
// sémantique de création paresseuse que le store ScyllaDB. Sert aux tests.
type MemoryConfigStore struct {
	mu      sync.Mutex
	cfg     pricing.PaymentConfig
	created bool

	// Creates compte les créations paresseuses, pour vérifier qu'un second
	// Get ne recrée jamais l'enregistrement.
	Creates int
}

func NewMemoryConfigStore() *MemoryConfigStore {
	return &MemoryConfigStore{}
}

func (m *MemoryConfigStore) Get(_ context.Context) (pricing.PaymentConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.created {
		m.cfg = pricing.DefaultConfig()
		m.created = true
		m.Creates++
	}
	return m.cfg, nil
}

func (m *MemoryConfigStore) Update(_ context.Context, cfg pricing.PaymentConfig) (pricing.PaymentConfig, error) {
	if err := cfg.Validate(); err != nil {
		return pricing.PaymentConfig{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.cfg = cfg
	m.created = true
	return m.cfg, nil
}
