package service

import (
	"context"

	"warriorstats/internal/storage"
)

// Service orchestrates application logic between HTTP layer and storage.
type Service struct {
	store Store
}

// Store defines minimal storage contract used by the service.
type Store interface {
	WarriorStats(ctx context.Context) (*storage.StatsResult, error)
}

func New(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) WarriorStats(ctx context.Context) (*storage.StatsResult, error) {
	return s.store.WarriorStats(ctx)
}
