package repository

import (
	"context"
	"time"

	"github.com/shenikar/storm_route_system/internal/models"
	"github.com/sirupsen/logrus"
)

// IncidentStore - контракт хранилища инцидентов, см. service.IncidentStore.
// Продублирован здесь, чтобы декоратор не зависел от пакета service.
type IncidentStore interface {
	Create(ctx context.Context, incident *models.Incident) error
	ListAll(ctx context.Context) ([]*models.Incident, error)
	QueryHazardsNear(ctx context.Context, bounds models.SpatialBounds, maxAge time.Duration) ([]*models.Incident, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}

// FallbackIncidentStore - декоратор над постоянным хранилищем: любая ошибка
// хранилища логируется и запрос выполняется резервным in-memory хранилищем.
// Отказ постоянного бэкенда не должен быть виден клиенту.
type FallbackIncidentStore struct {
	primary  IncidentStore
	fallback *MemoryIncidentStore
	logger   *logrus.Logger
}

func NewFallbackIncidentStore(primary IncidentStore, fallback *MemoryIncidentStore, logger *logrus.Logger) *FallbackIncidentStore {
	return &FallbackIncidentStore{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (s *FallbackIncidentStore) Create(ctx context.Context, incident *models.Incident) error {
	if err := s.primary.Create(ctx, incident); err != nil {
		s.logger.WithError(err).Warn("Persistent store create failed, falling back to in-memory store")
		return s.fallback.Create(ctx, incident)
	}
	return nil
}

func (s *FallbackIncidentStore) ListAll(ctx context.Context) ([]*models.Incident, error) {
	incidents, err := s.primary.ListAll(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("Persistent store list failed, falling back to in-memory store")
		return s.fallback.ListAll(ctx)
	}
	return incidents, nil
}

func (s *FallbackIncidentStore) QueryHazardsNear(ctx context.Context, bounds models.SpatialBounds, maxAge time.Duration) ([]*models.Incident, error) {
	incidents, err := s.primary.QueryHazardsNear(ctx, bounds, maxAge)
	if err != nil {
		s.logger.WithError(err).Warn("Persistent store query failed, falling back to in-memory store")
		return s.fallback.QueryHazardsNear(ctx, bounds, maxAge)
	}
	return incidents, nil
}

func (s *FallbackIncidentStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	deleted, err := s.primary.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		s.logger.WithError(err).Warn("Persistent store cleanup failed, falling back to in-memory store")
		return s.fallback.DeleteOlderThan(ctx, cutoff)
	}
	return deleted, nil
}
