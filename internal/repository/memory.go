package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/storm_route_system/internal/models"
)

// MemoryIncidentStore - транзиентное хранилище инцидентов для демо-режима
// и как резерв при отказе постоянного хранилища. Порядок - порядок вставки.
type MemoryIncidentStore struct {
	mu        sync.RWMutex
	incidents []*models.Incident
	nowFn     func() time.Time
}

func NewMemoryIncidentStore() *MemoryIncidentStore {
	return &MemoryIncidentStore{
		incidents: make([]*models.Incident, 0),
		nowFn:     time.Now,
	}
}

// Create назначает инциденту ID и Timestamp и сохраняет его
func (s *MemoryIncidentStore) Create(_ context.Context, incident *models.Incident) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	incident.ID = uuid.New()
	incident.Timestamp = s.nowFn()

	stored := *incident
	s.incidents = append(s.incidents, &stored)
	return nil
}

// ListAll возвращает все инциденты в порядке вставки
func (s *MemoryIncidentStore) ListAll(_ context.Context) ([]*models.Incident, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.Incident, 0, len(s.incidents))
	for _, incident := range s.incidents {
		copied := *incident
		result = append(result, &copied)
	}
	return result, nil
}

// QueryHazardsNear возвращает препятствия внутри границ (включительно)
// не старше maxAge
func (s *MemoryIncidentStore) QueryHazardsNear(_ context.Context, bounds models.SpatialBounds, maxAge time.Duration) ([]*models.Incident, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.nowFn()
	result := make([]*models.Incident, 0)
	for _, incident := range s.incidents {
		if !incident.Type.IsHazard() {
			continue
		}
		if !bounds.Contains(incident.Lat, incident.Lng) {
			continue
		}
		if now.Sub(incident.Timestamp) > maxAge {
			continue
		}
		copied := *incident
		result = append(result, &copied)
	}
	return result, nil
}

// DeleteOlderThan удаляет инциденты, созданные раньше cutoff.
// Опциональный хук обслуживания, возвращает число удалённых записей.
func (s *MemoryIncidentStore) DeleteOlderThan(_ context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]*models.Incident, 0, len(s.incidents))
	deleted := 0
	for _, incident := range s.incidents {
		if incident.Timestamp.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, incident)
	}
	s.incidents = kept
	return deleted, nil
}
