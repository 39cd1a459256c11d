package service

//go:generate mockgen -source=incident.go -destination=mocks/mock_incident.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/shenikar/storm_route_system/internal/config"
	"github.com/shenikar/storm_route_system/internal/geo"
	"github.com/shenikar/storm_route_system/internal/models"
	"github.com/shenikar/storm_route_system/internal/webhook"
	"github.com/sirupsen/logrus"
)

// IncidentStore определяет контракт для работы с хранилищем инцидентов.
// Любая реализация обязана сохранять точную семантику фильтра
// QueryHazardsNear: тип-препятствие, границы включительно, окно свежести.
type IncidentStore interface {
	Create(ctx context.Context, incident *models.Incident) error
	ListAll(ctx context.Context) ([]*models.Incident, error)
	QueryHazardsNear(ctx context.Context, bounds models.SpatialBounds, maxAge time.Duration) ([]*models.Incident, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}

// IncidentService определяет контракт бизнес-логики работы с инцидентами
type IncidentService interface {
	CreateIncident(ctx context.Context, incident *models.Incident) error
	ListIncidents(ctx context.Context) ([]*models.Incident, error)
	ResolveExclusions(ctx context.Context, corridor *models.RouteCorridor) ([]models.ExclusionPoint, error)
	CleanupOldIncidents(ctx context.Context, maxAge time.Duration) (int, error)
}

type incidentService struct {
	store     IncidentStore
	logger    *logrus.Logger
	cfg       *config.Config
	publisher webhook.HazardPublisher
}

// NewIncidentService создает сервис инцидентов; publisher может быть nil,
// если доставка событий о препятствиях не настроена
func NewIncidentService(store IncidentStore, logger *logrus.Logger, cfg *config.Config, publisher webhook.HazardPublisher) IncidentService {
	return &incidentService{
		store:     store,
		logger:    logger,
		cfg:       cfg,
		publisher: publisher,
	}
}

// CreateIncident валидирует и сохраняет сообщение жителя.
// ID и время создания назначает хранилище.
func (s *incidentService) CreateIncident(ctx context.Context, incident *models.Incident) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "CreateIncident",
		"type":    incident.Type,
	})

	if incident.Type == "" {
		return newValidationError("type", "is required")
	}
	if !incident.Type.IsValid() {
		return newValidationError("type", fmt.Sprintf("unknown incident type %q", incident.Type))
	}
	if incident.Description == "" {
		return newValidationError("description", "is required")
	}
	if incident.Lat < -90 || incident.Lat > 90 {
		return newValidationError("location.lat", "must be between -90 and 90")
	}
	if incident.Lng < -180 || incident.Lng > 180 {
		return newValidationError("location.lng", "must be between -180 and 180")
	}
	if incident.ReportedBy == "" {
		incident.ReportedBy = models.AnonymousReporter
	}

	log.Info("Attempting to create a new incident")
	if err := s.store.Create(ctx, incident); err != nil {
		log.WithError(err).Error("Failed to create incident in store")
		return fmt.Errorf("service: could not create incident: %w", err)
	}

	log.WithField("incident_id", incident.ID).Info("Incident created successfully")

	// Для препятствий уведомляем подписчиков; отказ доставки не должен
	// ломать создание отчёта
	if incident.Type.IsHazard() && s.publisher != nil {
		event := webhook.HazardEvent{
			IncidentID:  incident.ID,
			Type:        incident.Type,
			Lat:         incident.Lat,
			Lng:         incident.Lng,
			Description: incident.Description,
			ReportedAt:  incident.Timestamp,
		}
		if err := s.publisher.Publish(ctx, event); err != nil {
			log.WithError(err).Warn("Failed to publish hazard event")
		}
	}

	return nil
}

// ListIncidents возвращает все инциденты в порядке создания
func (s *incidentService) ListIncidents(ctx context.Context) ([]*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "ListIncidents",
	})

	incidents, err := s.store.ListAll(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to list incidents from store")
		return nil, fmt.Errorf("service: could not list incidents: %w", err)
	}

	log.WithField("count", len(incidents)).Info("Incidents listed successfully")
	return incidents, nil
}

// ResolveExclusions превращает свежие препятствия вокруг коридора маршрута
// в точки исключения маршрутизатора. Без коридора работает деградированный
// режим для обратной совместимости: все свежие препятствия без привязки к
// местоположению. Это отдельная явная ветка, а не частный случай основной.
func (s *incidentService) ResolveExclusions(ctx context.Context, corridor *models.RouteCorridor) ([]models.ExclusionPoint, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "ResolveExclusions",
	})
	maxAge := s.cfg.HazardMaxAge()

	if corridor == nil {
		log.Info("No route corridor given, falling back to all recent hazards")
		return s.allRecentHazards(ctx, maxAge)
	}

	bufferKm := corridor.BufferKm
	if bufferKm <= 0 {
		bufferKm = s.cfg.DefaultBufferKm
	}

	bounds := geo.RouteBounds(corridor.Start.Lat, corridor.Start.Lon, corridor.End.Lat, corridor.End.Lon, bufferKm)
	hazards, err := s.store.QueryHazardsNear(ctx, bounds, maxAge)
	if err != nil {
		log.WithError(err).Error("Failed to query hazards near corridor")
		return nil, fmt.Errorf("service: could not resolve exclusions: %w", err)
	}

	exclusions := toExclusionPoints(hazards)
	log.WithField("count", len(exclusions)).Info("Resolved exclusions for route corridor")
	return exclusions, nil
}

func (s *incidentService) allRecentHazards(ctx context.Context, maxAge time.Duration) ([]models.ExclusionPoint, error) {
	incidents, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: could not list incidents for exclusions: %w", err)
	}

	now := time.Now()
	hazards := make([]*models.Incident, 0)
	for _, incident := range incidents {
		if !incident.Type.IsHazard() {
			continue
		}
		if now.Sub(incident.Timestamp) > maxAge {
			continue
		}
		hazards = append(hazards, incident)
	}
	return toExclusionPoints(hazards), nil
}

// CleanupOldIncidents - опциональный хук обслуживания
func (s *incidentService) CleanupOldIncidents(ctx context.Context, maxAge time.Duration) (int, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "CleanupOldIncidents",
	})

	deleted, err := s.store.DeleteOlderThan(ctx, time.Now().Add(-maxAge))
	if err != nil {
		log.WithError(err).Error("Failed to cleanup old incidents")
		return 0, fmt.Errorf("service: could not cleanup old incidents: %w", err)
	}

	log.WithField("deleted", deleted).Info("Old incidents cleaned up")
	return deleted, nil
}

// toExclusionPoints выполняет переименование lng -> lon на границе с
// маршрутизатором; это жёсткий контракт провайдера
func toExclusionPoints(hazards []*models.Incident) []models.ExclusionPoint {
	exclusions := make([]models.ExclusionPoint, 0, len(hazards))
	for _, hazard := range hazards {
		exclusions = append(exclusions, models.ExclusionPoint{
			Lat: hazard.Lat,
			Lon: hazard.Lng,
		})
	}
	return exclusions
}
