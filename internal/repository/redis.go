package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/storm_route_system/internal/geo"
	"github.com/shenikar/storm_route_system/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	incidentKeyPrefix = "incident:"

	// bucketPrefixPrecision - длина префикса ключа корзины при сужении выборки
	bucketPrefixPrecision = 6

	scanBatchSize = 200
)

// RedisIncidentStore - постоянное key-value хранилище инцидентов.
// Ключ содержит ключ пространственной корзины: incident:<bucket>:<id>.
// Сканирование по префиксам корзин даёт только кандидатов, точный предикат
// границ/типа/возраста всегда перепроверяется перед возвратом, дубликаты
// по ID схлопываются к самой свежей записи.
type RedisIncidentStore struct {
	client *redis.Client
	logger *logrus.Logger
}

func NewRedisIncidentStore(client *redis.Client, logger *logrus.Logger) *RedisIncidentStore {
	return &RedisIncidentStore{client: client, logger: logger}
}

// Create назначает инциденту ID и Timestamp и сохраняет его в Redis
func (s *RedisIncidentStore) Create(ctx context.Context, incident *models.Incident) error {
	incident.ID = uuid.New()
	incident.Timestamp = time.Now()

	payload, err := json.Marshal(incident)
	if err != nil {
		return newStorageError("marshal incident", err)
	}

	key := s.storageKey(incident)
	if err := s.client.Set(ctx, key, payload, 0).Err(); err != nil {
		return newStorageError("set incident", err)
	}
	return nil
}

// ListAll возвращает все инциденты, отсортированные по времени создания
func (s *RedisIncidentStore) ListAll(ctx context.Context) ([]*models.Incident, error) {
	incidents, err := s.scanIncidents(ctx, incidentKeyPrefix+"*")
	if err != nil {
		return nil, err
	}
	return dedupeByNewest(incidents), nil
}

// QueryHazardsNear сужает выборку по префиксам корзин, затем точно
// фильтрует по границам, типу и возрасту
func (s *RedisIncidentStore) QueryHazardsNear(ctx context.Context, bounds models.SpatialBounds, maxAge time.Duration) ([]*models.Incident, error) {
	prefixes := geo.BucketPrefixes(bounds, bucketPrefixPrecision)

	var candidates []*models.Incident
	if len(prefixes) == 0 {
		// Область слишком велика для перечисления корзин, сканируем всё
		all, err := s.scanIncidents(ctx, incidentKeyPrefix+"*")
		if err != nil {
			return nil, err
		}
		candidates = all
	} else {
		for _, prefix := range prefixes {
			batch, err := s.scanIncidents(ctx, incidentKeyPrefix+prefix+"*")
			if err != nil {
				return nil, err
			}
			candidates = append(candidates, batch...)
		}
	}

	now := time.Now()
	matched := make([]*models.Incident, 0, len(candidates))
	for _, incident := range candidates {
		if !incident.Type.IsHazard() {
			continue
		}
		if !bounds.Contains(incident.Lat, incident.Lng) {
			continue
		}
		if now.Sub(incident.Timestamp) > maxAge {
			continue
		}
		matched = append(matched, incident)
	}
	return dedupeByNewest(matched), nil
}

// DeleteOlderThan удаляет инциденты старше cutoff
func (s *RedisIncidentStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	deleted := 0
	iter := s.client.Scan(ctx, 0, incidentKeyPrefix+"*", scanBatchSize).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		incident, err := s.getIncident(ctx, key)
		if err != nil {
			// Нечитаемая запись остаётся в хранилище, но пропуск должен быть виден
			s.logger.WithError(err).WithField("key", key).Warn("Skipping unreadable incident record during cleanup")
			continue
		}
		if incident == nil {
			continue
		}
		if incident.Timestamp.Before(cutoff) {
			if err := s.client.Del(ctx, key).Err(); err != nil {
				return deleted, newStorageError("delete incident", err)
			}
			deleted++
		}
	}
	if err := iter.Err(); err != nil {
		return deleted, newStorageError("scan incidents for cleanup", err)
	}
	return deleted, nil
}

func (s *RedisIncidentStore) storageKey(incident *models.Incident) string {
	bucket := geo.BucketKey(incident.Lat, incident.Lng)
	return fmt.Sprintf("%s%s:%s", incidentKeyPrefix, bucket, incident.ID)
}

func (s *RedisIncidentStore) scanIncidents(ctx context.Context, pattern string) ([]*models.Incident, error) {
	incidents := make([]*models.Incident, 0)
	iter := s.client.Scan(ctx, 0, pattern, scanBatchSize).Iterator()
	for iter.Next(ctx) {
		incident, err := s.getIncident(ctx, iter.Val())
		if err != nil {
			return nil, err
		}
		if incident != nil {
			incidents = append(incidents, incident)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, newStorageError("scan incidents", err)
	}
	return incidents, nil
}

func (s *RedisIncidentStore) getIncident(ctx context.Context, key string) (*models.Incident, error) {
	val, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, newStorageError("get incident", err)
	}

	incident := &models.Incident{}
	if err := json.Unmarshal(val, incident); err != nil {
		return nil, newStorageError("unmarshal incident", err)
	}
	return incident, nil
}
