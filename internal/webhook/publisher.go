package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/storm_route_system/internal/models"
)

const (
	hazardQueueKey = "hazard_alerts"
)

// HazardEvent - событие о новом препятствии на дороге для внешних подписчиков
type HazardEvent struct {
	IncidentID  uuid.UUID           `json:"incident_id"`
	Type        models.IncidentType `json:"type"`
	Lat         float64             `json:"lat"`
	Lng         float64             `json:"lng"`
	Description string              `json:"description"`
	ReportedAt  time.Time           `json:"reported_at"`
}

// HazardPublisher - интерфейс для публикации событий о препятствиях
type HazardPublisher interface {
	Publish(ctx context.Context, event HazardEvent) error
}

// RedisHazardPublisher - реализация HazardPublisher, использующая Redis
type RedisHazardPublisher struct {
	redisClient *redis.Client
}

func NewRedisHazardPublisher(client *redis.Client) *RedisHazardPublisher {
	return &RedisHazardPublisher{
		redisClient: client,
	}
}

// Publish публикует событие о препятствии в очередь Redis
func (p *RedisHazardPublisher) Publish(ctx context.Context, event HazardEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal hazard event: %w", err)
	}

	// LPUSH добавляет событие в левую часть списка (очереди)
	if err := p.redisClient.LPush(ctx, hazardQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish hazard event to Redis: %w", err)
	}
	return nil
}
