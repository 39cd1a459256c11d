package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/storm_route_system/internal/geo"
	"github.com/shenikar/storm_route_system/internal/models"
	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRedisStore поднимает встроенный Redis-сервер и хранилище над ним
func newTestRedisStore(t *testing.T) (*RedisIncidentStore, *miniredis.Miniredis, *logrustest.Hook) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	logger, hook := logrustest.NewNullLogger()
	return NewRedisIncidentStore(client, logger), mr, hook
}

func TestRedisStore_CreateAndListAll(t *testing.T) {
	// Подготовка
	store, _, _ := newTestRedisStore(t)
	ctx := context.Background()
	incident := &models.Incident{
		Lat:         26.1224,
		Lng:         -80.1373,
		Type:        models.TypeDebrisRoad,
		Description: "tree down",
		ReportedBy:  "Anonymous",
	}

	// Действие
	require.NoError(t, store.Create(ctx, incident))

	// Проверки: хранилище назначило идентичность
	assert.NotEqual(t, [16]byte{}, [16]byte(incident.ID))
	assert.False(t, incident.Timestamp.IsZero())

	listed, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, incident.ID, listed[0].ID)
	assert.InDelta(t, 26.1224, listed[0].Lat, 1e-9)
	assert.Equal(t, models.TypeDebrisRoad, listed[0].Type)
}

func TestRedisStore_QueryHazardsNear(t *testing.T) {
	// Подготовка: препятствие в коридоре, препятствие вдали, ресурс в коридоре
	store, _, _ := newTestRedisStore(t)
	ctx := context.Background()

	inCorridor := &models.Incident{Lat: 26.1224, Lng: -80.1373, Type: models.TypeDebrisRoad, Description: "in"}
	farAway := &models.Incident{Lat: 27.5, Lng: -81.5, Type: models.TypeDownedPowerline, Description: "far"}
	resource := &models.Incident{Lat: 26.13, Lng: -80.14, Type: models.TypeShelterAvailable, Description: "shelter"}
	for _, incident := range []*models.Incident{inCorridor, farAway, resource} {
		require.NoError(t, store.Create(ctx, incident))
	}

	bounds := geo.RouteBounds(26.0, -80.2, 26.2, -80.1, 2)

	// Действие
	hazards, err := store.QueryHazardsNear(ctx, bounds, 24*time.Hour)

	// Проверки: только свежее препятствие внутри границ
	require.NoError(t, err)
	require.Len(t, hazards, 1)
	assert.Equal(t, inCorridor.ID, hazards[0].ID)
}

func TestRedisStore_DeleteOlderThanSkipsUnreadableRecord(t *testing.T) {
	// Подготовка: валидная запись и повреждённая запись под тем же префиксом
	store, mr, hook := newTestRedisStore(t)
	ctx := context.Background()

	valid := &models.Incident{Lat: 26.1, Lng: -80.1, Type: models.TypeDebrisRoad, Description: "old"}
	require.NoError(t, store.Create(ctx, valid))

	corruptKey := incidentKeyPrefix + "116100_99900:not-a-uuid"
	require.NoError(t, mr.Set(corruptKey, "{not json"))

	// Действие: cutoff в будущем, валидная запись подлежит удалению
	deleted, err := store.DeleteOlderThan(ctx, time.Now().Add(time.Hour))

	// Проверки: валидная запись удалена, повреждённая пропущена с предупреждением
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)
	assert.True(t, mr.Exists(corruptKey))

	warned := false
	for _, entry := range hook.Entries {
		if entry.Level == logrus.WarnLevel && entry.Message == "Skipping unreadable incident record during cleanup" {
			warned = true
			assert.Equal(t, corruptKey, entry.Data["key"])
		}
	}
	assert.True(t, warned, "cleanup should log the skipped record")
}
