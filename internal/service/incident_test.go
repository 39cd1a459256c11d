package service

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/storm_route_system/internal/config"
	"github.com/shenikar/storm_route_system/internal/models"
	"github.com/shenikar/storm_route_system/internal/service/mocks"
	"github.com/shenikar/storm_route_system/internal/webhook"
	webhook_mocks "github.com/shenikar/storm_route_system/internal/webhook/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestIncidentService — вспомогательная функция для создания инстанса сервиса с моками.
func newTestIncidentService(t *testing.T) (*incidentService, *mocks.MockIncidentStore, *webhook_mocks.MockHazardPublisher) {
	ctrl := gomock.NewController(t)
	storeMock := mocks.NewMockIncidentStore(ctrl)
	publisherMock := webhook_mocks.NewMockHazardPublisher(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		DefaultBufferKm:   2,
		HazardMaxAgeHours: 24,
	}

	service := NewIncidentService(storeMock, logger, cfg, publisherMock)
	return service.(*incidentService), storeMock, publisherMock
}

func TestCreateIncident_HazardPublishesEvent(t *testing.T) {
	// Подготовка
	service, storeMock, publisherMock := newTestIncidentService(t)
	ctx := context.Background()
	incident := &models.Incident{
		Lat:         26.1224,
		Lng:         -80.1373,
		Type:        models.TypeDebrisRoad,
		Description: "tree down",
	}

	assignedID := uuid.New()
	now := time.Now()

	// Ожидания
	storeMock.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, inc *models.Incident) error {
			// Симулируем, что хранилище присвоило идентичность
			inc.ID = assignedID
			inc.Timestamp = now
			return nil
		}).Times(1)

	publisherMock.EXPECT().
		Publish(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, event webhook.HazardEvent) error {
			assert.Equal(t, assignedID, event.IncidentID)
			assert.Equal(t, models.TypeDebrisRoad, event.Type)
			return nil
		}).Times(1)

	// Действие
	err := service.CreateIncident(ctx, incident)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, assignedID, incident.ID)
	assert.Equal(t, models.AnonymousReporter, incident.ReportedBy)
}

func TestCreateIncident_ResourceDoesNotPublish(t *testing.T) {
	// Подготовка
	service, storeMock, publisherMock := newTestIncidentService(t)
	ctx := context.Background()
	incident := &models.Incident{
		Lat:         26.1,
		Lng:         -80.1,
		Type:        models.TypeFoodAvailable,
		Description: "food distribution point",
	}

	// Ожидания
	storeMock.EXPECT().Create(ctx, gomock.Any()).Return(nil).Times(1)
	publisherMock.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	err := service.CreateIncident(ctx, incident)

	// Проверки
	require.NoError(t, err)
}

func TestCreateIncident_PublishFailureDoesNotFailCreate(t *testing.T) {
	// Подготовка
	service, storeMock, publisherMock := newTestIncidentService(t)
	ctx := context.Background()
	incident := &models.Incident{
		Lat:         26.1,
		Lng:         -80.1,
		Type:        models.TypeDownedPowerline,
		Description: "line across the road",
	}

	// Ожидания
	storeMock.EXPECT().Create(ctx, gomock.Any()).Return(nil).Times(1)
	publisherMock.EXPECT().Publish(ctx, gomock.Any()).Return(fmt.Errorf("queue down")).Times(1)

	// Действие
	err := service.CreateIncident(ctx, incident)

	// Проверки
	require.NoError(t, err)
}

func TestCreateIncident_MissingType(t *testing.T) {
	// Подготовка
	service, storeMock, _ := newTestIncidentService(t)
	ctx := context.Background()

	// Ожидания: хранилище не должно вызываться
	storeMock.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	err := service.CreateIncident(ctx, &models.Incident{Description: "no type"})

	// Проверки
	require.Error(t, err)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "type", validationErr.Field)
}

func TestCreateIncident_UnknownType(t *testing.T) {
	// Подготовка
	service, storeMock, _ := newTestIncidentService(t)
	ctx := context.Background()

	storeMock.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	err := service.CreateIncident(ctx, &models.Incident{Type: "alien_invasion", Description: "??"})

	// Проверки
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestCreateIncident_MissingDescription(t *testing.T) {
	// Подготовка
	service, storeMock, _ := newTestIncidentService(t)
	ctx := context.Background()

	storeMock.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	err := service.CreateIncident(ctx, &models.Incident{Type: models.TypeDebrisRoad})

	// Проверки
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "description", validationErr.Field)
}

func TestCreateIncident_KeepsReporterWhenGiven(t *testing.T) {
	// Подготовка
	service, storeMock, _ := newTestIncidentService(t)
	ctx := context.Background()
	incident := &models.Incident{
		Type:        models.TypeGasAvailable,
		Description: "gas station open",
		ReportedBy:  "resident-42",
	}

	storeMock.EXPECT().Create(ctx, gomock.Any()).Return(nil).Times(1)

	// Действие
	require.NoError(t, service.CreateIncident(ctx, incident))

	// Проверки
	assert.Equal(t, "resident-42", incident.ReportedBy)
}

func TestResolveExclusions_CorridorQueriesBufferedBounds(t *testing.T) {
	// Подготовка
	service, storeMock, _ := newTestIncidentService(t)
	ctx := context.Background()
	corridor := &models.RouteCorridor{
		Start:    models.Location{Lat: 26.0, Lon: -80.2},
		End:      models.Location{Lat: 26.2, Lon: -80.1},
		BufferKm: 5,
	}

	hazard := &models.Incident{
		ID:        uuid.New(),
		Lat:       26.1224,
		Lng:       -80.1373,
		Type:      models.TypeDebrisRoad,
		Timestamp: time.Now(),
	}

	// Ожидания
	storeMock.EXPECT().
		QueryHazardsNear(ctx, gomock.Any(), 24*time.Hour).
		DoAndReturn(func(_ context.Context, bounds models.SpatialBounds, _ time.Duration) ([]*models.Incident, error) {
			// Границы расширены на buffer/111 градусов
			buffer := 5.0 / 111.0
			assert.InDelta(t, 26.2+buffer, bounds.North, 1e-9)
			assert.InDelta(t, 26.0-buffer, bounds.South, 1e-9)
			assert.InDelta(t, -80.1+buffer, bounds.East, 1e-9)
			assert.InDelta(t, -80.2-buffer, bounds.West, 1e-9)
			return []*models.Incident{hazard}, nil
		}).Times(1)

	// Действие
	exclusions, err := service.ResolveExclusions(ctx, corridor)

	// Проверки: переименование lng -> lon на границе с провайдером
	require.NoError(t, err)
	require.Len(t, exclusions, 1)
	assert.InDelta(t, 26.1224, exclusions[0].Lat, 1e-9)
	assert.InDelta(t, -80.1373, exclusions[0].Lon, 1e-9)
}

func TestResolveExclusions_ZeroBufferUsesDefault(t *testing.T) {
	// Подготовка
	service, storeMock, _ := newTestIncidentService(t)
	ctx := context.Background()
	corridor := &models.RouteCorridor{
		Start: models.Location{Lat: 26.0, Lon: -80.2},
		End:   models.Location{Lat: 26.2, Lon: -80.1},
	}

	storeMock.EXPECT().
		QueryHazardsNear(ctx, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, bounds models.SpatialBounds, _ time.Duration) ([]*models.Incident, error) {
			// Буфер по умолчанию из конфигурации: 2 км
			assert.InDelta(t, 26.2+2.0/111.0, bounds.North, 1e-9)
			return nil, nil
		}).Times(1)

	// Действие
	exclusions, err := service.ResolveExclusions(ctx, corridor)

	// Проверки
	require.NoError(t, err)
	assert.Empty(t, exclusions)
}

func TestResolveExclusions_NoCorridorFallsBackToAllRecentHazards(t *testing.T) {
	// Подготовка
	service, storeMock, _ := newTestIncidentService(t)
	ctx := context.Background()
	now := time.Now()

	recentHazard := &models.Incident{ID: uuid.New(), Lat: 26.1, Lng: -80.1, Type: models.TypeDebrisRoad, Timestamp: now.Add(-time.Hour)}
	staleHazard := &models.Incident{ID: uuid.New(), Lat: 26.2, Lng: -80.2, Type: models.TypeDownedPowerline, Timestamp: now.Add(-25 * time.Hour)}
	resource := &models.Incident{ID: uuid.New(), Lat: 26.3, Lng: -80.3, Type: models.TypeShelterAvailable, Timestamp: now}

	// Ожидания: деградированный режим идёт через ListAll, не через QueryHazardsNear
	storeMock.EXPECT().
		ListAll(ctx).
		Return([]*models.Incident{recentHazard, staleHazard, resource}, nil).
		Times(1)
	storeMock.EXPECT().QueryHazardsNear(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	// Действие
	exclusions, err := service.ResolveExclusions(ctx, nil)

	// Проверки: только свежее препятствие
	require.NoError(t, err)
	require.Len(t, exclusions, 1)
	assert.InDelta(t, 26.1, exclusions[0].Lat, 1e-9)
}

func TestResolveExclusions_StoreError(t *testing.T) {
	// Подготовка
	service, storeMock, _ := newTestIncidentService(t)
	ctx := context.Background()
	corridor := &models.RouteCorridor{
		Start: models.Location{Lat: 26.0, Lon: -80.2},
		End:   models.Location{Lat: 26.2, Lon: -80.1},
	}

	storeMock.EXPECT().
		QueryHazardsNear(ctx, gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("store down")).
		Times(1)

	// Действие
	_, err := service.ResolveExclusions(ctx, corridor)

	// Проверки
	require.Error(t, err)
	assert.ErrorContains(t, err, "could not resolve exclusions")
}

func TestCleanupOldIncidents(t *testing.T) {
	// Подготовка
	service, storeMock, _ := newTestIncidentService(t)
	ctx := context.Background()

	storeMock.EXPECT().
		DeleteOlderThan(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, cutoff time.Time) (int, error) {
			assert.WithinDuration(t, time.Now().Add(-7*24*time.Hour), cutoff, time.Minute)
			return 3, nil
		}).Times(1)

	// Действие
	deleted, err := service.CleanupOldIncidents(ctx, 7*24*time.Hour)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, 3, deleted)
}
