package service

//go:generate mockgen -source=route.go -destination=mocks/mock_route.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/shenikar/storm_route_system/internal/models"
	"github.com/shenikar/storm_route_system/internal/valhalla"
	"github.com/sirupsen/logrus"
)

// Фиксированная пара координат для смоук-теста маршрутизатора:
// Майами -> Уэст-Палм-Бич
var (
	testRouteStart = models.Location{Lat: 25.7617, Lon: -80.1918}
	testRouteEnd   = models.Location{Lat: 26.7153, Lon: -80.0534}
)

// RouteClient определяет контракт шлюза внешнего маршрутизатора
type RouteClient interface {
	Route(ctx context.Context, start, end models.Location, exclusions []models.ExclusionPoint, costing string) (*valhalla.RouteResponse, error)
	RouteOptions(ctx context.Context, start, end models.Location, exclusions []models.ExclusionPoint, costing string) (*valhalla.RouteOptionsResult, error)
}

// RouteService определяет контракт оркестратора расчёта маршрутов
type RouteService interface {
	CalculateRoute(ctx context.Context, params models.RouteParams) (*models.RouteCalculation, error)
	SimpleRoute(ctx context.Context, start, end models.Location, costing string) (*models.FormattedRoute, error)
	TestRoute(ctx context.Context) (*models.RouteTestReport, error)
}

type routeService struct {
	incidents IncidentService
	client    RouteClient
	logger    *logrus.Logger
}

func NewRouteService(incidents IncidentService, client RouteClient, logger *logrus.Logger) RouteService {
	return &routeService{
		incidents: incidents,
		client:    client,
		logger:    logger,
	}
}

// CalculateRoute - один цикл запрос/ответ: валидация, разрешение исключений,
// пара вызовов маршрутизатора и замер общего времени. Отказ разрешения
// исключений не фатален: маршрут всё равно считается, но без объездов.
func (s *routeService) CalculateRoute(ctx context.Context, params models.RouteParams) (*models.RouteCalculation, error) {
	started := time.Now()

	log := s.logger.WithFields(logrus.Fields{
		"service": "route",
		"method":  "CalculateRoute",
		"costing": params.Costing,
	})

	if err := validateRouteParams(params); err != nil {
		return nil, err
	}

	var exclusions []models.ExclusionPoint
	if params.AvoidIncidents {
		corridor := &models.RouteCorridor{
			Start:    *params.Start,
			End:      *params.End,
			BufferKm: params.BufferKm,
		}
		resolved, err := s.incidents.ResolveExclusions(ctx, corridor)
		if err != nil {
			// Продолжаем без исключений, а не роняем весь запрос
			log.WithError(err).Warn("Failed to resolve exclusions, continuing without them")
		} else {
			exclusions = resolved
			log.WithField("count", len(exclusions)).Info("Found incidents to avoid along route")
		}
	}

	result, err := s.client.RouteOptions(ctx, *params.Start, *params.End, exclusions, params.Costing)
	if err != nil {
		log.WithError(err).Error("Failed to calculate route options")
		return nil, fmt.Errorf("service: could not calculate route: %w", err)
	}

	calculation := &models.RouteCalculation{
		OptimalRoute:      valhalla.FormatRoute(result.Optimal),
		BaselineRoute:     valhalla.FormatRoute(result.Baseline),
		AvoidedIncidents:  result.AvoidedIncidents,
		ExclusionsUsed:    exclusions,
		CalculationTimeMs: time.Since(started).Milliseconds(),
	}

	log.WithFields(logrus.Fields{
		"distance_miles":   calculation.OptimalRoute.Summary.DistanceMiles,
		"duration_minutes": calculation.OptimalRoute.Summary.DurationMinutes,
		"avoided":          calculation.AvoidedIncidents,
	}).Info("Route calculated")

	return calculation, nil
}

// SimpleRoute считает маршрут без всякой логики исключений
func (s *routeService) SimpleRoute(ctx context.Context, start, end models.Location, costing string) (*models.FormattedRoute, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "route",
		"method":  "SimpleRoute",
	})

	if err := validateLocation("start", &start); err != nil {
		return nil, err
	}
	if err := validateLocation("end", &end); err != nil {
		return nil, err
	}

	route, err := s.client.Route(ctx, start, end, nil, costing)
	if err != nil {
		log.WithError(err).Error("Failed to calculate simple route")
		return nil, fmt.Errorf("service: could not calculate simple route: %w", err)
	}

	return valhalla.FormatRoute(route), nil
}

// TestRoute выполняет смоук-тест провайдера на фиксированной паре координат
func (s *routeService) TestRoute(ctx context.Context) (*models.RouteTestReport, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "route",
		"method":  "TestRoute",
	})

	route, err := s.client.Route(ctx, testRouteStart, testRouteEnd, nil, valhalla.CostingAuto)
	if err != nil {
		log.WithError(err).Error("Route test failed")
		return nil, fmt.Errorf("service: route test failed: %w", err)
	}

	summary := valhalla.FormatRouteSummary(route)
	return &models.RouteTestReport{
		DistanceMiles:   summary.DistanceMiles,
		DurationMinutes: summary.DurationMinutes,
		Status:          route.Trip.StatusMessage,
	}, nil
}

// validateRouteParams проверяет обязательные входы до любой работы,
// маршрутизатор при невалидном запросе не вызывается
func validateRouteParams(params models.RouteParams) error {
	if err := validateLocation("start", params.Start); err != nil {
		return err
	}
	if err := validateLocation("end", params.End); err != nil {
		return err
	}
	switch params.Costing {
	case "", valhalla.CostingAuto, valhalla.CostingBicycle, valhalla.CostingPedestrian:
	default:
		return newValidationError("costing", fmt.Sprintf("unknown costing mode %q", params.Costing))
	}
	if params.BufferKm < 0 {
		return newValidationError("buffer_km", "must not be negative")
	}
	return nil
}

func validateLocation(field string, loc *models.Location) error {
	if loc == nil {
		return newValidationError(field, "is required with lat/lon")
	}
	if loc.Lat < -90 || loc.Lat > 90 {
		return newValidationError(field+".lat", "must be between -90 and 90")
	}
	if loc.Lon < -180 || loc.Lon > 180 {
		return newValidationError(field+".lon", "must be between -180 and 180")
	}
	return nil
}
