package valhalla

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/shenikar/storm_route_system/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL - публичный инстанс Valhalla на OpenStreetMap
	DefaultBaseURL = "https://valhalla1.openstreetmap.de"

	// DefaultMinInterval - провайдер ограничивает 1 вызов/сек на пользователя,
	// 1.1 секунды с запасом
	DefaultMinInterval = 1100 * time.Millisecond

	DefaultTimeout = 10 * time.Second
)

// Client - шлюз к единственному внешнему маршрутизатору. Дроссель общий на
// весь процесс: limiter сериализует исходящие вызовы с минимальным
// интервалом, лишние вызовы ждут, а не падают.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *logrus.Logger
}

func NewClient(baseURL string, timeout, minInterval time.Duration, logger *logrus.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if minInterval <= 0 {
		minInterval = DefaultMinInterval
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Every(minInterval), 1),
		logger:  logger,
	}
}

// Route вычисляет маршрут между двумя точками с объездом исключений
func (c *Client) Route(ctx context.Context, start, end models.Location, exclusions []models.ExclusionPoint, costing string) (*RouteResponse, error) {
	if costing == "" {
		costing = CostingAuto
	}

	req := &routeRequest{
		Locations:         []models.Location{start, end},
		Costing:           costing,
		DirectionsOptions: directionsOptions{Units: "miles"},
	}
	if len(exclusions) > 0 {
		req.Exclude = &excludeLocations{Locations: exclusions}
	}

	return c.calculateRoute(ctx, req)
}

// RouteOptions вычисляет оптимальный маршрут с исключениями и базовый без них.
// Вызовы строго последовательные: оба проходят через общий дроссель.
// При таймауте/ошибке шлюза делается одна повторная попытка без исключений,
// её результат используется и как оптимальный, и как базовый.
func (c *Client) RouteOptions(ctx context.Context, start, end models.Location, exclusions []models.ExclusionPoint, costing string) (*RouteOptionsResult, error) {
	log := c.logger.WithFields(logrus.Fields{
		"client":     "valhalla",
		"method":     "RouteOptions",
		"exclusions": len(exclusions),
	})

	result, err := c.routeOptions(ctx, start, end, exclusions, costing, log)
	if err == nil {
		return result, nil
	}

	if isGatewayTimeout(err) {
		log.WithError(err).Warn("Provider timeout, retrying once without exclusions")
		simple, retryErr := c.Route(ctx, start, end, nil, costing)
		if retryErr == nil {
			return &RouteOptionsResult{
				Optimal:          simple,
				Baseline:         simple,
				AvoidedIncidents: 0,
			}, nil
		}
		log.WithError(retryErr).Error("Fallback route also failed")
		// Наружу уходит исходная ошибка, не ошибка повторной попытки
	}

	return nil, err
}

func (c *Client) routeOptions(ctx context.Context, start, end models.Location, exclusions []models.ExclusionPoint, costing string, log *logrus.Entry) (*RouteOptionsResult, error) {
	log.Info("Calculating optimal route with incident exclusions")
	optimal, err := c.Route(ctx, start, end, exclusions, costing)
	if err != nil {
		return nil, err
	}

	log.Info("Calculating baseline route without exclusions")
	baseline, err := c.Route(ctx, start, end, nil, costing)
	if err != nil {
		return nil, err
	}

	return &RouteOptionsResult{
		Optimal:          optimal,
		Baseline:         baseline,
		AvoidedIncidents: len(exclusions),
	}, nil
}

func (c *Client) calculateRoute(ctx context.Context, routeReq *routeRequest) (*RouteResponse, error) {
	// Дроссель: ждём своей очереди, вызов никогда не отклоняется из-за темпа
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	payload, err := json.Marshal(routeReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal route request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/route", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create route request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("route request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &ProviderError{
			HTTPStatus: resp.StatusCode,
			Message:    string(body),
		}
	}

	routeResp := &RouteResponse{}
	if err := json.NewDecoder(resp.Body).Decode(routeResp); err != nil {
		return nil, fmt.Errorf("failed to decode route response: %w", err)
	}

	// Провайдер может сообщить об ошибке внутри успешного HTTP-ответа
	if routeResp.Trip.Status != 0 {
		return nil, &ProviderError{
			TripStatus: routeResp.Trip.Status,
			Message:    routeResp.Trip.StatusMessage,
		}
	}

	return routeResp, nil
}

// FormatRouteSummary сводит маршрут к милям с одним знаком, целым минутам
// и ограничивающему прямоугольнику
func FormatRouteSummary(route *RouteResponse) models.RouteSummary {
	summary := route.Trip.Summary
	return models.RouteSummary{
		DistanceMiles:   math.Round(summary.Length*10) / 10,
		DurationMinutes: int(math.Round(summary.Time / 60)),
		DurationSeconds: summary.Time,
		Bounds: models.RouteBoundingBox{
			MinLat: summary.MinLat,
			MinLon: summary.MinLon,
			MaxLat: summary.MaxLat,
			MaxLon: summary.MaxLon,
		},
	}
}

// ExtractDirections разворачивает манёвры всех ног маршрута по порядку
func ExtractDirections(route *RouteResponse) []models.RouteDirection {
	directions := make([]models.RouteDirection, 0)
	for _, leg := range route.Trip.Legs {
		for _, maneuver := range leg.Maneuvers {
			directions = append(directions, models.RouteDirection{
				Instruction:     maneuver.Instruction,
				DistanceMiles:   math.Round(maneuver.Length*10) / 10,
				DurationSeconds: math.Round(maneuver.Time),
				StreetNames:     maneuver.StreetNames,
			})
		}
	}
	return directions
}

// Geometry возвращает закодированную полилинию первой ноги маршрута как есть
func Geometry(route *RouteResponse) string {
	if len(route.Trip.Legs) == 0 {
		return ""
	}
	return route.Trip.Legs[0].Shape
}

// FormatRoute собирает маршрут в пригодный для клиента вид
func FormatRoute(route *RouteResponse) *models.FormattedRoute {
	return &models.FormattedRoute{
		Summary:    FormatRouteSummary(route),
		Directions: ExtractDirections(route),
		Geometry:   Geometry(route),
	}
}
