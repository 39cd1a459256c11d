package v1

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shenikar/storm_route_system/internal/config"
	"github.com/shenikar/storm_route_system/internal/geo"
	"github.com/shenikar/storm_route_system/internal/models"
	"github.com/shenikar/storm_route_system/internal/service"
	"github.com/shenikar/storm_route_system/internal/valhalla"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	incidentService service.IncidentService
	routeService    service.RouteService
	logger          *logrus.Logger
	validate        *validator.Validate
	cfg             *config.Config
}

func NewHandler(incidentService service.IncidentService, routeService service.RouteService, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		incidentService: incidentService,
		routeService:    routeService,
		logger:          logger,
		validate:        validator.New(),
		cfg:             cfg,
	}
}

// @Summary Create a new incident report
// @Description Create a new road hazard or resource report
// @Tags Incidents
// @Accept json
// @Produce json
// @Param incident body CreateIncidentRequest true "Incident creation request"
// @Success 201 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents [post]
func (h *Handler) createIncident(c *gin.Context) {
	var input CreateIncidentRequest
	log := h.logger.WithField("method", "createIncident")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	model := DTOToIncidentModel(input)
	if err := h.incidentService.CreateIncident(c.Request.Context(), model); err != nil {
		h.writeServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToIncidentResponse(model))
}

// @Summary Get a list of incidents
// @Description Get all incident reports in creation order, optionally filtered by distance from a point
// @Tags Incidents
// @Accept json
// @Produce json
// @Param lat query number false "Filter center latitude"
// @Param lng query number false "Filter center longitude"
// @Param radius_km query number false "Filter radius in kilometers"
// @Success 200 {array} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid query parameter"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents [get]
func (h *Handler) listIncidents(c *gin.Context) {
	log := h.logger.WithField("method", "listIncidents")

	incidents, err := h.incidentService.ListIncidents(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to list incidents from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	filtered, err := applyRadiusQuery(c, incidents)
	if err != nil {
		log.WithError(err).Warn("Invalid radius query")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ModelsToIncidentResponses(filtered))
}

// @Summary Get exclusion points for routing
// @Description Get recent hazards as router exclusion points, optionally scoped to a route corridor
// @Tags Incidents
// @Accept json
// @Produce json
// @Param startLat query number false "Route start latitude"
// @Param startLng query number false "Route start longitude"
// @Param endLat query number false "Route end latitude"
// @Param endLng query number false "Route end longitude"
// @Param buffer query number false "Corridor buffer in kilometers"
// @Success 200 {object} ExclusionsResponse
// @Failure 400 {object} map[string]string "Invalid query parameter"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/exclusions [get]
func (h *Handler) getExclusions(c *gin.Context) {
	log := h.logger.WithField("method", "getExclusions")

	corridor, err := parseCorridorQuery(c, h.cfg.DefaultBufferKm)
	if err != nil {
		log.WithError(err).Warn("Invalid corridor query")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	exclusions, err := h.incidentService.ResolveExclusions(c.Request.Context(), corridor)
	if err != nil {
		log.WithError(err).Error("Failed to resolve exclusions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, ExclusionsResponse{
		ExcludeLocations: exclusions,
		Count:            len(exclusions),
	})
}

// @Summary Calculate a hazard-avoiding route
// @Description Calculate an optimal route around recent hazards plus a baseline route for comparison
// @Tags Routes
// @Accept json
// @Produce json
// @Param route body RouteCalculationRequest true "Route calculation request"
// @Success 200 {object} models.RouteCalculation
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 500 {object} map[string]string "Routing provider error"
// @Router /routes [post]
func (h *Handler) calculateRoute(c *gin.Context) {
	var input RouteCalculationRequest
	log := h.logger.WithField("method", "calculateRoute")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Объезд препятствий включён по умолчанию
	avoidIncidents := true
	if input.AvoidIncidents != nil {
		avoidIncidents = *input.AvoidIncidents
	}

	params := models.RouteParams{
		Start:          DTOToLocation(input.Start),
		End:            DTOToLocation(input.End),
		Costing:        input.Costing,
		AvoidIncidents: avoidIncidents,
		BufferKm:       input.BufferKm,
	}

	calculation, err := h.routeService.CalculateRoute(c.Request.Context(), params)
	if err != nil {
		h.writeRouteError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, calculation)
}

// @Summary Calculate a simple route
// @Description Calculate a route without any incident exclusions
// @Tags Routes
// @Accept json
// @Produce json
// @Param route body SimpleRouteRequest true "Simple route request"
// @Success 200 {object} models.FormattedRoute
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 500 {object} map[string]string "Routing provider error"
// @Router /routes/simple [post]
func (h *Handler) simpleRoute(c *gin.Context) {
	var input SimpleRouteRequest
	log := h.logger.WithField("method", "simpleRoute")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start := DTOToLocation(input.Start)
	end := DTOToLocation(input.End)
	route, err := h.routeService.SimpleRoute(c.Request.Context(), *start, *end, input.Costing)
	if err != nil {
		h.writeRouteError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, route)
}

// @Summary Test routing provider connectivity
// @Description Run a routing smoke test on a fixed pair of coordinates
// @Tags Routes
// @Accept json
// @Produce json
// @Success 200 {object} RouteTestResponse
// @Failure 500 {object} map[string]string "Routing provider error"
// @Router /routes/test [get]
func (h *Handler) testRoute(c *gin.Context) {
	log := h.logger.WithField("method", "testRoute")

	report, err := h.routeService.TestRoute(c.Request.Context())
	if err != nil {
		h.writeRouteError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, RouteTestResponse{
		Message:   "Valhalla routing is working",
		TestRoute: report,
	})
}

// @Summary Health check
// @Description Check if the service is up and running
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// writeServiceError переводит ошибки сервиса инцидентов в HTTP-статусы
func (h *Handler) writeServiceError(c *gin.Context, log *logrus.Entry, err error) {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		log.WithError(err).Warn("Validation failed in service")
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
		return
	}

	log.WithError(err).Error("Service call failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

// writeRouteError переводит ошибки расчёта маршрута в HTTP-статусы.
// Ошибка провайдера отдаётся с деталями, чтобы клиент видел причину.
func (h *Handler) writeRouteError(c *gin.Context, log *logrus.Entry, err error) {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		log.WithError(err).Warn("Validation failed in service")
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
		return
	}

	var providerErr *valhalla.ProviderError
	if errors.As(err, &providerErr) {
		log.WithError(err).Error("Routing provider failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to calculate route",
			"details": providerErr.Error(),
		})
		return
	}

	log.WithError(err).Error("Route calculation failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

// applyRadiusQuery применяет опциональный радиальный фильтр lat/lng/radius_km
// к списку инцидентов. Без всех трёх параметров список возвращается как есть.
func applyRadiusQuery(c *gin.Context, incidents []*models.Incident) ([]*models.Incident, error) {
	rawLat, rawLng, rawRadius := c.Query("lat"), c.Query("lng"), c.Query("radius_km")
	if rawLat == "" && rawLng == "" && rawRadius == "" {
		return incidents, nil
	}
	if rawLat == "" || rawLng == "" || rawRadius == "" {
		return nil, fmt.Errorf("lat, lng and radius_km must be given together")
	}

	lat, err := strconv.ParseFloat(rawLat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid query parameter lat: %q", rawLat)
	}
	lng, err := strconv.ParseFloat(rawLng, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid query parameter lng: %q", rawLng)
	}
	radiusKm, err := strconv.ParseFloat(rawRadius, 64)
	if err != nil || radiusKm <= 0 {
		return nil, fmt.Errorf("invalid query parameter radius_km: %q", rawRadius)
	}

	return geo.FilterByDistance(incidents, lat, lng, radiusKm), nil
}

// corridorQuery читает query-параметр коридора: основное имя - camelCase
// публичного контракта (startLat), snake_case принимается как алиас
func corridorQuery(c *gin.Context, name, alias string) string {
	if value := c.Query(name); value != "" {
		return value
	}
	return c.Query(alias)
}

// parseCorridorQuery собирает коридор маршрута из query-параметров
// startLat/startLng/endLat/endLng/buffer. Если хоть одна из четырёх
// координат отсутствует, возвращается nil: сервис перейдёт в деградированный
// режим всех свежих препятствий.
func parseCorridorQuery(c *gin.Context, defaultBufferKm float64) (*models.RouteCorridor, error) {
	raw := map[string]string{
		"startLat": corridorQuery(c, "startLat", "start_lat"),
		"startLng": corridorQuery(c, "startLng", "start_lng"),
		"endLat":   corridorQuery(c, "endLat", "end_lat"),
		"endLng":   corridorQuery(c, "endLng", "end_lng"),
	}
	for _, value := range raw {
		if value == "" {
			return nil, nil
		}
	}

	parsed := make(map[string]float64, len(raw))
	for name, value := range raw {
		number, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid query parameter %s: %q", name, value)
		}
		parsed[name] = number
	}
	for _, name := range []string{"startLat", "endLat"} {
		if parsed[name] < -90 || parsed[name] > 90 {
			return nil, fmt.Errorf("query parameter %s must be between -90 and 90", name)
		}
	}
	for _, name := range []string{"startLng", "endLng"} {
		if parsed[name] < -180 || parsed[name] > 180 {
			return nil, fmt.Errorf("query parameter %s must be between -180 and 180", name)
		}
	}

	bufferKm := defaultBufferKm
	if value := corridorQuery(c, "buffer", "buffer_km"); value != "" {
		number, err := strconv.ParseFloat(value, 64)
		if err != nil || number <= 0 {
			return nil, fmt.Errorf("invalid query parameter buffer: %q", value)
		}
		bufferKm = number
	}

	return &models.RouteCorridor{
		Start:    models.Location{Lat: parsed["startLat"], Lon: parsed["startLng"]},
		End:      models.Location{Lat: parsed["endLat"], Lon: parsed["endLng"]},
		BufferKm: bufferKm,
	}, nil
}
