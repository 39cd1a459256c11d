package v1

import (
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/storm_route_system/internal/models"
)

// LocationDTO - точка маршрута в контракте провайдера (lat/lon).
// Указатели различают отсутствующую координату и валидный ноль.
// @Description Точка маршрута с координатами lat/lon
type LocationDTO struct {
	Lat *float64 `json:"lat" validate:"required,latitude"`
	Lon *float64 `json:"lon" validate:"required,longitude"`
}

// IncidentLocationDTO - координаты инцидента в публичном контракте (lat/lng)
// @Description Координаты инцидента с полями lat/lng
type IncidentLocationDTO struct {
	Lat *float64 `json:"lat" validate:"required,latitude"`
	Lng *float64 `json:"lng" validate:"required,longitude"`
}

// CreateIncidentRequest DTO для создания инцидента
// @Description DTO для создания инцидента
type CreateIncidentRequest struct {
	Type        string               `json:"type" validate:"required,oneof=debris_road downed_powerline food_available gas_available power_available shelter_available"`
	Description string               `json:"description" validate:"required"`
	Location    *IncidentLocationDTO `json:"location" validate:"required"`
	ReportedBy  string               `json:"reportedBy,omitempty"`
}

// IncidentResponse DTO для ответа с информацией об инциденте
// @Description DTO для ответа с информацией об инциденте
type IncidentResponse struct {
	ID          uuid.UUID `json:"id"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
	ReportedBy  string    `json:"reportedBy"`
}

// ExclusionsResponse DTO для списка точек объезда в формате маршрутизатора
// @Description Список точек объезда в формате маршрутизатора
type ExclusionsResponse struct {
	ExcludeLocations []models.ExclusionPoint `json:"exclude_locations"`
	Count            int                     `json:"count"`
}

// RouteCalculationRequest DTO для расчёта маршрута с объездом препятствий
// @Description DTO для расчёта маршрута с объездом препятствий
type RouteCalculationRequest struct {
	Start          *LocationDTO `json:"start" validate:"required"`
	End            *LocationDTO `json:"end" validate:"required"`
	Costing        string       `json:"costing,omitempty" validate:"omitempty,oneof=auto bicycle pedestrian"`
	AvoidIncidents *bool        `json:"avoid_incidents,omitempty"`
	BufferKm       float64      `json:"buffer_km,omitempty" validate:"omitempty,gt=0"`
}

// SimpleRouteRequest DTO для расчёта маршрута без объездов
// @Description DTO для расчёта маршрута без объездов
type SimpleRouteRequest struct {
	Start   *LocationDTO `json:"start" validate:"required"`
	End     *LocationDTO `json:"end" validate:"required"`
	Costing string       `json:"costing,omitempty" validate:"omitempty,oneof=auto bicycle pedestrian"`
}

// RouteTestResponse DTO для ответа смоук-теста маршрутизатора
// @Description DTO для ответа смоук-теста маршрутизатора
type RouteTestResponse struct {
	Message   string                  `json:"message"`
	TestRoute *models.RouteTestReport `json:"test_route"`
}
