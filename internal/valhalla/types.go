package valhalla

import "github.com/shenikar/storm_route_system/internal/models"

// Режимы передвижения, поддерживаемые провайдером
const (
	CostingAuto       = "auto"
	CostingBicycle    = "bicycle"
	CostingPedestrian = "pedestrian"
)

// routeRequest - тело запроса к POST {base}/route
type routeRequest struct {
	Locations         []models.Location `json:"locations"`
	Costing           string            `json:"costing"`
	Exclude           *excludeLocations `json:"exclude,omitempty"`
	DirectionsOptions directionsOptions `json:"directions_options"`
}

type excludeLocations struct {
	Locations []models.ExclusionPoint `json:"locations"`
}

type directionsOptions struct {
	Units string `json:"units"`
}

// Maneuver - один манёвр в ноге маршрута
type Maneuver struct {
	Type                           int      `json:"type"`
	Instruction                    string   `json:"instruction"`
	VerbalPreTransitionInstruction string   `json:"verbal_pre_transition_instruction,omitempty"`
	StreetNames                    []string `json:"street_names,omitempty"`
	Time                           float64  `json:"time"`
	Length                         float64  `json:"length"`
	BeginShapeIndex                int      `json:"begin_shape_index"`
	EndShapeIndex                  int      `json:"end_shape_index"`
}

// TripSummary - сводка маршрута или его ноги
type TripSummary struct {
	Time   float64 `json:"time"`
	Length float64 `json:"length"`
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// RouteLeg - нога маршрута; Shape - закодированная полилиния (масштаб 1e-6)
type RouteLeg struct {
	Maneuvers []Maneuver  `json:"maneuvers"`
	Summary   TripSummary `json:"summary"`
	Shape     string      `json:"shape"`
}

// Trip несёт собственный код статуса провайдера внутри полезной нагрузки.
// Ненулевой Status - ошибка, даже если HTTP-вызов прошёл успешно.
type Trip struct {
	Locations     []models.Location `json:"locations"`
	Legs          []RouteLeg        `json:"legs"`
	Summary       TripSummary       `json:"summary"`
	StatusMessage string            `json:"status_message"`
	Status        int               `json:"status"`
	Units         string            `json:"units"`
}

// RouteResponse - полный ответ провайдера
type RouteResponse struct {
	Trip Trip `json:"trip"`
}

// RouteOptionsResult - пара маршрутов для сравнения.
// AvoidedIncidents по контракту равен числу переданных исключений,
// а не измеренной разнице путей.
type RouteOptionsResult struct {
	Optimal          *RouteResponse
	Baseline         *RouteResponse
	AvoidedIncidents int
}
