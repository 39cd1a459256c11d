package models

// RouteBoundingBox - ограничивающий прямоугольник маршрута из ответа провайдера
type RouteBoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// RouteSummary - краткая сводка маршрута для ответа API
type RouteSummary struct {
	DistanceMiles   float64          `json:"distance_miles"`
	DurationMinutes int              `json:"duration_minutes"`
	DurationSeconds float64          `json:"duration_seconds"`
	Bounds          RouteBoundingBox `json:"bounds"`
}

// RouteDirection - один шаг пошаговой инструкции
type RouteDirection struct {
	Instruction     string   `json:"instruction"`
	DistanceMiles   float64  `json:"distance_miles"`
	DurationSeconds float64  `json:"duration_seconds"`
	StreetNames     []string `json:"street_names,omitempty"`
}

// FormattedRoute - маршрут в пригодном для клиента виде.
// Geometry - закодированная полилиния провайдера, передаётся как есть.
type FormattedRoute struct {
	Summary    RouteSummary     `json:"summary"`
	Directions []RouteDirection `json:"directions"`
	Geometry   string           `json:"geometry"`
}

// RouteParams - входные параметры расчёта маршрута
type RouteParams struct {
	Start          *Location
	End            *Location
	Costing        string
	AvoidIncidents bool
	BufferKm       float64
}

// RouteCalculation - итоговый результат оркестратора маршрутов
type RouteCalculation struct {
	OptimalRoute      *FormattedRoute  `json:"optimal_route"`
	BaselineRoute     *FormattedRoute  `json:"baseline_route"`
	AvoidedIncidents  int              `json:"avoided_incidents"`
	ExclusionsUsed    []ExclusionPoint `json:"exclusions_used"`
	CalculationTimeMs int64            `json:"calculation_time_ms"`
}

// RouteTestReport - результат смоук-теста маршрутизатора
type RouteTestReport struct {
	DistanceMiles   float64 `json:"distance_miles"`
	DurationMinutes int     `json:"duration_minutes"`
	Status          string  `json:"status"`
}
