package models

// Location - координата в формате маршрутизатора (lon, не lng)
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// ExclusionPoint - точка, которую маршрутизатор должен объехать.
// Переименование lng -> lon на этой границе является жёстким контрактом провайдера.
type ExclusionPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// SpatialBounds - прямоугольник в градусах вокруг коридора маршрута
type SpatialBounds struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// Contains проверяет попадание точки в прямоугольник, границы включительно
func (b SpatialBounds) Contains(lat, lng float64) bool {
	return lat >= b.South && lat <= b.North && lng >= b.West && lng <= b.East
}

// RouteCorridor - коридор маршрута для поиска препятствий рядом с ним
type RouteCorridor struct {
	Start    Location
	End      Location
	BufferKm float64
}
