package geo

import (
	"fmt"
	"math"

	"github.com/shenikar/storm_route_system/internal/models"
)

const (
	// earthRadiusKm - радиус Земли в километрах
	earthRadiusKm = 6371.0

	// kmPerDegree - грубое приближение: 1 градус ~ 111 км
	kmPerDegree = 111.0

	// bucketScale - масштаб сетки для ключей пространственных корзин
	bucketScale = 1000

	// maxPrefixCells - предел размера сетки при вычислении префиксов корзин.
	// Для более крупных областей дешевле полное сканирование с точной перепроверкой.
	maxPrefixCells = 50000
)

// HaversineDistanceKm возвращает расстояние по дуге большого круга в километрах
func HaversineDistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// RouteBounds строит ограничивающий прямоугольник вокруг коридора маршрута,
// расширенный на bufferKm с каждой стороны. Переход через антимеридиан не обрабатывается.
func RouteBounds(startLat, startLon, endLat, endLon, bufferKm float64) models.SpatialBounds {
	bufferDegrees := bufferKm / kmPerDegree

	return models.SpatialBounds{
		North: math.Max(startLat, endLat) + bufferDegrees,
		South: math.Min(startLat, endLat) - bufferDegrees,
		East:  math.Max(startLon, endLon) + bufferDegrees,
		West:  math.Min(startLon, endLon) - bufferDegrees,
	}
}

// BucketKey возвращает детерминированный ключ ячейки сетки для координаты.
// Используется только для группировки и предварительной выборки кандидатов:
// точная фильтрация всегда перепроверяет настоящие lat/lng по границам.
func BucketKey(lat, lng float64) string {
	latGrid := int(math.Floor((lat + 90) * bucketScale))
	lngGrid := int(math.Floor((lng + 180) * bucketScale))
	return fmt.Sprintf("%d_%d", latGrid, lngGrid)
}

// BucketPrefixes возвращает уникальные префиксы ключей корзин, покрывающие границы.
// Пустой результат означает, что область слишком велика и вызывающая сторона
// должна сканировать всё пространство ключей.
func BucketPrefixes(bounds models.SpatialBounds, precision int) []string {
	latLo := int(math.Floor((bounds.South + 90) * bucketScale))
	latHi := int(math.Floor((bounds.North + 90) * bucketScale))
	lngLo := int(math.Floor((bounds.West + 180) * bucketScale))
	lngHi := int(math.Floor((bounds.East + 180) * bucketScale))

	if latHi < latLo || lngHi < lngLo {
		return nil
	}

	cells := (latHi - latLo + 1) * (lngHi - lngLo + 1)
	if cells > maxPrefixCells {
		return nil
	}

	seen := make(map[string]struct{})
	prefixes := make([]string, 0)
	for latGrid := latLo; latGrid <= latHi; latGrid++ {
		for lngGrid := lngLo; lngGrid <= lngHi; lngGrid++ {
			key := fmt.Sprintf("%d_%d", latGrid, lngGrid)
			if len(key) > precision {
				key = key[:precision]
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			prefixes = append(prefixes, key)
		}
	}
	return prefixes
}

// FilterByDistance оставляет инциденты не дальше maxDistanceKm от точки
func FilterByDistance(incidents []*models.Incident, centerLat, centerLng, maxDistanceKm float64) []*models.Incident {
	filtered := make([]*models.Incident, 0, len(incidents))
	for _, incident := range incidents {
		if HaversineDistanceKm(centerLat, centerLng, incident.Lat, incident.Lng) <= maxDistanceKm {
			filtered = append(filtered, incident)
		}
	}
	return filtered
}

func toRadians(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}
