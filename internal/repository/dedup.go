package repository

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shenikar/storm_route_system/internal/models"
)

// dedupeByNewest убирает дубликаты по ID, оставляя запись с более поздним
// Timestamp. Один инцидент может вернуться из нескольких корзин хранилища.
func dedupeByNewest(incidents []*models.Incident) []*models.Incident {
	unique := make(map[uuid.UUID]*models.Incident, len(incidents))
	for _, incident := range incidents {
		existing, ok := unique[incident.ID]
		if !ok || incident.Timestamp.After(existing.Timestamp) {
			unique[incident.ID] = incident
		}
	}

	result := make([]*models.Incident, 0, len(unique))
	for _, incident := range unique {
		result = append(result, incident)
	}

	// Стабильный порядок - по времени создания
	sort.Slice(result, func(i, j int) bool {
		return result[i].Timestamp.Before(result[j].Timestamp)
	})
	return result
}
