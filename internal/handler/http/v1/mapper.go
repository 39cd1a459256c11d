package v1

import "github.com/shenikar/storm_route_system/internal/models"

// DTOToIncidentModel преобразует DTO создания в доменную модель.
// Валидность Location гарантирует валидатор до вызова.
func DTOToIncidentModel(dto CreateIncidentRequest) *models.Incident {
	return &models.Incident{
		Lat:         *dto.Location.Lat,
		Lng:         *dto.Location.Lng,
		Type:        models.IncidentType(dto.Type),
		Description: dto.Description,
		ReportedBy:  dto.ReportedBy,
	}
}

// ModelToIncidentResponse преобразует доменную модель в DTO для ответа
func ModelToIncidentResponse(model *models.Incident) *IncidentResponse {
	return &IncidentResponse{
		ID:          model.ID,
		Lat:         model.Lat,
		Lng:         model.Lng,
		Type:        string(model.Type),
		Description: model.Description,
		Timestamp:   model.Timestamp,
		ReportedBy:  model.ReportedBy,
	}
}

// ModelsToIncidentResponses преобразует слайс моделей в слайс DTO
func ModelsToIncidentResponses(models []*models.Incident) []*IncidentResponse {
	responses := make([]*IncidentResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToIncidentResponse(model)
	}
	return responses
}

// DTOToLocation преобразует координаты запроса в доменную точку
func DTOToLocation(dto *LocationDTO) *models.Location {
	if dto == nil || dto.Lat == nil || dto.Lon == nil {
		return nil
	}
	return &models.Location{Lat: *dto.Lat, Lon: *dto.Lon}
}
