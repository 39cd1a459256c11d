package models

import (
	"time"

	"github.com/google/uuid"
)

// IncidentType - закрытый набор типов сообщений от жителей
type IncidentType string

const (
	TypeDebrisRoad       IncidentType = "debris_road"
	TypeDownedPowerline  IncidentType = "downed_powerline"
	TypeFoodAvailable    IncidentType = "food_available"
	TypeGasAvailable     IncidentType = "gas_available"
	TypePowerAvailable   IncidentType = "power_available"
	TypeShelterAvailable IncidentType = "shelter_available"
)

// AnonymousReporter - атрибуция по умолчанию, если отправитель не указан
const AnonymousReporter = "Anonymous"

// IsHazard сообщает, является ли тип препятствием на дороге.
// Только такие инциденты превращаются в исключения для маршрутизатора.
func (t IncidentType) IsHazard() bool {
	return t == TypeDebrisRoad || t == TypeDownedPowerline
}

// IsValid проверяет, что тип входит в закрытый набор
func (t IncidentType) IsValid() bool {
	switch t {
	case TypeDebrisRoad, TypeDownedPowerline,
		TypeFoodAvailable, TypeGasAvailable, TypePowerAvailable, TypeShelterAvailable:
		return true
	}
	return false
}

// Incident - сообщение жителя о препятствии или доступном ресурсе.
// ID и Timestamp назначаются хранилищем при создании и после этого неизменяемы.
type Incident struct {
	ID          uuid.UUID    `json:"id"`
	Lat         float64      `json:"lat"`
	Lng         float64      `json:"lng"`
	Type        IncidentType `json:"type"`
	Description string       `json:"description"`
	Timestamp   time.Time    `json:"timestamp"`
	ReportedBy  string       `json:"reportedBy"`
}
