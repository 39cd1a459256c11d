package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Маршруты отчётов об инцидентах
	incidents := api.Group("/incidents")
	{
		incidents.POST("", h.createIncident)
		incidents.GET("", h.listIncidents)
		incidents.GET("/exclusions", h.getExclusions)
	}

	// Маршруты расчёта маршрутов
	routes := api.Group("/routes")
	{
		routes.POST("", h.calculateRoute)
		routes.POST("/simple", h.simpleRoute)
		routes.GET("/test", h.testRoute)
	}

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
