package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/openlearn/lms-backend/internal/pkg/logger"
	"github.com/openlearn/lms-backend/internal/services"
)

type MaintenanceHandler struct {
	log                *logger.Logger
	maintenanceService services.MaintenanceService
}

func NewMaintenanceHandler(log *logger.Logger, maintenanceService services.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{
		log:                log.With("handler", "MaintenanceHandler"),
		maintenanceService: maintenanceService,
	}
}

func (h *MaintenanceHandler) RebuildBackReferences(c *gin.Context) {
	report, err := h.maintenanceService.RebuildBackReferences(c.Request.Context())
	if err != nil {
		h.log.Error("rebuild back references failed", "error", err)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, report)
}
