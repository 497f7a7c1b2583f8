package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/frontandrew/vmaster/internal/delivery/http/middleware"
	"github.com/frontandrew/vmaster/internal/domain"
	"github.com/frontandrew/vmaster/internal/pkg/jwt"
	"github.com/frontandrew/vmaster/internal/pkg/logger"
	"github.com/frontandrew/vmaster/internal/usecase/servicelog"
)

// ServiceLogService определяет интерфейс для сервиса истории обслуживания
type ServiceLogService interface {
	RecordService(ctx context.Context, req *servicelog.RecordServiceRequest) (*domain.ServiceLog, error)
	GetVehicleServiceLogs(ctx context.Context, vehicleID int64) ([]*domain.ServiceLog, error)
	GetServiceLogByID(ctx context.Context, id int64) (*domain.ServiceLog, error)
	DeleteServiceLog(ctx context.Context, id int64) error
}

// ServiceLogHandler обрабатывает запросы истории обслуживания
type ServiceLogHandler struct {
	serviceLogService ServiceLogService
	vehicleService    VehicleService
	logger            logger.Logger
}

// NewServiceLogHandler создает новый handler
func NewServiceLogHandler(
	serviceLogService ServiceLogService,
	vehicleService VehicleService,
	logger logger.Logger,
) *ServiceLogHandler {
	return &ServiceLogHandler{
		serviceLogService: serviceLogService,
		vehicleService:    vehicleService,
		logger:            logger,
	}
}

func (h *ServiceLogHandler) checkVehicleAccess(w http.ResponseWriter, r *http.Request, claims *jwt.Claims, vehicleID int64) bool {
	v, err := h.vehicleService.GetVehicleByID(r.Context(), vehicleID)
	if err != nil {
		if err == domain.ErrVehicleNotFound {
			respondError(w, http.StatusNotFound, "Vehicle not found")
			return false
		}
		h.logger.Error("Failed to get vehicle", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to get vehicle")
		return false
	}

	if !canAccessVehicle(claims, v) {
		respondError(w, http.StatusForbidden, "Access denied")
		return false
	}

	return true
}

// RecordService записывает выполненное обслуживание
// POST /api/v1/vehicles/{id}/services
func (h *ServiceLogHandler) RecordService(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := getIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid vehicle ID")
		return
	}

	claims, ok := middleware.GetUserClaims(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if !h.checkVehicleAccess(w, r, claims, vehicleID) {
		return
	}

	var req servicelog.RecordServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.VehicleID = vehicleID

	log, err := h.serviceLogService.RecordService(r.Context(), &req)
	if err != nil {
		if err == domain.ErrInvalidServiceLogData {
			respondError(w, http.StatusBadRequest, "Invalid service log data")
			return
		}
		h.logger.Error("Failed to record service", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to record service")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    log,
	})
}

// GetVehicleServiceLogs возвращает историю обслуживания автомобиля
// GET /api/v1/vehicles/{id}/services
func (h *ServiceLogHandler) GetVehicleServiceLogs(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := getIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid vehicle ID")
		return
	}

	claims, ok := middleware.GetUserClaims(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if !h.checkVehicleAccess(w, r, claims, vehicleID) {
		return
	}

	logs, err := h.serviceLogService.GetVehicleServiceLogs(r.Context(), vehicleID)
	if err != nil {
		if err == domain.ErrVehicleNotFound {
			respondError(w, http.StatusNotFound, "Vehicle not found")
			return
		}
		h.logger.Error("Failed to get service logs", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to get service logs")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    logs,
	})
}

// DeleteServiceLog удаляет запись обслуживания
// DELETE /api/v1/services/{id}
func (h *ServiceLogHandler) DeleteServiceLog(w http.ResponseWriter, r *http.Request) {
	logID, err := getIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid service log ID")
		return
	}

	claims, ok := middleware.GetUserClaims(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	existing, err := h.serviceLogService.GetServiceLogByID(r.Context(), logID)
	if err != nil {
		if err == domain.ErrServiceLogNotFound {
			respondError(w, http.StatusNotFound, "Service log not found")
			return
		}
		h.logger.Error("Failed to get service log", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to get service log")
		return
	}

	if !h.checkVehicleAccess(w, r, claims, existing.VehicleID) {
		return
	}

	if err := h.serviceLogService.DeleteServiceLog(r.Context(), logID); err != nil {
		if err == domain.ErrServiceLogNotFound {
			respondError(w, http.StatusNotFound, "Service log not found")
			return
		}
		h.logger.Error("Failed to delete service log", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to delete service log")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Service log deleted",
	})
}
