package http

import (
	"context"
	"net/http"

	"github.com/frontandrew/vmaster/internal/delivery/http/middleware"
	"github.com/frontandrew/vmaster/internal/domain"
	"github.com/frontandrew/vmaster/internal/pkg/jwt"
	"github.com/frontandrew/vmaster/internal/pkg/logger"
)

// CostingService определяет интерфейс для расчета стоимости километра
type CostingService interface {
	ComputeCost(ctx context.Context, vehicleID int64) (*domain.CostBreakdown, error)
}

// MaintenanceService определяет интерфейс для статуса ТО и предупреждений
type MaintenanceService interface {
	GetStatus(ctx context.Context, vehicleID int64) (*domain.MaintenanceStatus, error)
	GetCriticalWarnings(ctx context.Context, vehicleID int64, thresholdKm int64) ([]*domain.Warning, error)
}

// AnalysisHandler обрабатывает аналитические запросы:
// стоимость километра, статус ТО, предупреждения о ресурсе деталей
type AnalysisHandler struct {
	costingService     CostingService
	maintenanceService MaintenanceService
	vehicleService     VehicleService
	logger             logger.Logger
}

// NewAnalysisHandler создает новый handler
func NewAnalysisHandler(
	costingService CostingService,
	maintenanceService MaintenanceService,
	vehicleService VehicleService,
	logger logger.Logger,
) *AnalysisHandler {
	return &AnalysisHandler{
		costingService:     costingService,
		maintenanceService: maintenanceService,
		vehicleService:     vehicleService,
		logger:             logger,
	}
}

func (h *AnalysisHandler) checkVehicleAccess(w http.ResponseWriter, r *http.Request, claims *jwt.Claims, vehicleID int64) bool {
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

// GetCostAnalysis возвращает разбивку стоимости километра
// GET /api/v1/vehicles/{id}/analysis
func (h *AnalysisHandler) GetCostAnalysis(w http.ResponseWriter, r *http.Request) {
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

	breakdown, err := h.costingService.ComputeCost(r.Context(), vehicleID)
	if err != nil {
		if err == domain.ErrVehicleNotFound {
			respondError(w, http.StatusNotFound, "Vehicle not found")
			return
		}
		h.logger.Error("Failed to compute cost", map[string]interface{}{
			"error":      err.Error(),
			"vehicle_id": vehicleID,
		})
		respondError(w, http.StatusInternalServerError, "Failed to compute cost")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    breakdown,
	})
}

// GetMaintenanceStatus возвращает статус планового ТО
// GET /api/v1/vehicles/{id}/maintenance
func (h *AnalysisHandler) GetMaintenanceStatus(w http.ResponseWriter, r *http.Request) {
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

	status, err := h.maintenanceService.GetStatus(r.Context(), vehicleID)
	if err != nil {
		if err == domain.ErrVehicleNotFound {
			respondError(w, http.StatusNotFound, "Vehicle not found")
			return
		}
		h.logger.Error("Failed to get maintenance status", map[string]interface{}{
			"error":      err.Error(),
			"vehicle_id": vehicleID,
		})
		respondError(w, http.StatusInternalServerError, "Failed to get maintenance status")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    status,
	})
}

// GetWarnings возвращает предупреждения о ресурсе деталей и ТО.
// Порог срабатывания настраивается query параметром threshold_km
// GET /api/v1/vehicles/{id}/warnings?threshold_km=500
func (h *AnalysisHandler) GetWarnings(w http.ResponseWriter, r *http.Request) {
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

	thresholdKm := getIntQuery(r, "threshold_km", 0)

	warnings, err := h.maintenanceService.GetCriticalWarnings(r.Context(), vehicleID, thresholdKm)
	if err != nil {
		if err == domain.ErrVehicleNotFound {
			respondError(w, http.StatusNotFound, "Vehicle not found")
			return
		}
		h.logger.Error("Failed to get warnings", map[string]interface{}{
			"error":      err.Error(),
			"vehicle_id": vehicleID,
		})
		respondError(w, http.StatusInternalServerError, "Failed to get warnings")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    warnings,
	})
}
