package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/frontandrew/vmaster/internal/delivery/http/middleware"
	"github.com/frontandrew/vmaster/internal/domain"
	"github.com/frontandrew/vmaster/internal/pkg/jwt"
	"github.com/frontandrew/vmaster/internal/pkg/logger"
	"github.com/frontandrew/vmaster/internal/usecase/consumable"
)

// ConsumableService определяет интерфейс для сервиса изнашиваемых деталей
type ConsumableService interface {
	CreateConsumable(ctx context.Context, req *consumable.CreateConsumableRequest) (*domain.Consumable, error)
	GetConsumableByID(ctx context.Context, id int64) (*domain.Consumable, error)
	GetVehicleConsumables(ctx context.Context, vehicleID int64) ([]*domain.Consumable, error)
	UpdateConsumable(ctx context.Context, id int64, req *consumable.UpdateConsumableRequest) (*domain.Consumable, error)
	DeleteConsumable(ctx context.Context, id int64) error
}

// ConsumableHandler обрабатывает запросы связанные с изнашиваемыми деталями
type ConsumableHandler struct {
	consumableService ConsumableService
	vehicleService    VehicleService
	logger            logger.Logger
}

// NewConsumableHandler создает новый handler
func NewConsumableHandler(
	consumableService ConsumableService,
	vehicleService VehicleService,
	logger logger.Logger,
) *ConsumableHandler {
	return &ConsumableHandler{
		consumableService: consumableService,
		vehicleService:    vehicleService,
		logger:            logger,
	}
}

// checkVehicleAccess загружает автомобиль и проверяет права текущего пользователя.
// При ошибке сам пишет ответ и возвращает false
func (h *ConsumableHandler) checkVehicleAccess(w http.ResponseWriter, r *http.Request, claims *jwt.Claims, vehicleID int64) bool {
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

// CreateConsumable добавляет деталь автомобилю
// POST /api/v1/vehicles/{id}/consumables
func (h *ConsumableHandler) CreateConsumable(w http.ResponseWriter, r *http.Request) {
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

	var req consumable.CreateConsumableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.VehicleID = vehicleID

	c, err := h.consumableService.CreateConsumable(r.Context(), &req)
	if err != nil {
		if err == domain.ErrInvalidConsumableData {
			respondError(w, http.StatusBadRequest, "Invalid consumable data")
			return
		}
		h.logger.Error("Failed to create consumable", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to create consumable")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    c,
	})
}

// GetVehicleConsumables возвращает все детали автомобиля
// GET /api/v1/vehicles/{id}/consumables
func (h *ConsumableHandler) GetVehicleConsumables(w http.ResponseWriter, r *http.Request) {
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

	consumables, err := h.consumableService.GetVehicleConsumables(r.Context(), vehicleID)
	if err != nil {
		if err == domain.ErrVehicleNotFound {
			respondError(w, http.StatusNotFound, "Vehicle not found")
			return
		}
		h.logger.Error("Failed to get consumables", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to get consumables")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    consumables,
	})
}

// UpdateConsumable обновляет данные детали
// PUT /api/v1/consumables/{id}
func (h *ConsumableHandler) UpdateConsumable(w http.ResponseWriter, r *http.Request) {
	consumableID, err := getIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid consumable ID")
		return
	}

	claims, ok := middleware.GetUserClaims(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	existing, err := h.consumableService.GetConsumableByID(r.Context(), consumableID)
	if err != nil {
		if err == domain.ErrConsumableNotFound {
			respondError(w, http.StatusNotFound, "Consumable not found")
			return
		}
		h.logger.Error("Failed to get consumable", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to get consumable")
		return
	}

	if !h.checkVehicleAccess(w, r, claims, existing.VehicleID) {
		return
	}

	var req consumable.UpdateConsumableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	c, err := h.consumableService.UpdateConsumable(r.Context(), consumableID, &req)
	if err != nil {
		if err == domain.ErrInvalidConsumableData {
			respondError(w, http.StatusBadRequest, "Invalid consumable data")
			return
		}
		h.logger.Error("Failed to update consumable", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to update consumable")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    c,
	})
}

// DeleteConsumable удаляет деталь
// DELETE /api/v1/consumables/{id}
func (h *ConsumableHandler) DeleteConsumable(w http.ResponseWriter, r *http.Request) {
	consumableID, err := getIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid consumable ID")
		return
	}

	claims, ok := middleware.GetUserClaims(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	existing, err := h.consumableService.GetConsumableByID(r.Context(), consumableID)
	if err != nil {
		if err == domain.ErrConsumableNotFound {
			respondError(w, http.StatusNotFound, "Consumable not found")
			return
		}
		h.logger.Error("Failed to get consumable", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to get consumable")
		return
	}

	if !h.checkVehicleAccess(w, r, claims, existing.VehicleID) {
		return
	}

	if err := h.consumableService.DeleteConsumable(r.Context(), consumableID); err != nil {
		if err == domain.ErrConsumableNotFound {
			respondError(w, http.StatusNotFound, "Consumable not found")
			return
		}
		h.logger.Error("Failed to delete consumable", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to delete consumable")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Consumable deleted",
	})
}
