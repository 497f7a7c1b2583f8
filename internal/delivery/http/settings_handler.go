package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/frontandrew/vmaster/internal/infrastructure/fuelprice"
	"github.com/frontandrew/vmaster/internal/pkg/logger"
	"github.com/frontandrew/vmaster/internal/usecase/settings"
)

// SettingsService определяет интерфейс для сервиса настроек
type SettingsService interface {
	GetSettings(ctx context.Context) (*settings.View, error)
	UpdateSettings(ctx context.Context, req *settings.UpdateSettingsRequest) error
	RefreshFuelPrices(ctx context.Context) (*fuelprice.Prices, error)
}

// SettingsHandler обрабатывает запросы настроек приложения
type SettingsHandler struct {
	settingsService SettingsService
	logger          logger.Logger
}

// NewSettingsHandler создает новый handler
func NewSettingsHandler(settingsService SettingsService, logger logger.Logger) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		logger:          logger,
	}
}

// GetSettings возвращает текущие настройки
// GET /api/v1/settings
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	view, err := h.settingsService.GetSettings(r.Context())
	if err != nil {
		h.logger.Error("Failed to get settings", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to get settings")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    view,
	})
}

// UpdateSettings обновляет настройки
// PUT /api/v1/settings
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req settings.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.settingsService.UpdateSettings(r.Context(), &req); err != nil {
		h.logger.Error("Failed to update settings", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to update settings")
		return
	}

	view, err := h.settingsService.GetSettings(r.Context())
	if err != nil {
		h.logger.Error("Failed to get settings", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to get settings")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    view,
	})
}

// RefreshFuelPrices принудительно обновляет цены на топливо
// POST /api/v1/settings/refresh-prices
func (h *SettingsHandler) RefreshFuelPrices(w http.ResponseWriter, r *http.Request) {
	prices, err := h.settingsService.RefreshFuelPrices(r.Context())
	if err != nil {
		// Поставщик цен недоступен: сохраненные значения остаются в силе
		respondError(w, http.StatusBadGateway, "Failed to fetch fuel prices")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    prices,
	})
}
