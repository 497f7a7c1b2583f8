package http

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/frontandrew/vmaster/internal/pkg/config"
	"github.com/frontandrew/vmaster/internal/pkg/logger"
	"github.com/google/uuid"
)

// Допустимые расширения для фотографий автомобилей
var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// UploadHandler обрабатывает загрузку фотографий автомобилей
type UploadHandler struct {
	config *config.UploadConfig
	logger logger.Logger
}

// NewUploadHandler создает новый handler
func NewUploadHandler(cfg *config.UploadConfig, logger logger.Logger) *UploadHandler {
	return &UploadHandler{
		config: cfg,
		logger: logger,
	}
}

// UploadPhoto сохраняет фотографию и возвращает ее URL.
// Файл получает случайное имя, оригинальное имя не сохраняется
// POST /api/v1/uploads
func (h *UploadHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.config.MaxSizeBytes)

	if err := r.ParseMultipartForm(h.config.MaxSizeBytes); err != nil {
		respondError(w, http.StatusBadRequest, "File too large or invalid form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExts[ext] {
		respondError(w, http.StatusBadRequest, "Unsupported file type")
		return
	}

	if err := os.MkdirAll(h.config.Dir, 0o755); err != nil {
		h.logger.Error("Failed to create upload directory", map[string]interface{}{
			"error": err.Error(),
			"dir":   h.config.Dir,
		})
		respondError(w, http.StatusInternalServerError, "Failed to save file")
		return
	}

	filename := uuid.New().String() + ext
	dstPath := filepath.Join(h.config.Dir, filename)

	dst, err := os.Create(dstPath)
	if err != nil {
		h.logger.Error("Failed to create file", map[string]interface{}{
			"error": err.Error(),
			"path":  dstPath,
		})
		respondError(w, http.StatusInternalServerError, "Failed to save file")
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		h.logger.Error("Failed to write file", map[string]interface{}{
			"error": err.Error(),
			"path":  dstPath,
		})
		respondError(w, http.StatusInternalServerError, "Failed to save file")
		return
	}

	h.logger.Info("Photo uploaded", map[string]interface{}{
		"filename": filename,
		"size":     header.Size,
	})

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data": map[string]string{
			"url": h.config.BaseURL + "/" + filename,
		},
	})
}
