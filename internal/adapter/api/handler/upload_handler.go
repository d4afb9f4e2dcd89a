package handler

import (
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"telemart/internal/domain/service"
	"telemart/internal/infrastructure/storage"
	"telemart/pkg/errors"
	"telemart/pkg/logger"
	"telemart/pkg/response"
)

const maxImageSize = 5 * 1024 * 1024

// UploadHandler stores catalog images (product shots, brand logos, category
// banners) in object storage.
type UploadHandler struct {
	imageStorage service.ImageStorage
	maxFileSize  int64
}

var uploadHandler *UploadHandler

func NewUploadHandler(imageStorage service.ImageStorage) *UploadHandler {
	return &UploadHandler{
		imageStorage: imageStorage,
		maxFileSize:  maxImageSize,
	}
}

func SetupUploadHandler(imageStorage service.ImageStorage) {
	uploadHandler = NewUploadHandler(imageStorage)
}

func GetUploadHandler() *UploadHandler {
	return uploadHandler
}

type deleteImageRequest struct {
	URL string `json:"url" validate:"required,url"`
}

func sanitizeFolderName(folder string) string {
	folder = strings.Trim(strings.ToLower(folder), "/ ")
	var b strings.Builder
	for _, r := range folder {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (h *UploadHandler) UploadImage(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, errors.BadRequest("Missing or invalid file", err))
	}

	if file.Size > h.maxFileSize {
		logger.Warn("Image too large: %d bytes (max: %d)", file.Size, h.maxFileSize)
		return response.Error(c, errors.BadRequest(fmt.Sprintf("File size exceeds maximum allowed (%dMB)", h.maxFileSize/(1024*1024)), nil))
	}

	contentType := file.Header.Get("Content-Type")
	if !storage.IsSupportedImage(contentType) {
		return response.Error(c, errors.BadRequest("File type not supported", nil))
	}

	src, err := file.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Unable to read file", err))
	}
	defer src.Close()

	url, err := h.imageStorage.UploadImage(c.Request().Context(), src, contentType, sanitizeFolderName(c.FormValue("folder")))
	if err != nil {
		return response.Error(c, errors.Internal("Failed to upload image", err))
	}

	logger.Debug("Uploaded %s (%d bytes) to %s", file.Filename, file.Size, url)
	return response.Created(c, map[string]interface{}{
		"url":      url,
		"filename": file.Filename,
		"size":     file.Size,
	})
}

func (h *UploadHandler) DeleteImage(c echo.Context) error {
	var req deleteImageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	if err := h.imageStorage.DeleteImage(c.Request().Context(), req.URL); err != nil {
		return response.Error(c, errors.Internal("Failed to delete image", err))
	}
	return response.Success(c, map[string]string{"message": "Image deleted successfully"})
}
