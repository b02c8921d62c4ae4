package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/roastline/roastline-backend/internal/errors"
	"github.com/roastline/roastline-backend/internal/middleware"
	"github.com/roastline/roastline-backend/internal/storage"
)

type UploadController struct {
	imageStorage *storage.ImageStorage
}

func NewUploadController(imageStorage *storage.ImageStorage) *UploadController {
	return &UploadController{
		imageStorage: imageStorage,
	}
}

type PresignUploadRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	Size        int64  `json:"size" binding:"required,gt=0"`
}

// PresignProductImage returns a presigned PUT URL for a product image.
// Admin only.
// POST /api/v1/uploads/product-image
func (ctrl *UploadController) PresignProductImage(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	if ctrl.imageStorage == nil {
		errors.RespondWithError(c, http.StatusServiceUnavailable, errors.UploadFailed, "Image uploads are not configured")
		return
	}

	var req PresignUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Filename, content type, and size are required")
		return
	}

	upload, err := ctrl.imageStorage.PresignProductImage(req.Filename, req.ContentType, req.Size)
	if err != nil {
		log.Warn("Rejected upload request", map[string]interface{}{
			"filename":     req.Filename,
			"content_type": req.ContentType,
			"error":        err.Error(),
		})
		errors.BadRequest(c, errors.UploadInvalidFileType, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"upload": upload,
	})
}
