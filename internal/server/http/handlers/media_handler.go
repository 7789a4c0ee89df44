package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/openlodge/clubadmin/internal/server/http/dto"
)

// MediaHandler manages the gallery endpoints under /api/admin/media.
type MediaHandler struct {
	facade MediaFacade
}

// NewMediaHandler constructs MediaHandler.
func NewMediaHandler(facade MediaFacade) *MediaHandler {
	return &MediaHandler{facade: facade}
}

// RegisterUpload handles POST /api/admin/media/uploads.
func (h *MediaHandler) RegisterUpload(c *gin.Context) {
	var req dto.RegisterUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	pending, err := h.facade.RegisterUpload(c.Request.Context(), req.Title, req.ContentType, req.ByteSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.RegisterUploadResponse{
		Image:     dto.NewImageResponse(pending.Image),
		UploadURL: pending.UploadURL,
	})
}

// CompleteUpload handles POST /api/admin/media/uploads/:id/complete.
func (h *MediaHandler) CompleteUpload(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}

	img, err := h.facade.CompleteUpload(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewImageResponse(img))
}

// List handles GET /api/admin/media, the infinite scroll feed.
func (h *MediaHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	page, err := h.facade.ListImages(c.Request.Context(), c.Query("cursor"), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.ImagePageResponse{
		Images:     make([]dto.ImageResponse, 0, len(page.Images)),
		NextCursor: page.NextCursor,
	}
	for i := range page.Images {
		resp.Images = append(resp.Images, dto.NewImageResponse(&page.Images[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Get handles GET /api/admin/media/:id.
func (h *MediaHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}

	detail, err := h.facade.GetImage(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.NewImageResponse(detail.Image)
	resp.URL = detail.URL
	resp.ThumbURL = detail.ThumbURL
	c.JSON(http.StatusOK, resp)
}

// Delete handles DELETE /api/admin/media/:id.
func (h *MediaHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}

	if err := h.facade.DeleteImage(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
