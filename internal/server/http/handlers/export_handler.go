package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openlodge/clubadmin/internal/domain/model"
	"github.com/openlodge/clubadmin/internal/server/http/dto"
)

// ExportHandler manages CSV export jobs under /api/admin/export.
type ExportHandler struct {
	facade ExportFacade
}

// NewExportHandler constructs ExportHandler.
func NewExportHandler(facade ExportFacade) *ExportHandler {
	return &ExportHandler{facade: facade}
}

// Create handles POST /api/admin/export. The job is queued and picked
// up by the background processor, hence 202.
func (h *ExportHandler) Create(c *gin.Context) {
	var req dto.CreateExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	claims := CurrentClaims(c)
	job, err := h.facade.CreateExport(c.Request.Context(), model.ExportKind(req.Kind), req.Fields, claims.MemberID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, dto.NewExportJobResponse(job, ""))
}

// Get handles GET /api/admin/export/:id.
func (h *ExportHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}

	status, err := h.facade.GetExport(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewExportJobResponse(status.Job, status.DownloadURL))
}
