package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/miguelacho_api/internal/core/ports/services"
	"github.com/SscSPs/miguelacho_api/internal/dto"
	"github.com/SscSPs/miguelacho_api/internal/middleware"
	"github.com/gin-gonic/gin"
)

type adminHandler struct {
	tableService portssvc.TableAdminSvc
}

func newAdminHandler(ts portssvc.TableAdminSvc) *adminHandler {
	return &adminHandler{tableService: ts}
}

func registerAdminRoutes(rg *gin.RouterGroup, ts portssvc.TableAdminSvc) {
	h := newAdminHandler(ts)

	tables := rg.Group("/tablas")
	{
		tables.POST("/refresh", h.refreshTables)
	}
}

// refreshTables godoc
// @Summary Reload the rate tables
// @Description Fetches both sheets again and replaces the cached snapshot. On failure the previous snapshot is kept.
// @Tags admin
// @Produce json
// @Success 200 {object} dto.RefreshResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 503 {object} dto.ErrorResponse "Spreadsheet unavailable"
// @Security BearerAuth
// @Router /admin/tablas/refresh [post]
func (h *adminHandler) refreshTables(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	subject, _ := middleware.GetSubjectFromContext(c)
	logger.Info("Received table refresh request", slog.String("requested_by", subject))

	summary, err := h.tableService.Refresh(c.Request.Context())
	if err != nil {
		respondWithError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToRefreshResponse(summary))
}
