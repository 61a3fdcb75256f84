package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/miguelacho_api/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// tableHandler exposes the normalized tables so clients can list the available currencies.
type tableHandler struct {
	tableService portssvc.TableReaderSvc
}

func newTableHandler(ts portssvc.TableReaderSvc) *tableHandler {
	return &tableHandler{tableService: ts}
}

func registerTableRoutes(rg *gin.RouterGroup, ts portssvc.TableReaderSvc) {
	h := newTableHandler(ts)

	rg.GET("/tasas", h.listRates)
	rg.GET("/ganancias", h.listProfits)
	rg.GET("/matriz_cruce", h.getCrossMatrix)
}

// listRates godoc
// @Summary List the rates table
// @Description Returns every row of the rates sheet as an object keyed by the header row, in sheet order.
// @Tags tables
// @Produce json
// @Success 200 {array} object
// @Failure 503 {object} dto.ErrorResponse "Rate tables unavailable"
// @Router /tasas [get]
func (h *tableHandler) listRates(c *gin.Context) {
	rates, err := h.tableService.ListRates(c.Request.Context())
	if err != nil {
		respondWithError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, rates)
}

// listProfits godoc
// @Summary List the profit factors
// @Description Returns the profit sheet as objects keyed by its header row.
// @Tags tables
// @Produce json
// @Success 200 {array} object
// @Failure 503 {object} dto.ErrorResponse "Rate tables unavailable"
// @Router /ganancias [get]
func (h *tableHandler) listProfits(c *gin.Context) {
	profits, err := h.tableService.ListProfits(c.Request.Context())
	if err != nil {
		respondWithError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, profits)
}

// getCrossMatrix godoc
// @Summary Get the profit cross matrix
// @Description Returns the profit sheet exactly as read, one array of cells per row.
// @Tags tables
// @Produce json
// @Success 200 {array} array
// @Failure 503 {object} dto.ErrorResponse "Rate tables unavailable"
// @Router /matriz_cruce [get]
func (h *tableHandler) getCrossMatrix(c *gin.Context) {
	grid, err := h.tableService.GetCrossMatrix(c.Request.Context())
	if err != nil {
		respondWithError(c, err, "")
		return
	}
	if grid == nil {
		grid = [][]string{}
	}
	c.JSON(http.StatusOK, grid)
}
