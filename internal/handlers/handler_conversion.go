package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/miguelacho_api/internal/apperrors"
	portssvc "github.com/SscSPs/miguelacho_api/internal/core/ports/services"
	"github.com/SscSPs/miguelacho_api/internal/dto"
	"github.com/SscSPs/miguelacho_api/internal/middleware"
	"github.com/SscSPs/miguelacho_api/internal/platform/metrics"
	"github.com/gin-gonic/gin"
)

// conversionHandler handles HTTP requests for currency conversion.
type conversionHandler struct {
	conversionService portssvc.ConversionSvc
	metrics           *metrics.Metrics
}

func newConversionHandler(cs portssvc.ConversionSvc, m *metrics.Metrics) *conversionHandler {
	return &conversionHandler{conversionService: cs, metrics: m}
}

// registerConversionRoutes registers /convertir. extra runs before the handler (e.g. rate limiting).
func registerConversionRoutes(rg *gin.RouterGroup, cs portssvc.ConversionSvc, m *metrics.Metrics, extra ...gin.HandlerFunc) {
	h := newConversionHandler(cs, m)
	chain := append(append([]gin.HandlerFunc{}, extra...), h.convert)
	rg.GET("/convertir", chain...)
}

// convert godoc
// @Summary Convert an amount between two currencies
// @Description Applies the latest market rate and the configured profit factor. The result is rounded to 4 decimal places.
// @Tags conversion
// @Produce json
// @Param cantidad query string true "Amount to convert, non-zero. A comma decimal mark is accepted" example(100)
// @Param origen query string true "Origin currency code" example(USD)
// @Param destino query string true "Destination currency code" example(COP)
// @Success 200 {object} dto.ConversionResponse
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid parameters"
// @Failure 404 {object} dto.ErrorResponse "Unknown currency or invalid rate/factor"
// @Failure 429 {object} dto.ErrorResponse "Too many requests"
// @Failure 503 {object} dto.ErrorResponse "Rate tables unavailable"
// @Failure 500 {object} dto.ErrorResponse "Internal error"
// @Router /convertir [get]
func (h *conversionHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ConvertRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		logger.Warn("Failed to bind query for conversion", slog.String("error", err.Error()))
		h.observe(apperrors.ErrInvalidRequest)
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: msgInvalidParams, Detalle: err.Error()})
		return
	}

	logger = logger.With(slog.String("origen", req.Origen), slog.String("destino", req.Destino))
	logger.Info("Received conversion request", slog.String("cantidad", req.Cantidad))

	result, err := h.conversionService.Convert(c.Request.Context(), req)
	h.observe(err)
	if err != nil {
		respondWithError(c, err, msgInternalConvert)
		return
	}

	logger.Info("Conversion served",
		slog.String("monto_convertido", result.Converted.String()),
		slog.String("id_tasa", result.RateID),
	)
	c.JSON(http.StatusOK, dto.ToConversionResponse(result))
}

func (h *conversionHandler) observe(err error) {
	if h.metrics != nil {
		h.metrics.ConversionsTotal.WithLabelValues(apperrors.Kind(err)).Inc()
	}
}
