package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/miguelacho_api/internal/apperrors"
	"github.com/SscSPs/miguelacho_api/internal/dto"
	"github.com/SscSPs/miguelacho_api/internal/middleware"
	"github.com/gin-gonic/gin"
)

const (
	msgInvalidParams    = "Parámetros faltantes o inválidos."
	msgDataNotReady     = "Los datos de tasas aún no están disponibles. Intente de nuevo más tarde."
	msgGatewayDown      = "No se pudo leer la hoja de cálculo de tasas."
	msgCurrencyNotFound = "Moneda no encontrada en las tablas de tasas o ganancias."
	msgInvalidRate      = "La tasa o el factor de ganancia para el par solicitado no es válido."
	msgInternal         = "Error interno del servidor."
	msgInternalConvert  = "Error interno del servidor al procesar la conversión."
)

// statusFor maps an error kind to its HTTP status and client message.
// Handlers are the only place where this translation happens.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidRequest):
		return http.StatusBadRequest, msgInvalidParams
	case errors.Is(err, apperrors.ErrDataNotReady):
		return http.StatusServiceUnavailable, msgDataNotReady
	case errors.Is(err, apperrors.ErrGatewayUnavailable):
		return http.StatusServiceUnavailable, msgGatewayDown
	case errors.Is(err, apperrors.ErrCurrencyNotFound):
		return http.StatusNotFound, msgCurrencyNotFound
	case errors.Is(err, apperrors.ErrRateOrFactorInvalid):
		return http.StatusNotFound, msgInvalidRate
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

// respondWithError writes the error body for err. internalMsg replaces the
// generic message for unexpected failures when not empty.
func respondWithError(c *gin.Context, err error, internalMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status, msg := statusFor(err)

	if status == http.StatusInternalServerError {
		logger.Error("Request failed", slog.String("error", err.Error()))
		if internalMsg != "" {
			msg = internalMsg
		}
	} else {
		logger.Warn("Request rejected",
			slog.Int("status", status),
			slog.String("kind", apperrors.Kind(err)),
			slog.String("error", err.Error()),
		)
	}

	c.JSON(status, dto.ErrorResponse{Error: msg, Detalle: err.Error()})
}
