package dto

import (
	"time"

	"github.com/SscSPs/miguelacho_api/internal/core/domain"
)

// StatusResponse is the body of the liveness probe.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ErrorResponse is returned for every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Detalle string `json:"detalle,omitempty"`
}

// RefreshResponse describes the snapshot produced by an admin refresh.
type RefreshResponse struct {
	Status      string    `json:"status"`
	FilasTasas  int       `json:"filas_tasas"`
	FilasMatriz int       `json:"filas_matriz"`
	Actualizado time.Time `json:"actualizado"`
}

// ToRefreshResponse converts a domain.TablesSummary to RefreshResponse.
func ToRefreshResponse(summary *domain.TablesSummary) RefreshResponse {
	return RefreshResponse{
		Status:      "ok",
		FilasTasas:  summary.RateRows,
		FilasMatriz: summary.ProfitRows,
		Actualizado: summary.FetchedAt,
	}
}
