package dto

import (
	"github.com/SscSPs/miguelacho_api/internal/core/domain"
)

// ConvertRequest holds the query parameters of GET /convertir.
type ConvertRequest struct {
	Cantidad string `form:"cantidad" binding:"required"`
	Origen   string `form:"origen" binding:"required,currencycode"`
	Destino  string `form:"destino" binding:"required,currencycode"`
}

// ConversionDetail carries the metadata of the rate and factor applied.
type ConversionDetail struct {
	FactorGanancia  float64 `json:"factor_ganancia"`
	IDTasaActual    string  `json:"id_tasa_actual"`
	TimestampActual string  `json:"timestamp_actual"`
}

// ConversionResponse is the success body of GET /convertir.
type ConversionResponse struct {
	Status               string           `json:"status"`
	ConversionSolicitada string           `json:"conversion_solicitada"`
	MontoConvertido      float64          `json:"monto_convertido"`
	Detalle              ConversionDetail `json:"detalle"`
}

// ToConversionResponse converts a domain.ConversionResult to its response DTO.
func ToConversionResponse(result *domain.ConversionResult) ConversionResponse {
	return ConversionResponse{
		Status:               "success",
		ConversionSolicitada: result.Description(),
		MontoConvertido:      result.Converted.InexactFloat64(),
		Detalle: ConversionDetail{
			FactorGanancia:  result.Factor.InexactFloat64(),
			IDTasaActual:    result.RateID,
			TimestampActual: result.RateTimestamp,
		},
	}
}
