package handlers

import (
	"net/http"

	"github.com/SscSPs/miguelacho_api/internal/dto"
	"github.com/gin-gonic/gin"
)

// getHome godoc
// @Summary Show the status of server.
// @Description Liveness probe of the API.
// @Tags root
// @Accept */*
// @Produce json
// @Success 200 {object} dto.StatusResponse
// @Router / [get]
func getHome(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.StatusResponse{Status: "ok", Message: "API de Miguelacho en línea"})
}
