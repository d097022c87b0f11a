package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// endpoints advertised by the health check
var endpoints = map[string]string{
	"generate_keys": "POST " + BasePath + "/keys",
	"directory":     "GET " + BasePath + "/directory",
	"register":      "POST " + BasePath + "/directory",
	"sign":          "POST " + BasePath + "/sign",
	"verify":        "POST " + BasePath + "/verify",
	"hash":          "POST " + BasePath + "/hash",
}

// Health reports service status
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Version:   Version,
		Endpoints: endpoints,
	})
}
