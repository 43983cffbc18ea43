package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripgenie/pkg/utils"
)

type HealthController struct{}

func NewHealthController() *HealthController {
	return &HealthController{}
}

// Health godoc
// @Summary Liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /healthz [get]
func (h *HealthController) Health(c *gin.Context) {
	utils.RespondSuccess(c, http.StatusOK, gin.H{"status": "ok"})
}
