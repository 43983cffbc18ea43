package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripgenie/internal/models/request_models"
	"tripgenie/internal/services"
	"tripgenie/pkg/utils"
)

type MapsController struct {
	mapsService services.MapsServiceInterface
}

func NewMapsController(mapsService services.MapsServiceInterface) *MapsController {
	return &MapsController{
		mapsService: mapsService,
	}
}

// FindAgencies godoc
// @Summary Find travel agencies near a destination
// @Tags Maps
// @Produce json
// @Param destination query string true "Destination"
// @Success 200 {object} response_models.AgenciesResponse
// @Failure 400 {object} utils.APIError
// @Failure 500 {object} utils.APIError
// @Router /api/find-agencies [get]
func (m *MapsController) FindAgencies(c *gin.Context) {
	var req request_models.FindAgenciesRequest
	if err := utils.BindQuery(c, &req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	out, err := m.mapsService.FindAgencies(c.Request.Context(), req.Destination)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, out)
}

// Geocode godoc
// @Summary Resolve place names to coordinates
// @Description Unresolvable locations are omitted from the result.
// @Tags Maps
// @Accept json
// @Produce json
// @Param request body request_models.GeocodeRequest true "Locations"
// @Success 200 {object} response_models.CoordinatesResponse
// @Failure 400 {object} utils.APIError
// @Failure 500 {object} utils.APIError
// @Router /api/geocode [post]
func (m *MapsController) Geocode(c *gin.Context) {
	var req request_models.GeocodeRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	out, err := m.mapsService.Geocode(c.Request.Context(), req.Locations)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, out)
}
