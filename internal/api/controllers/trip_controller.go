package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tripgenie/internal/models/request_models"
	"tripgenie/internal/models/response_models"
	"tripgenie/internal/services"
	"tripgenie/pkg/middleware"
	"tripgenie/pkg/utils"
)

type TripController struct {
	tripService services.TripServiceInterface
}

func NewTripController(tripService services.TripServiceInterface) *TripController {
	return &TripController{
		tripService: tripService,
	}
}

// SaveTrip godoc
// @Summary Save an itinerary to the caller's trips
// @Tags Trips
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.SaveTripRequest true "Itinerary"
// @Success 201 {object} response_models.SaveTripResponse
// @Failure 400 {object} utils.APIError
// @Failure 401 {object} utils.APIError
// @Failure 404 {object} utils.APIError
// @Router /api/trips [post]
func (t *TripController) SaveTrip(c *gin.Context) {
	var req request_models.SaveTripRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	trip, err := t.tripService.SaveTrip(c.Request.Context(), c.GetString(middleware.ContextUID), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, response_models.SaveTripResponse{
		Message: "Trip saved successfully",
		Trip:    trip,
	})
}

// ListTrips godoc
// @Summary List the caller's saved trips, newest first
// @Tags Trips
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response_models.TripListResponse
// @Failure 401 {object} utils.APIError
// @Router /api/trips [get]
func (t *TripController) ListTrips(c *gin.Context) {
	out, err := t.tripService.ListTrips(c.Request.Context(), c.GetString(middleware.ContextUID))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, out)
}

// GetTrip godoc
// @Summary Get one saved trip
// @Tags Trips
// @Produce json
// @Security BearerAuth
// @Param id path string true "Trip ID"
// @Success 200 {object} response_models.TripDetailResponse
// @Failure 401 {object} utils.APIError
// @Failure 403 {object} utils.APIError
// @Failure 404 {object} utils.APIError
// @Router /api/trips/{id} [get]
func (t *TripController) GetTrip(c *gin.Context) {
	trip, err := t.tripService.GetTrip(c.Request.Context(), c.GetString(middleware.ContextUID), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, response_models.TripDetailResponse{Trip: trip})
}

// UpdateTripDay godoc
// @Summary Replace the activities of one day of a saved trip
// @Tags Trips
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Trip ID"
// @Param day path int true "Day number"
// @Param request body request_models.UpdateTripDayRequest true "Revised activities"
// @Success 200 {object} response_models.TripDetailResponse
// @Failure 400 {object} utils.APIError
// @Failure 403 {object} utils.APIError
// @Failure 404 {object} utils.APIError
// @Router /api/trips/{id}/days/{day} [patch]
func (t *TripController) UpdateTripDay(c *gin.Context) {
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil || day < 1 {
		utils.RespondValidationError(c, utils.NewValidationError(utils.FieldError{Field: "day", Reason: "must be a positive integer"}))
		return
	}

	var req request_models.UpdateTripDayRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	trip, err := t.tripService.UpdateTripDay(c.Request.Context(), c.GetString(middleware.ContextUID), c.Param("id"), day, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, response_models.TripDetailResponse{Trip: trip})
}

// DeleteTrip godoc
// @Summary Delete a saved trip
// @Tags Trips
// @Security BearerAuth
// @Param id path string true "Trip ID"
// @Success 204
// @Failure 403 {object} utils.APIError
// @Failure 404 {object} utils.APIError
// @Router /api/trips/{id} [delete]
func (t *TripController) DeleteTrip(c *gin.Context) {
	if err := t.tripService.DeleteTrip(c.Request.Context(), c.GetString(middleware.ContextUID), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
