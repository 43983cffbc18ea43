package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tripgenie/internal/models/request_models"
	"tripgenie/internal/models/response_models"
	"tripgenie/internal/services"
	"tripgenie/pkg/utils"
)

const (
	HeaderBudgetCurrency  = "X-Budget-Currency"
	HeaderBudgetConverted = "X-Budget-Converted"
)

type PlannerController struct {
	plannerService services.PlannerServiceInterface
}

func NewPlannerController(plannerService services.PlannerServiceInterface) *PlannerController {
	return &PlannerController{
		plannerService: plannerService,
	}
}

// GenerateItinerary godoc
// @Summary Generate a day-by-day itinerary
// @Description Builds an itinerary for a destination. X-Budget-Currency and X-Budget-Converted report which budget the plan was priced in.
// @Tags Planner
// @Accept json
// @Produce json
// @Param request body request_models.GenerateItineraryRequest true "Trip preferences"
// @Success 200 {object} response_models.Itinerary
// @Failure 400 {object} utils.APIError
// @Failure 500 {object} utils.APIError
// @Router /api/generate-itinerary [post]
func (p *PlannerController) GenerateItinerary(c *gin.Context) {
	var req request_models.GenerateItineraryRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	p.respondItinerary(c, req)
}

// SuggestDestinations godoc
// @Summary Suggest destinations
// @Tags Planner
// @Accept json
// @Produce json
// @Param request body request_models.SuggestDestinationsRequest true "Trip preferences without a destination"
// @Success 200 {object} response_models.SuggestionsResponse
// @Failure 400 {object} utils.APIError
// @Failure 500 {object} utils.APIError
// @Router /api/suggest-destinations [post]
func (p *PlannerController) SuggestDestinations(c *gin.Context) {
	var req request_models.SuggestDestinationsRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	p.respondSuggestions(c, req)
}

// Plan godoc
// @Summary Plan a trip from the planner form
// @Description With a destination the response is an itinerary, without one a list of suggestions.
// @Tags Planner
// @Accept json
// @Produce json
// @Param request body request_models.TripRequest true "Planner form"
// @Success 200 {object} response_models.Itinerary
// @Success 200 {object} response_models.SuggestionsResponse
// @Failure 400 {object} utils.APIError
// @Failure 500 {object} utils.APIError
// @Router /api/plan [post]
func (p *PlannerController) Plan(c *gin.Context) {
	var req request_models.TripRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	if req.WantsItinerary() {
		p.respondItinerary(c, req.ToGenerateRequest())
		return
	}
	p.respondSuggestions(c, req.ToSuggestRequest())
}

// AdjustDay godoc
// @Summary Regenerate one day after a disruption
// @Description Returns only the revised activities; the caller merges them into its itinerary.
// @Tags Planner
// @Accept json
// @Produce json
// @Param request body request_models.AdjustDayRequest true "Day plan and constraint"
// @Success 200 {object} response_models.RevisedActivitiesResponse
// @Failure 400 {object} utils.APIError
// @Failure 500 {object} utils.APIError
// @Router /api/adjust-day [post]
func (p *PlannerController) AdjustDay(c *gin.Context) {
	var req request_models.AdjustDayRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	out, err := p.plannerService.AdjustDay(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, out)
}

// EnrichItinerary godoc
// @Summary Suggest hidden gems for an itinerary
// @Tags Planner
// @Accept json
// @Produce json
// @Param request body request_models.EnrichItineraryRequest true "Itinerary and interests"
// @Success 200 {object} response_models.EnrichmentResponse
// @Failure 400 {object} utils.APIError
// @Failure 500 {object} utils.APIError
// @Router /api/enrich-itinerary [post]
func (p *PlannerController) EnrichItinerary(c *gin.Context) {
	var req request_models.EnrichItineraryRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	out, err := p.plannerService.EnrichItinerary(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, out)
}

func (p *PlannerController) respondItinerary(c *gin.Context, req request_models.GenerateItineraryRequest) {
	result, err := p.plannerService.GenerateItinerary(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	setBudgetHeaders(c, result.Budget)
	utils.RespondSuccess(c, http.StatusOK, result.Itinerary)
}

func (p *PlannerController) respondSuggestions(c *gin.Context, req request_models.SuggestDestinationsRequest) {
	out, err := p.plannerService.SuggestDestinations(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, out)
}

func setBudgetHeaders(c *gin.Context, budget response_models.BudgetQuote) {
	c.Header(HeaderBudgetCurrency, budget.Currency)
	c.Header(HeaderBudgetConverted, strconv.FormatBool(budget.Converted))
}
