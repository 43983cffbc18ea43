package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripgenie/internal/models/request_models"
	"tripgenie/internal/models/response_models"
	"tripgenie/internal/services"
	"tripgenie/pkg/utils"
)

type AccountController struct {
	accountService services.AccountServiceInterface
}

func NewAccountController(accountService services.AccountServiceInterface) *AccountController {
	return &AccountController{
		accountService: accountService,
	}
}

// UpsertUser godoc
// @Summary Create or refresh a user after sign-in
// @Tags Users
// @Accept json
// @Produce json
// @Param request body request_models.UpsertUserRequest true "Identity provider profile"
// @Success 200 {object} response_models.UpsertUserResponse
// @Failure 400 {object} utils.APIError
// @Failure 500 {object} utils.APIError
// @Router /api/users [post]
func (a *AccountController) UpsertUser(c *gin.Context) {
	var req request_models.UpsertUserRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	user, err := a.accountService.UpsertUser(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, response_models.UpsertUserResponse{
		Message: "User created or updated successfully",
		User:    user,
	})
}
