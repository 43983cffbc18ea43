package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"tripgenie/internal/models/db_models"
	"tripgenie/internal/models/request_models"
	"tripgenie/internal/models/response_models"
	"tripgenie/internal/repositories"
	"tripgenie/pkg/utils"
)

type AccountServiceInterface interface {
	UpsertUser(ctx context.Context, request request_models.UpsertUserRequest) (*response_models.AccountResponse, error)
}

type AccountService struct {
	accountRepo repositories.AccountRepository
	logger      *zap.Logger
}

func NewAccountService(accountRepo repositories.AccountRepository, logger *zap.Logger) AccountServiceInterface {
	return &AccountService{
		accountRepo: accountRepo,
		logger:      logger,
	}
}

func (a *AccountService) UpsertUser(ctx context.Context, request request_models.UpsertUserRequest) (*response_models.AccountResponse, error) {
	account, err := a.accountRepo.UpsertByUID(ctx, &db_models.Account{
		UID:       request.UID,
		Email:     request.Email,
		Name:      request.Name,
		LastLogin: utils.NowUnixSeconds(),
	})
	if err != nil {
		a.logger.Error("upsert account", zap.String("uid", request.UID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return toAccountResponse(account), nil
}

func toAccountResponse(a *db_models.Account) *response_models.AccountResponse {
	savedTrips := []string(a.SavedTrips)
	if savedTrips == nil {
		savedTrips = []string{}
	}
	return &response_models.AccountResponse{
		ID:         a.ID.String(),
		UID:        a.UID,
		Email:      a.Email,
		Name:       a.Name,
		CreatedAt:  utils.FormatUnixRFC3339(a.CreatedAt),
		LastLogin:  utils.FormatUnixRFC3339(a.LastLogin),
		SavedTrips: savedTrips,
	}
}
