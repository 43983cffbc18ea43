package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tripgenie/internal/models/db_models"
)

type AccountRepository interface {
	// UpsertByUID creates the account on first sign-in and refreshes email, name
	// and last login afterwards. createdAt and savedTrips are never overwritten.
	UpsertByUID(ctx context.Context, account *db_models.Account) (*db_models.Account, error)
	FindByUID(ctx context.Context, uid string) (*db_models.Account, error)
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{
		db: db,
	}
}

func (a *accountRepository) UpsertByUID(ctx context.Context, account *db_models.Account) (*db_models.Account, error) {
	if account.SavedTrips == nil {
		account.SavedTrips = []string{}
	}
	err := a.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "uid"}},
			DoUpdates: clause.AssignmentColumns([]string{"email", "name", "last_login", "updated_at"}),
		}).
		Create(account).Error
	if err != nil {
		return nil, err
	}
	return a.FindByUID(ctx, account.UID)
}

func (a *accountRepository) FindByUID(ctx context.Context, uid string) (*db_models.Account, error) {
	var account db_models.Account
	err := a.db.WithContext(ctx).First(&account, "uid = ?", uid).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &account, nil
}
