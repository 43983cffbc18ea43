package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tripgenie/internal/infra"
	"tripgenie/internal/models/db_models"
)

type TripRepository interface {
	// SaveForAccount stores trip and records its id at the front of the
	// account's savedTrips in one transaction.
	SaveForAccount(ctx context.Context, account *db_models.Account, trip *db_models.SavedTrip) error
	ListByOwner(ctx context.Context, uid string) ([]db_models.SavedTrip, error)
	FindByID(ctx context.Context, id string) (*db_models.SavedTrip, error)
	UpdateDays(ctx context.Context, trip *db_models.SavedTrip) error
	Delete(ctx context.Context, trip *db_models.SavedTrip) error
}

type tripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) TripRepository {
	return &tripRepository{db: db}
}

func (r *tripRepository) SaveForAccount(ctx context.Context, account *db_models.Account, trip *db_models.SavedTrip) (err error) {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer func() { err = infra.ReleaseTransaction(tx, err) }()

	trip.AccountID = account.ID
	if err = tx.Create(trip).Error; err != nil {
		return err
	}
	err = tx.Model(&db_models.Account{}).
		Where("id = ?", account.ID).
		Update("saved_trips", gorm.Expr("array_prepend(?::text, COALESCE(saved_trips, '{}'))", trip.ID.String())).
		Error
	return err
}

func (r *tripRepository) ListByOwner(ctx context.Context, uid string) ([]db_models.SavedTrip, error) {
	var trips []db_models.SavedTrip
	err := r.db.WithContext(ctx).
		Where("owner_uid = ?", uid).
		Order("created_at DESC, id DESC").
		Find(&trips).Error
	if err != nil {
		return nil, err
	}
	return trips, nil
}

func (r *tripRepository) FindByID(ctx context.Context, id string) (*db_models.SavedTrip, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}

	var trip db_models.SavedTrip
	err := r.db.WithContext(ctx).First(&trip, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &trip, nil
}

func (r *tripRepository) UpdateDays(ctx context.Context, trip *db_models.SavedTrip) error {
	return r.db.WithContext(ctx).Model(trip).Update("itinerary", trip.Days).Error
}

func (r *tripRepository) Delete(ctx context.Context, trip *db_models.SavedTrip) (err error) {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer func() { err = infra.ReleaseTransaction(tx, err) }()

	if err = tx.Delete(trip).Error; err != nil {
		return err
	}
	err = tx.Model(&db_models.Account{}).
		Where("id = ?", trip.AccountID).
		Update("saved_trips", gorm.Expr("array_remove(saved_trips, ?::text)", trip.ID.String())).
		Error
	return err
}
