package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/datatypes"

	"tripgenie/internal/infra"
	"tripgenie/internal/models/db_models"
	"tripgenie/internal/models/response_models"
)

type accountDocument struct {
	ID         string   `bson:"_id"`
	UID        string   `bson:"uid"`
	Email      string   `bson:"email"`
	Name       string   `bson:"name,omitempty"`
	CreatedAt  int64    `bson:"createdAt"`
	UpdatedAt  int64    `bson:"updatedAt"`
	LastLogin  int64    `bson:"lastLogin"`
	SavedTrips []string `bson:"savedTrips"`
}

func (d *accountDocument) model() *db_models.Account {
	id, _ := uuid.Parse(d.ID)
	return &db_models.Account{
		BaseModel:  db_models.BaseModel{ID: id, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt},
		UID:        d.UID,
		Email:      d.Email,
		Name:       d.Name,
		LastLogin:  d.LastLogin,
		SavedTrips: d.SavedTrips,
	}
}

type tripDocument struct {
	ID               string                        `bson:"_id"`
	AccountID        string                        `bson:"accountId"`
	OwnerUID         string                        `bson:"ownerUid"`
	TripName         string                        `bson:"tripName"`
	SourceLocation   string                        `bson:"sourceLocation,omitempty"`
	Destination      string                        `bson:"destination,omitempty"`
	EstimatedCost    response_models.EstimatedCost `bson:"estimatedCost"`
	BudgetAssessment string                        `bson:"budgetAssessment"`
	Itinerary        []response_models.DayPlan     `bson:"itinerary"`
	CreatedAt        int64                         `bson:"createdAt"`
	UpdatedAt        int64                         `bson:"updatedAt"`
}

func newTripDocument(t *db_models.SavedTrip) tripDocument {
	return tripDocument{
		ID:               t.ID.String(),
		AccountID:        t.AccountID.String(),
		OwnerUID:         t.OwnerUID,
		TripName:         t.TripName,
		SourceLocation:   t.SourceLocation,
		Destination:      t.Destination,
		EstimatedCost:    t.EstimatedCost.Data(),
		BudgetAssessment: t.BudgetAssessment,
		Itinerary:        t.Days.Data(),
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}

func (d *tripDocument) model() db_models.SavedTrip {
	id, _ := uuid.Parse(d.ID)
	accountID, _ := uuid.Parse(d.AccountID)
	return db_models.SavedTrip{
		BaseModel:        db_models.BaseModel{ID: id, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt},
		AccountID:        accountID,
		OwnerUID:         d.OwnerUID,
		TripName:         d.TripName,
		SourceLocation:   d.SourceLocation,
		Destination:      d.Destination,
		EstimatedCost:    datatypes.NewJSONType(d.EstimatedCost),
		BudgetAssessment: d.BudgetAssessment,
		Days:             datatypes.NewJSONType(d.Itinerary),
	}
}

type mongoAccountRepository struct {
	users *mongo.Collection
}

func NewMongoAccountRepository(db *mongo.Database) AccountRepository {
	return &mongoAccountRepository{users: db.Collection(infra.UsersCollection)}
}

func (r *mongoAccountRepository) UpsertByUID(ctx context.Context, account *db_models.Account) (*db_models.Account, error) {
	now := time.Now().Unix()
	res := r.users.FindOneAndUpdate(ctx,
		bson.M{"uid": account.UID},
		bson.M{
			"$set": bson.M{
				"email":     account.Email,
				"name":      account.Name,
				"lastLogin": account.LastLogin,
				"updatedAt": now,
			},
			"$setOnInsert": bson.M{
				"_id":        db_models.NewID().String(),
				"createdAt":  now,
				"savedTrips": []string{},
			},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	)

	var doc accountDocument
	if err := res.Decode(&doc); err != nil {
		return nil, err
	}
	return doc.model(), nil
}

func (r *mongoAccountRepository) FindByUID(ctx context.Context, uid string) (*db_models.Account, error) {
	var doc accountDocument
	err := r.users.FindOne(ctx, bson.M{"uid": uid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return doc.model(), nil
}

type mongoTripRepository struct {
	trips *mongo.Collection
	users *mongo.Collection
}

func NewMongoTripRepository(db *mongo.Database) TripRepository {
	return &mongoTripRepository{
		trips: db.Collection(infra.TripsCollection),
		users: db.Collection(infra.UsersCollection),
	}
}

// SaveForAccount inserts the trip and then prepends its id to the owner's list.
// Standalone servers have no transactions, so a failed second step removes the
// trip again.
func (r *mongoTripRepository) SaveForAccount(ctx context.Context, account *db_models.Account, trip *db_models.SavedTrip) error {
	if trip.ID == uuid.Nil {
		trip.ID = db_models.NewID()
	}
	now := time.Now().Unix()
	trip.CreatedAt, trip.UpdatedAt = now, now
	trip.AccountID = account.ID

	if _, err := r.trips.InsertOne(ctx, newTripDocument(trip)); err != nil {
		return err
	}
	_, err := r.users.UpdateOne(ctx,
		bson.M{"_id": account.ID.String()},
		bson.M{"$push": bson.M{"savedTrips": bson.M{
			"$each":     []string{trip.ID.String()},
			"$position": 0,
		}}},
	)
	if err != nil {
		_, _ = r.trips.DeleteOne(ctx, bson.M{"_id": trip.ID.String()})
		return err
	}
	return nil
}

func (r *mongoTripRepository) ListByOwner(ctx context.Context, uid string) ([]db_models.SavedTrip, error) {
	cursor, err := r.trips.Find(ctx,
		bson.M{"ownerUid": uid},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []tripDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	trips := make([]db_models.SavedTrip, 0, len(docs))
	for i := range docs {
		trips = append(trips, docs[i].model())
	}
	return trips, nil
}

func (r *mongoTripRepository) FindByID(ctx context.Context, id string) (*db_models.SavedTrip, error) {
	var doc tripDocument
	err := r.trips.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	trip := doc.model()
	return &trip, nil
}

func (r *mongoTripRepository) UpdateDays(ctx context.Context, trip *db_models.SavedTrip) error {
	_, err := r.trips.UpdateOne(ctx,
		bson.M{"_id": trip.ID.String()},
		bson.M{"$set": bson.M{"itinerary": trip.Days.Data(), "updatedAt": time.Now().Unix()}},
	)
	return err
}

func (r *mongoTripRepository) Delete(ctx context.Context, trip *db_models.SavedTrip) error {
	if _, err := r.trips.DeleteOne(ctx, bson.M{"_id": trip.ID.String()}); err != nil {
		return err
	}
	_, err := r.users.UpdateOne(ctx,
		bson.M{"_id": trip.AccountID.String()},
		bson.M{"$pull": bson.M{"savedTrips": trip.ID.String()}},
	)
	return err
}
