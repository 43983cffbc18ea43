package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tripgenie/internal/models/db_models"
	"tripgenie/internal/models/request_models"
	"tripgenie/pkg/utils"
)

type memoryAccounts struct {
	byUID map[string]*db_models.Account
	err   error
}

func newMemoryAccounts() *memoryAccounts {
	return &memoryAccounts{byUID: map[string]*db_models.Account{}}
}

func (m *memoryAccounts) UpsertByUID(_ context.Context, account *db_models.Account) (*db_models.Account, error) {
	if m.err != nil {
		return nil, m.err
	}
	if existing, ok := m.byUID[account.UID]; ok {
		existing.Email = account.Email
		existing.Name = account.Name
		existing.LastLogin = account.LastLogin
		return existing, nil
	}
	account.ID = uuid.New()
	account.CreatedAt = account.LastLogin
	m.byUID[account.UID] = account
	return account, nil
}

func (m *memoryAccounts) FindByUID(_ context.Context, uid string) (*db_models.Account, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.byUID[uid], nil
}

type memoryTrips struct {
	byID map[string]*db_models.SavedTrip
}

func newMemoryTrips() *memoryTrips {
	return &memoryTrips{byID: map[string]*db_models.SavedTrip{}}
}

func (m *memoryTrips) SaveForAccount(_ context.Context, account *db_models.Account, trip *db_models.SavedTrip) error {
	trip.ID = uuid.New()
	trip.AccountID = account.ID
	trip.CreatedAt = int64(len(m.byID) + 1)
	m.byID[trip.ID.String()] = trip
	account.SavedTrips = append([]string{trip.ID.String()}, account.SavedTrips...)
	return nil
}

func (m *memoryTrips) ListByOwner(_ context.Context, uid string) ([]db_models.SavedTrip, error) {
	var out []db_models.SavedTrip
	for _, t := range m.byID {
		if t.OwnerUID == uid {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *memoryTrips) FindByID(_ context.Context, id string) (*db_models.SavedTrip, error) {
	t, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (m *memoryTrips) UpdateDays(_ context.Context, trip *db_models.SavedTrip) error {
	m.byID[trip.ID.String()] = trip
	return nil
}

func (m *memoryTrips) Delete(_ context.Context, trip *db_models.SavedTrip) error {
	delete(m.byID, trip.ID.String())
	return nil
}

func newTripFixture(t *testing.T) (TripServiceInterface, *memoryAccounts, *memoryTrips) {
	t.Helper()
	accounts := newMemoryAccounts()
	trips := newMemoryTrips()
	accountSvc := NewAccountService(accounts, zap.NewNop())
	for _, uid := range []string{"alice", "bob"} {
		if _, err := accountSvc.UpsertUser(context.Background(), request_models.UpsertUserRequest{UID: uid, Email: uid + "@example.com"}); err != nil {
			t.Fatalf("seed account: %v", err)
		}
	}
	return NewTripService(accounts, trips, zap.NewNop()), accounts, trips
}

func TestSaveTripRecordsIDOnAccount(t *testing.T) {
	svc, accounts, _ := newTripFixture(t)
	ctx := context.Background()

	first, err := svc.SaveTrip(ctx, "alice", request_models.SaveTripRequest{Itinerary: sampleItinerary()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.SaveTrip(ctx, "alice", request_models.SaveTripRequest{Itinerary: sampleItinerary()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{second.ID, first.ID}
	if got := []string(accounts.byUID["alice"].SavedTrips); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected newest trip first %v, got %v", want, got)
	}
	if first.TripName != "Kyoto" || len(first.Itinerary) != 3 || first.CreatedAt == "" {
		t.Fatalf("unexpected saved trip %+v", first)
	}
}

func TestSaveTripWithoutAccount(t *testing.T) {
	svc, _, _ := newTripFixture(t)
	_, err := svc.SaveTrip(context.Background(), "mallory", request_models.SaveTripRequest{Itinerary: sampleItinerary()})
	if !errors.Is(err, utils.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestTripOwnership(t *testing.T) {
	svc, _, trips := newTripFixture(t)
	ctx := context.Background()

	saved, err := svc.SaveTrip(ctx, "alice", request_models.SaveTripRequest{Itinerary: sampleItinerary()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.GetTrip(ctx, "bob", saved.ID); !errors.Is(err, utils.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.DeleteTrip(ctx, "bob", saved.ID); !errors.Is(err, utils.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.GetTrip(ctx, "alice", uuid.NewString()); !errors.Is(err, utils.ErrTripNotFound) {
		t.Fatalf("expected ErrTripNotFound, got %v", err)
	}

	list, err := svc.ListTrips(ctx, "bob")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if list.SavedTrips == nil || len(list.SavedTrips) != 0 {
		t.Fatalf("bob should see an empty list, got %+v", list.SavedTrips)
	}

	if err := svc.DeleteTrip(ctx, "alice", saved.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trips.byID) != 0 {
		t.Fatalf("trip not deleted")
	}
}

func TestUpdateTripDay(t *testing.T) {
	svc, _, _ := newTripFixture(t)
	ctx := context.Background()

	saved, err := svc.SaveTrip(ctx, "alice", request_models.SaveTripRequest{Itinerary: sampleItinerary()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := svc.UpdateTripDay(ctx, "alice", saved.ID, 3, request_models.UpdateTripDayRequest{Activities: []string{"Pontocho dinner"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := updated.Itinerary[2]; got.Title != "Gion" || !reflect.DeepEqual(got.Activities, []string{"Pontocho dinner"}) {
		t.Fatalf("unexpected day 3 %+v", got)
	}

	fetched, err := svc.GetTrip(ctx, "alice", saved.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(fetched.Itinerary, updated.Itinerary) {
		t.Fatalf("update not persisted")
	}

	if _, err := svc.UpdateTripDay(ctx, "alice", saved.ID, 7, request_models.UpdateTripDayRequest{Activities: []string{"x"}}); !errors.Is(err, utils.ErrDayNotFound) {
		t.Fatalf("expected ErrDayNotFound, got %v", err)
	}
}

func TestUpsertUserKeepsSavedTrips(t *testing.T) {
	svc, accounts, _ := newTripFixture(t)
	ctx := context.Background()
	saved, err := svc.SaveTrip(ctx, "alice", request_models.SaveTripRequest{Itinerary: sampleItinerary()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	accountSvc := NewAccountService(accounts, zap.NewNop())
	got, err := accountSvc.UpsertUser(ctx, request_models.UpsertUserRequest{UID: "alice", Email: "new@example.com", Name: "Alice"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Email != "new@example.com" || !reflect.DeepEqual(got.SavedTrips, []string{saved.ID}) {
		t.Fatalf("unexpected account %+v", got)
	}

	accounts.err = errors.New("connection refused")
	if _, err := accountSvc.UpsertUser(ctx, request_models.UpsertUserRequest{UID: "alice", Email: "a@example.com"}); !errors.Is(err, utils.ErrDatabaseError) {
		t.Fatalf("expected ErrDatabaseError, got %v", err)
	}
}
