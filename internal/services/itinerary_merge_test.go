package services

import (
	"errors"
	"reflect"
	"testing"

	"tripgenie/internal/models/response_models"
	"tripgenie/pkg/utils"
)

func sampleItinerary() response_models.Itinerary {
	return response_models.Itinerary{
		TripName: "Kyoto",
		Itinerary: []response_models.DayPlan{
			{Day: 1, Title: "Temples", Activities: []string{"Kinkaku-ji", "Ryoan-ji"}},
			{Day: 2, Title: "Arashiyama", Activities: []string{"Bamboo grove"}},
			{Day: 3, Title: "Gion", Activities: []string{"Tea ceremony"}},
		},
	}
}

func TestAdjustDayReplacesOnlyTargetDay(t *testing.T) {
	original := sampleItinerary()
	revised := []string{"Kyoto National Museum", "Nishiki Market"}

	got, err := AdjustDay(original, 2, revised)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got.Itinerary[1].Activities, revised) {
		t.Fatalf("day 2 not replaced: %+v", got.Itinerary[1])
	}
	if got.Itinerary[1].Title != "Arashiyama" || got.Itinerary[1].Day != 2 {
		t.Fatalf("day number and title should be kept: %+v", got.Itinerary[1])
	}
	if !reflect.DeepEqual(got.Itinerary[0], original.Itinerary[0]) || !reflect.DeepEqual(got.Itinerary[2], original.Itinerary[2]) {
		t.Fatalf("other days changed: %+v", got.Itinerary)
	}
	if original.Itinerary[1].Activities[0] != "Bamboo grove" {
		t.Fatalf("input itinerary was modified")
	}

	revised[0] = "changed later"
	if got.Itinerary[1].Activities[0] != "Kyoto National Museum" {
		t.Fatalf("result shares the caller's activity slice")
	}
}

func TestAdjustDayIsIdempotent(t *testing.T) {
	activities := []string{"Fushimi Inari at dawn"}
	once, err := AdjustDay(sampleItinerary(), 1, activities)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	twice, err := AdjustDay(once, 1, activities)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("second application changed the result")
	}
}

func TestAdjustDayUnknownDay(t *testing.T) {
	original := sampleItinerary()
	got, err := AdjustDay(original, 9, []string{"anything"})
	if !errors.Is(err, utils.ErrDayNotFound) {
		t.Fatalf("expected ErrDayNotFound, got %v", err)
	}
	if !reflect.DeepEqual(got, original) {
		t.Fatalf("itinerary should be returned unchanged")
	}
}
