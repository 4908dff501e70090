package handlers

import (
	"testing"
	"time"

	"backend/internal/models"
)

func validTestRideRequest() testRideRequest {
	return testRideRequest{
		Name:      "A",
		Email:     "a@x.com",
		Phone:     "9999999999",
		VehicleID: 7,
		Date:      "2026-09-15",
		Time:      "11:00",
		Showroom:  "Downtown",
	}
}

func TestValidateTestRideInputAccepted(t *testing.T) {
	if message, ok := validateTestRideInput(validTestRideRequest()); !ok {
		t.Fatalf("expected valid booking, got %q", message)
	}
}

func TestValidateTestRideInputMissingFields(t *testing.T) {
	req := validTestRideRequest()
	req.Showroom = ""

	message, ok := validateTestRideInput(req)
	if ok {
		t.Fatal("expected validation failure for missing showroom")
	}
	if message != "All fields are required" {
		t.Fatalf("unexpected message %q", message)
	}
}

func TestValidateTestRideInputEmailFormat(t *testing.T) {
	req := validTestRideRequest()
	req.Email = "a@x"

	message, ok := validateTestRideInput(req)
	if ok {
		t.Fatal("expected validation failure for bad email")
	}
	if message != "Invalid email format" {
		t.Fatalf("unexpected message %q", message)
	}
}

func TestValidateTestRideInputPhoneFormat(t *testing.T) {
	for _, phone := range []string{"123", "99999999990", "99999x9999"} {
		req := validTestRideRequest()
		req.Phone = phone

		message, ok := validateTestRideInput(req)
		if ok {
			t.Fatalf("expected validation failure for phone %q", phone)
		}
		if message != "Phone number must be 10 digits" {
			t.Fatalf("unexpected message %q", message)
		}
	}
}

func TestParseRideDateAcceptsBothFormats(t *testing.T) {
	if _, err := parseRideDate("2026-09-15"); err != nil {
		t.Fatalf("expected bare date to parse, got %v", err)
	}
	if _, err := parseRideDate("2026-09-15T11:00:00Z"); err != nil {
		t.Fatalf("expected RFC3339 to parse, got %v", err)
	}
	if _, err := parseRideDate("next tuesday"); err == nil {
		t.Fatal("expected parse failure for garbage date")
	}
}

func TestParseRideDateValue(t *testing.T) {
	got, err := parseRideDate("2026-09-15")
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestTestRideStatusEnum(t *testing.T) {
	for _, status := range models.TestRideStatuses {
		if !validStatus(status, models.TestRideStatuses) {
			t.Fatalf("expected %q to be valid", status)
		}
	}
	for _, status := range []string{"archived", "PENDING", ""} {
		if validStatus(status, models.TestRideStatuses) {
			t.Fatalf("expected %q to be rejected", status)
		}
	}
}

func TestSellVehicleStatusEnum(t *testing.T) {
	for _, status := range models.SellVehicleStatuses {
		if !validStatus(status, models.SellVehicleStatuses) {
			t.Fatalf("expected %q to be valid", status)
		}
	}
	if validStatus("confirmed", models.SellVehicleStatuses) {
		t.Fatal("expected a test-ride status to be rejected for sale submissions")
	}
}
