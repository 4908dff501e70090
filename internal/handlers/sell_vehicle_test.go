package handlers

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func validSellVehicleRequest() sellVehicleRequest {
	return sellVehicleRequest{
		Name:          "A",
		Email:         "a@x.com",
		Phone:         "9999999999",
		VehicleBrand:  "Honda",
		VehicleModel:  "City",
		Year:          2020,
		KmDriven:      42000,
		ExpectedPrice: 350000,
	}
}

func TestValidateSellVehicleInputAccepted(t *testing.T) {
	if message, ok := validateSellVehicleInput(validSellVehicleRequest(), time.Now()); !ok {
		t.Fatalf("expected valid submission, got %q", message)
	}
}

func TestValidateSellVehicleInputMissingFields(t *testing.T) {
	req := validSellVehicleRequest()
	req.Name = ""
	req.ExpectedPrice = 0

	message, ok := validateSellVehicleInput(req, time.Now())
	if ok {
		t.Fatal("expected validation failure for missing fields")
	}
	if !strings.HasPrefix(message, "Missing required fields: ") {
		t.Fatalf("unexpected message %q", message)
	}
	if !strings.Contains(message, "name") || !strings.Contains(message, "expectedPrice") {
		t.Fatalf("expected both missing fields listed, got %q", message)
	}
}

func TestValidateSellVehicleInputYearTooOld(t *testing.T) {
	now := time.Now()
	req := validSellVehicleRequest()
	req.Year = 1980

	message, ok := validateSellVehicleInput(req, now)
	if ok {
		t.Fatal("expected validation failure for year 1980")
	}
	want := fmt.Sprintf("Year must be between 1990 and %d", now.Year())
	if message != want {
		t.Fatalf("expected %q, got %q", want, message)
	}
}

func TestValidateSellVehicleInputYearInFuture(t *testing.T) {
	now := time.Now()
	req := validSellVehicleRequest()
	req.Year = now.Year() + 1

	if _, ok := validateSellVehicleInput(req, now); ok {
		t.Fatal("expected validation failure for a future year")
	}
}

func TestValidateSellVehicleInputNegativeKmDriven(t *testing.T) {
	req := validSellVehicleRequest()
	req.KmDriven = -1

	message, ok := validateSellVehicleInput(req, time.Now())
	if ok {
		t.Fatal("expected validation failure for negative kmDriven")
	}
	if message != "Kilometers driven cannot be negative" {
		t.Fatalf("unexpected message %q", message)
	}
}

func TestValidateSellVehicleInputPriceTooLow(t *testing.T) {
	req := validSellVehicleRequest()
	req.ExpectedPrice = 999

	message, ok := validateSellVehicleInput(req, time.Now())
	if ok {
		t.Fatal("expected validation failure for price below 1000")
	}
	if message != "Expected price must be at least ₹1000" {
		t.Fatalf("unexpected message %q", message)
	}
}

func TestValidateSellVehicleInputBadEmailAndPhone(t *testing.T) {
	req := validSellVehicleRequest()
	req.Email = "not-an-email"
	if message, ok := validateSellVehicleInput(req, time.Now()); ok || message != "Invalid email format" {
		t.Fatalf("expected email failure, got %q", message)
	}

	req = validSellVehicleRequest()
	req.Phone = "12345"
	if message, ok := validateSellVehicleInput(req, time.Now()); ok || message != "Phone number must be 10 digits" {
		t.Fatalf("expected phone failure, got %q", message)
	}
}

func TestNormalizeCondition(t *testing.T) {
	if got := normalizeCondition("Excellent"); got != "excellent" {
		t.Fatalf("expected lowercased condition, got %q", got)
	}
	if got := normalizeCondition(""); got != "good" {
		t.Fatalf("expected default condition, got %q", got)
	}
	if got := normalizeCondition("mint"); got != "good" {
		t.Fatalf("expected unrecognized condition to default, got %q", got)
	}
}
