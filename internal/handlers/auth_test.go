package handlers

import (
	"errors"
	"testing"
	"time"

	"backend/internal/models"
)

func TestSortLoginHistoryNewestFirst(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	history := []models.LoginRecord{
		{Timestamp: base, IP: "first"},
		{Timestamp: base.Add(2 * time.Hour), IP: "third"},
		{Timestamp: base.Add(time.Hour), IP: "second"},
	}

	sorted := sortLoginHistory(history)

	want := []string{"third", "second", "first"}
	for i, ip := range want {
		if sorted[i].IP != ip {
			t.Fatalf("position %d: expected %q, got %q", i, ip, sorted[i].IP)
		}
	}
	// input order must be untouched
	if history[0].IP != "first" {
		t.Fatal("expected the input slice to be left alone")
	}
}

func TestSortLoginHistoryEmpty(t *testing.T) {
	if got := sortLoginHistory(nil); len(got) != 0 {
		t.Fatalf("expected empty result, got %d entries", len(got))
	}
}

func TestLowerCamel(t *testing.T) {
	if got := lowerCamel("Email"); got != "email" {
		t.Fatalf("expected email, got %q", got)
	}
	if got := lowerCamel(""); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestDuplicateUserMessage(t *testing.T) {
	phoneErr := errors.New(`write exception: write errors: [E11000 duplicate key error collection: dealership.users index: phone_unique]`)
	if got := duplicateUserMessage(phoneErr); got != "Phone number already exists" {
		t.Fatalf("expected phone message, got %q", got)
	}

	emailErr := errors.New(`write exception: write errors: [E11000 duplicate key error collection: dealership.users index: email_unique]`)
	if got := duplicateUserMessage(emailErr); got != "Email already exists" {
		t.Fatalf("expected email message, got %q", got)
	}
}

func TestValidReviewRating(t *testing.T) {
	for _, rating := range []float64{1, 2, 5} {
		if !validReviewRating(rating) {
			t.Fatalf("expected %v to be valid", rating)
		}
	}
	for _, rating := range []float64{0, 6, 3.5, -1} {
		if validReviewRating(rating) {
			t.Fatalf("expected %v to be rejected", rating)
		}
	}
}

func TestNormalizeFeedbackType(t *testing.T) {
	if got := normalizeFeedbackType("Complaint"); got != "complaint" {
		t.Fatalf("expected complaint, got %q", got)
	}
	for _, raw := range []string{"", "rant", "SUGGESTIONS"} {
		if got := normalizeFeedbackType(raw); got != "suggestion" {
			t.Fatalf("expected %q to default to suggestion, got %q", raw, got)
		}
	}
}
