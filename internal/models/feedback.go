package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Feedback types. Unrecognized or missing types fall back to "suggestion".
const (
	FeedbackTypeSuggestion = "suggestion"
	FeedbackTypeComplaint  = "complaint"
	FeedbackTypePraise     = "praise"
	FeedbackTypeOther      = "other"
)

// FeedbackTypes lists every valid feedback type.
var FeedbackTypes = []string{
	FeedbackTypeSuggestion,
	FeedbackTypeComplaint,
	FeedbackTypePraise,
	FeedbackTypeOther,
}

// Feedback is a write-once customer message.
type Feedback struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name         string              `bson:"name" json:"name"`
	Email        string              `bson:"email" json:"email"`
	Phone        string              `bson:"phone,omitempty" json:"phone,omitempty"`
	Subject      string              `bson:"subject" json:"subject"`
	Message      string              `bson:"message" json:"message"`
	FeedbackType string              `bson:"feedbackType" json:"feedbackType"`
	UserID       *primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`
	CreatedAt    time.Time           `bson:"createdAt" json:"createdAt"`
}
