package domain

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Status is the lifecycle state of a contact submission. Any status may
// move to any other; there is no transition graph.
type Status string

const (
	StatusNew      Status = "new"
	StatusRead     Status = "read"
	StatusReplied  Status = "replied"
	StatusArchived Status = "archived"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusRead, StatusReplied, StatusArchived:
		return true
	}
	return false
}

// ErrSubmissionNotFound is returned by the repository for unknown or
// malformed submission ids.
var ErrSubmissionNotFound = errors.New("submission not found")

// EmailPattern accepts local@domain.tld shaped addresses. Deliberately
// loose; the mail transport is the real arbiter of deliverability.
var EmailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// ContactSubmission is the persistent record behind the contact form.
// Only Status is mutable after creation.
type ContactSubmission struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email" json:"email"`
	Message     string             `bson:"message" json:"message"`
	Status      Status             `bson:"status" json:"status"`
	IPAddress   string             `bson:"ipAddress,omitempty" json:"ipAddress,omitempty"`
	UserAgent   string             `bson:"userAgent,omitempty" json:"userAgent,omitempty"`
	SubmittedAt time.Time          `bson:"submittedAt" json:"submittedAt"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// SubmitContactRequest is the POST /api/contact body.
type SubmitContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// UpdateStatusRequest is the PATCH /api/contacts/:id/status body. The
// value is checked against the Status enum in the usecase.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// RequestMeta carries fields observed from the originating HTTP request.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// ListFilter selects a page of submissions. Status "" means all.
type ListFilter struct {
	Status string
	Page   int
	Limit  int
}

// Pagination summarizes a listing result.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// SubmissionStats aggregates counts for the admin dashboard. Archived is
// derived, not queried: total minus the three counted statuses.
type SubmissionStats struct {
	Total      int64 `json:"total"`
	New        int64 `json:"new"`
	Read       int64 `json:"read"`
	Replied    int64 `json:"replied"`
	Archived   int64 `json:"archived"`
	Last30Days int64 `json:"last30Days"`
}

// ContactRepository is the document-store contract for submissions.
type ContactRepository interface {
	Create(ctx context.Context, sub *ContactSubmission) error
	GetByID(ctx context.Context, id string) (*ContactSubmission, error)
	// Fetch returns a page ordered by submittedAt descending plus the
	// total count for the same filter. Status "" matches everything.
	Fetch(ctx context.Context, status Status, limit, offset int) ([]ContactSubmission, int64, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*ContactSubmission, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, status Status) (int64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
}

// ContactUsecase defines the contact form operations.
type ContactUsecase interface {
	Submit(ctx context.Context, req *SubmitContactRequest, meta RequestMeta) (*ContactSubmission, error)
	List(ctx context.Context, filter ListFilter) ([]ContactSubmission, *Pagination, error)
	Get(ctx context.Context, id string) (*ContactSubmission, error)
	UpdateStatus(ctx context.Context, id, status string) (*ContactSubmission, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*SubmissionStats, error)
}

// Dispatcher hands notification work to a background queue. Calls never
// block and never report delivery failures to the caller; persistence
// success is the API's completion signal.
type Dispatcher interface {
	NotifyAdmin(sub *ContactSubmission)
	NotifyUser(sub *ContactSubmission)
}
