package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"vastorn-backend/internal/domain"
	"vastorn-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

type contactUsecase struct {
	repo       domain.ContactRepository
	dispatcher domain.Dispatcher
	validate   *validator.Validate
}

// NewContactUsecase creates a new contact usecase
func NewContactUsecase(repo domain.ContactRepository, dispatcher domain.Dispatcher, validate *validator.Validate) domain.ContactUsecase {
	return &contactUsecase{
		repo:       repo,
		dispatcher: dispatcher,
		validate:   validate,
	}
}

// Submit validates and persists a submission, then queues both
// notification emails. The emails are best-effort: a saved record is the
// only success condition.
func (uc *contactUsecase) Submit(ctx context.Context, req *domain.SubmitContactRequest, meta domain.RequestMeta) (*domain.ContactSubmission, error) {
	if err := uc.validate.Struct(req); err != nil {
		return nil, apperror.BadRequest("All fields are required")
	}

	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	message := strings.TrimSpace(req.Message)

	if name == "" || email == "" || message == "" {
		return nil, apperror.BadRequest("All fields are required")
	}
	if !domain.EmailPattern.MatchString(email) {
		return nil, apperror.BadRequest("Please enter a valid email")
	}

	sub := &domain.ContactSubmission{
		Name:        name,
		Email:       email,
		Message:     message,
		Status:      domain.StatusNew,
		IPAddress:   meta.IPAddress,
		UserAgent:   meta.UserAgent,
		SubmittedAt: time.Now().UTC(),
	}

	if err := uc.repo.Create(ctx, sub); err != nil {
		return nil, apperror.Internal(err)
	}

	uc.dispatcher.NotifyAdmin(sub)
	uc.dispatcher.NotifyUser(sub)

	return sub, nil
}

func (uc *contactUsecase) List(ctx context.Context, filter domain.ListFilter) ([]domain.ContactSubmission, *domain.Pagination, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	subs, total, err := uc.repo.Fetch(ctx, domain.Status(filter.Status), limit, offset)
	if err != nil {
		return nil, nil, apperror.Internal(err)
	}
	if subs == nil {
		subs = []domain.ContactSubmission{}
	}

	pagination := &domain.Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: (total + int64(limit) - 1) / int64(limit),
	}
	return subs, pagination, nil
}

func (uc *contactUsecase) Get(ctx context.Context, id string) (*domain.ContactSubmission, error) {
	sub, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return sub, nil
}

func (uc *contactUsecase) UpdateStatus(ctx context.Context, id, status string) (*domain.ContactSubmission, error) {
	st := domain.Status(status)
	if !st.Valid() {
		return nil, apperror.BadRequest("Invalid status")
	}

	sub, err := uc.repo.UpdateStatus(ctx, id, st)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return sub, nil
}

func (uc *contactUsecase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return mapRepoError(err)
	}
	return nil
}

// Stats derives the archived count from the others rather than querying
// it, so total == new + read + replied + archived always holds.
func (uc *contactUsecase) Stats(ctx context.Context) (*domain.SubmissionStats, error) {
	total, err := uc.repo.Count(ctx, "")
	if err != nil {
		return nil, apperror.Internal(err)
	}
	newCount, err := uc.repo.Count(ctx, domain.StatusNew)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	readCount, err := uc.repo.Count(ctx, domain.StatusRead)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	repliedCount, err := uc.repo.Count(ctx, domain.StatusReplied)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	thirtyDaysAgo := time.Now().UTC().AddDate(0, 0, -30)
	recent, err := uc.repo.CountSince(ctx, thirtyDaysAgo)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &domain.SubmissionStats{
		Total:      total,
		New:        newCount,
		Read:       readCount,
		Replied:    repliedCount,
		Archived:   total - newCount - readCount - repliedCount,
		Last30Days: recent,
	}, nil
}

func mapRepoError(err error) error {
	if errors.Is(err, domain.ErrSubmissionNotFound) {
		return apperror.NotFound("Contact not found")
	}
	return apperror.Internal(err)
}
