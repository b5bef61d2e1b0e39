package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"vastorn-backend/internal/domain"
	"vastorn-backend/internal/usecase"
	"vastorn-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Mock Repository
type MockContactRepo struct {
	mock.Mock
}

func (m *MockContactRepo) Create(ctx context.Context, sub *domain.ContactSubmission) error {
	return m.Called(ctx, sub).Error(0)
}

func (m *MockContactRepo) GetByID(ctx context.Context, id string) (*domain.ContactSubmission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContactSubmission), args.Error(1)
}

func (m *MockContactRepo) Fetch(ctx context.Context, status domain.Status, limit, offset int) ([]domain.ContactSubmission, int64, error) {
	args := m.Called(ctx, status, limit, offset)
	var subs []domain.ContactSubmission
	if args.Get(0) != nil {
		subs = args.Get(0).([]domain.ContactSubmission)
	}
	return subs, args.Get(1).(int64), args.Error(2)
}

func (m *MockContactRepo) UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.ContactSubmission, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContactSubmission), args.Error(1)
}

func (m *MockContactRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockContactRepo) Count(ctx context.Context, status domain.Status) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockContactRepo) CountSince(ctx context.Context, since time.Time) (int64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(int64), args.Error(1)
}

// Mock Dispatcher
type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) NotifyAdmin(sub *domain.ContactSubmission) {
	m.Called(sub)
}

func (m *MockDispatcher) NotifyUser(sub *domain.ContactSubmission) {
	m.Called(sub)
}

func newUsecase(repo *MockContactRepo, dispatcher *MockDispatcher) domain.ContactUsecase {
	return usecase.NewContactUsecase(repo, dispatcher, validator.New())
}

func appErrCode(t *testing.T, err error) int {
	t.Helper()
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperror.AppError, got %T: %v", err, err)
	}
	return appErr.Code
}

func TestSubmit(t *testing.T) {
	t.Run("Should persist trimmed fields and queue both notifications", func(t *testing.T) {
		repo := new(MockContactRepo)
		dispatcher := new(MockDispatcher)
		uc := newUsecase(repo, dispatcher)

		repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.ContactSubmission")).
			Run(func(args mock.Arguments) {
				sub := args.Get(1).(*domain.ContactSubmission)
				sub.ID = primitive.NewObjectID()
			}).Return(nil)
		dispatcher.On("NotifyAdmin", mock.Anything).Once()
		dispatcher.On("NotifyUser", mock.Anything).Once()

		sub, err := uc.Submit(context.Background(), &domain.SubmitContactRequest{
			Name:    "  Ann  ",
			Email:   " Ann@X.Com ",
			Message: " hi ",
		}, domain.RequestMeta{IPAddress: "10.0.0.1", UserAgent: "curl/8"})

		assert.NoError(t, err)
		assert.Equal(t, "Ann", sub.Name)
		assert.Equal(t, "ann@x.com", sub.Email)
		assert.Equal(t, "hi", sub.Message)
		assert.Equal(t, domain.StatusNew, sub.Status)
		assert.Equal(t, "10.0.0.1", sub.IPAddress)
		assert.False(t, sub.ID.IsZero())
		repo.AssertExpectations(t)
		dispatcher.AssertExpectations(t)
	})

	t.Run("Should fail with 400 when a required field is missing", func(t *testing.T) {
		repo := new(MockContactRepo)
		dispatcher := new(MockDispatcher)
		uc := newUsecase(repo, dispatcher)

		_, err := uc.Submit(context.Background(), &domain.SubmitContactRequest{
			Name:  "Ann",
			Email: "ann@x.com",
		}, domain.RequestMeta{})

		assert.Equal(t, http.StatusBadRequest, appErrCode(t, err))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		dispatcher.AssertNotCalled(t, "NotifyAdmin", mock.Anything)
	})

	t.Run("Should fail with 400 when a field is whitespace only", func(t *testing.T) {
		repo := new(MockContactRepo)
		dispatcher := new(MockDispatcher)
		uc := newUsecase(repo, dispatcher)

		_, err := uc.Submit(context.Background(), &domain.SubmitContactRequest{
			Name:    "   ",
			Email:   "ann@x.com",
			Message: "hi",
		}, domain.RequestMeta{})

		assert.Equal(t, http.StatusBadRequest, appErrCode(t, err))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should fail with 400 on a malformed email", func(t *testing.T) {
		repo := new(MockContactRepo)
		dispatcher := new(MockDispatcher)
		uc := newUsecase(repo, dispatcher)

		_, err := uc.Submit(context.Background(), &domain.SubmitContactRequest{
			Name:    "Ann",
			Email:   "not-an-email",
			Message: "hi",
		}, domain.RequestMeta{})

		assert.Equal(t, http.StatusBadRequest, appErrCode(t, err))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should not queue notifications when persistence fails", func(t *testing.T) {
		repo := new(MockContactRepo)
		dispatcher := new(MockDispatcher)
		uc := newUsecase(repo, dispatcher)

		repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("write failed"))

		_, err := uc.Submit(context.Background(), &domain.SubmitContactRequest{
			Name:    "Ann",
			Email:   "ann@x.com",
			Message: "hi",
		}, domain.RequestMeta{})

		assert.Equal(t, http.StatusInternalServerError, appErrCode(t, err))
		dispatcher.AssertNotCalled(t, "NotifyAdmin", mock.Anything)
		dispatcher.AssertNotCalled(t, "NotifyUser", mock.Anything)
	})
}

func TestUpdateStatus(t *testing.T) {
	t.Run("Should reject a status outside the enum without touching the store", func(t *testing.T) {
		repo := new(MockContactRepo)
		uc := newUsecase(repo, new(MockDispatcher))

		_, err := uc.UpdateStatus(context.Background(), primitive.NewObjectID().Hex(), "spam")

		assert.Equal(t, http.StatusBadRequest, appErrCode(t, err))
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should return 404 for an unknown id", func(t *testing.T) {
		repo := new(MockContactRepo)
		uc := newUsecase(repo, new(MockDispatcher))

		repo.On("UpdateStatus", mock.Anything, "missing", domain.StatusRead).
			Return(nil, domain.ErrSubmissionNotFound)

		_, err := uc.UpdateStatus(context.Background(), "missing", "read")

		assert.Equal(t, http.StatusNotFound, appErrCode(t, err))
	})

	t.Run("Should return the updated record", func(t *testing.T) {
		repo := new(MockContactRepo)
		uc := newUsecase(repo, new(MockDispatcher))

		updated := &domain.ContactSubmission{Status: domain.StatusRead}
		repo.On("UpdateStatus", mock.Anything, "abc", domain.StatusRead).Return(updated, nil)

		sub, err := uc.UpdateStatus(context.Background(), "abc", "read")

		assert.NoError(t, err)
		assert.Equal(t, domain.StatusRead, sub.Status)
	})
}

func TestList(t *testing.T) {
	t.Run("Should default to page 1, limit 20", func(t *testing.T) {
		repo := new(MockContactRepo)
		uc := newUsecase(repo, new(MockDispatcher))

		repo.On("Fetch", mock.Anything, domain.Status(""), 20, 0).
			Return([]domain.ContactSubmission{}, int64(0), nil)

		_, pagination, err := uc.List(context.Background(), domain.ListFilter{})

		assert.NoError(t, err)
		assert.Equal(t, 1, pagination.Page)
		assert.Equal(t, 20, pagination.Limit)
		repo.AssertExpectations(t)
	})

	t.Run("Should compute skip and ceil page count", func(t *testing.T) {
		repo := new(MockContactRepo)
		uc := newUsecase(repo, new(MockDispatcher))

		repo.On("Fetch", mock.Anything, domain.StatusNew, 20, 40).
			Return([]domain.ContactSubmission{{}}, int64(45), nil)

		_, pagination, err := uc.List(context.Background(), domain.ListFilter{Status: "new", Page: 3, Limit: 20})

		assert.NoError(t, err)
		assert.Equal(t, int64(45), pagination.Total)
		assert.Equal(t, int64(3), pagination.Pages)
	})

	t.Run("Should return an empty slice, not nil, for an empty page", func(t *testing.T) {
		repo := new(MockContactRepo)
		uc := newUsecase(repo, new(MockDispatcher))

		repo.On("Fetch", mock.Anything, domain.Status(""), 20, 0).
			Return(nil, int64(0), nil)

		subs, _, err := uc.List(context.Background(), domain.ListFilter{})

		assert.NoError(t, err)
		assert.NotNil(t, subs)
		assert.Len(t, subs, 0)
	})
}

func TestGetAndDelete(t *testing.T) {
	t.Run("Get should return 404 for an unknown id", func(t *testing.T) {
		repo := new(MockContactRepo)
		uc := newUsecase(repo, new(MockDispatcher))

		repo.On("GetByID", mock.Anything, "missing").Return(nil, domain.ErrSubmissionNotFound)

		_, err := uc.Get(context.Background(), "missing")

		assert.Equal(t, http.StatusNotFound, appErrCode(t, err))
	})

	t.Run("Delete should return 404 for an unknown id", func(t *testing.T) {
		repo := new(MockContactRepo)
		uc := newUsecase(repo, new(MockDispatcher))

		repo.On("Delete", mock.Anything, "missing").Return(domain.ErrSubmissionNotFound)

		err := uc.Delete(context.Background(), "missing")

		assert.Equal(t, http.StatusNotFound, appErrCode(t, err))
	})
}

func TestStats(t *testing.T) {
	t.Run("Archived is derived from the other counts", func(t *testing.T) {
		repo := new(MockContactRepo)
		uc := newUsecase(repo, new(MockDispatcher))

		repo.On("Count", mock.Anything, domain.Status("")).Return(int64(10), nil)
		repo.On("Count", mock.Anything, domain.StatusNew).Return(int64(4), nil)
		repo.On("Count", mock.Anything, domain.StatusRead).Return(int64(2), nil)
		repo.On("Count", mock.Anything, domain.StatusReplied).Return(int64(1), nil)
		repo.On("CountSince", mock.Anything, mock.AnythingOfType("time.Time")).Return(int64(7), nil)

		stats, err := uc.Stats(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, int64(3), stats.Archived)
		assert.Equal(t, stats.Total, stats.New+stats.Read+stats.Replied+stats.Archived)
		assert.Equal(t, int64(7), stats.Last30Days)
	})
}
