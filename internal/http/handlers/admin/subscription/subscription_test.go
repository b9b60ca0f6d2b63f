package subscription

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/paid-channel-bot/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) CurrentSubscription(ctx context.Context, userID int64) (*models.Subscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestSubscriptionHandler_ServeHTTP(t *testing.T) {
	active := &models.Subscription{
		ID:       1,
		UserID:   42,
		IsActive: true,
		EndDate:  time.Now().Add(24 * time.Hour),
		Amount:   100000,
	}

	tests := []struct {
		name           string
		userID         string
		setupMocks     func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "success - active subscription returned",
			userID: "42",
			setupMocks: func(s *MockService) {
				s.On("CurrentSubscription", mock.Anything, int64(42)).Return(active, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"UserID":42`,
		},
		{
			name:   "success - no active subscription",
			userID: "42",
			setupMocks: func(s *MockService) {
				s.On("CurrentSubscription", mock.Anything, int64(42)).Return(nil, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"subscription":null`,
		},
		{
			name:           "invalid user id",
			userID:         "abc",
			setupMocks:     func(*MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid user id"`,
		},
		{
			name:           "negative user id",
			userID:         "-1",
			setupMocks:     func(*MockService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "storage error",
			userID: "42",
			setupMocks: func(s *MockService) {
				s.On("CurrentSubscription", mock.Anything, int64(42)).
					Return(nil, errors.New("db error")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not read subscription"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockService)
			handler := New(newNoopLogger(), service)

			tt.setupMocks(service)

			router := chi.NewRouter()
			router.Get("/admin/subscriptions/{userID}", handler.ServeHTTP)

			req := httptest.NewRequest(http.MethodGet, "/admin/subscriptions/"+tt.userID, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedBody != "" {
				assert.Contains(t, rec.Body.String(), tt.expectedBody)
			}
			service.AssertExpectations(t)
		})
	}
}
