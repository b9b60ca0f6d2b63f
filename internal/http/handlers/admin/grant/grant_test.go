package grant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/paid-channel-bot/internal/storage/repository"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) GrantAccess(ctx context.Context, userID int64, paymentID string, amount int64, methodToken string) error {
	args := m.Called(ctx, userID, paymentID, amount, methodToken)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestGrantHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		setupMocks     func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "success - access granted",
			requestBody: Request{UserID: 42, PaymentID: "pay-1", Amount: 100000},
			setupMocks: func(s *MockService) {
				s.On("GrantAccess", mock.Anything, int64(42), "pay-1", int64(100000), "").
					Return(nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"user_id":42`,
		},
		{
			name:           "invalid JSON",
			requestBody:    "not a json",
			setupMocks:     func(*MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name:           "missing payment id",
			requestBody:    Request{UserID: 42, Amount: 100000},
			setupMocks:     func(*MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:        "unknown payment",
			requestBody: Request{UserID: 42, PaymentID: "no-such-payment", Amount: 100000},
			setupMocks: func(s *MockService) {
				s.On("GrantAccess", mock.Anything, int64(42), "no-such-payment", int64(100000), "").
					Return(fmt.Errorf("lifecycle.GrantAccess: %w", repository.ErrPaymentNotFound)).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"payment not found"`,
		},
		{
			name:        "service error",
			requestBody: Request{UserID: 42, PaymentID: "pay-1", Amount: 100000},
			setupMocks: func(s *MockService) {
				s.On("GrantAccess", mock.Anything, int64(42), "pay-1", int64(100000), "").
					Return(errors.New("db error")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not grant access"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockService)
			handler := New(newNoopLogger(), service)

			tt.setupMocks(service)

			var body bytes.Buffer
			if s, ok := tt.requestBody.(string); ok {
				body.WriteString(s)
			} else {
				assert.NoError(t, json.NewEncoder(&body).Encode(tt.requestBody))
			}

			req := httptest.NewRequest(http.MethodPost, "/admin/grant", &body)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedBody != "" {
				assert.Contains(t, rec.Body.String(), tt.expectedBody)
			}
			service.AssertExpectations(t)
		})
	}
}
