package robokassaresult

import (
	"context"
	"crypto/md5"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/paid-channel-bot/internal/paymentprovider/robokassa"
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

// resultSignature считает подпись так же, как её считает сама Робокасса:
// OutSum:InvId:Пароль2:Shp_user_id=N.
func resultSignature(outSum, invID, password2, shpUserID string) string {
	s := outSum + ":" + invID + ":" + password2 + ":Shp_user_id=" + shpUserID
	return strings.ToUpper(fmt.Sprintf("%x", md5.Sum([]byte(s))))
}

func TestResultHandler_ServeHTTP(t *testing.T) {
	verifier := robokassa.NewClient("demo", "password1", "password2", false)

	tests := []struct {
		name           string
		outSum         string
		invID          string
		shpUserID      string
		signature      string
		setupMocks     func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:      "valid signature grants access",
			outSum:    "1000.00",
			invID:     "100500",
			shpUserID: "42",
			signature: resultSignature("1000.00", "100500", "password2", "42"),
			setupMocks: func(s *MockService) {
				s.On("GrantAccess", mock.Anything, int64(42), "100500", int64(100000), "").Return(nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "OK100500",
		},
		{
			name:           "invalid signature is rejected",
			outSum:         "1000.00",
			invID:          "100500",
			shpUserID:      "42",
			signature:      "DEADBEEF",
			setupMocks:     func(*MockService) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "tampered amount is rejected",
			outSum:         "1.00",
			invID:          "100500",
			shpUserID:      "42",
			signature:      resultSignature("1000.00", "100500", "password2", "42"),
			setupMocks:     func(*MockService) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing user id is rejected",
			outSum:         "1000.00",
			invID:          "100500",
			shpUserID:      "",
			signature:      resultSignature("1000.00", "100500", "password2", ""),
			setupMocks:     func(*MockService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockService)
			handler := New(newNoopLogger(), service, verifier)

			tt.setupMocks(service)

			form := url.Values{}
			form.Set("OutSum", tt.outSum)
			form.Set("InvId", tt.invID)
			form.Set("Shp_user_id", tt.shpUserID)
			form.Set("SignatureValue", tt.signature)

			req := httptest.NewRequest(http.MethodPost, "/webhook/robokassa",
				strings.NewReader(form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedBody != "" {
				assert.Equal(t, tt.expectedBody, rec.Body.String())
			}
			service.AssertExpectations(t)
		})
	}
}
