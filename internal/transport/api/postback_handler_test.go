package api

import (
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/fsdevblog/castile-money/internal/domain"
	"github.com/fsdevblog/castile-money/internal/logger"
	"github.com/fsdevblog/castile-money/internal/transport/api/mocks"
	"github.com/fsdevblog/castile-money/internal/transport/api/testutils"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
)

const testPostbackSecret = "postback secret"

type PostbackHandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	mockAdService *mocks.MockAdEarningRecorder
}

func TestPostbackHandlerSuite(t *testing.T) {
	suite.Run(t, new(PostbackHandlerTestSuite))
}

func (s *PostbackHandlerTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())

	s.mockAdService = mocks.NewMockAdEarningRecorder(mockCtrl)

	router, err := New(RouterArgs{
		Logger:         logger.New(io.Discard),
		AdService:      s.mockAdService,
		PostbackSecret: testPostbackSecret,
		JWTSecretKey:   []byte("super secret key"),
	})
	s.Require().NoError(err)
	s.router = router
}

func postbackURL(userID, amount, eventID, secret string) string {
	return fmt.Sprintf("%s%s?user_id=%s&amount=%s&event_id=%s&secret=%s",
		RouteGroup, AdPostbackRoute, userID, amount, eventID, secret)
}

func (s *PostbackHandlerTestSuite) TestAdView() {
	// Успешное начисление.
	s.mockAdService.EXPECT().
		RecordAdEarning(gomock.Any(), int64(42), int64(250), "ad:evt-1").
		Return(&domain.Transaction{ID: 5, UserID: 42, Amount: 250}, nil).Times(1)
	// Повтор события.
	s.mockAdService.EXPECT().
		RecordAdEarning(gomock.Any(), int64(42), int64(250), "ad:evt-dup").
		Return(nil, fmt.Errorf("ad earning: %w", domain.ErrAlreadyProcessed)).Times(1)
	s.mockAdService.EXPECT().
		RecordAdEarning(gomock.Any(), int64(404), int64(250), "ad:evt-2").
		Return(nil, fmt.Errorf("ad earning: %w", domain.ErrUserNotFound)).Times(1)
	s.mockAdService.EXPECT().
		RecordAdEarning(gomock.Any(), int64(42), int64(0), "ad:evt-3").
		Return(nil, fmt.Errorf("%w: 0", domain.ErrInvalidAmount)).Times(1)
	s.mockAdService.EXPECT().
		RecordAdEarning(gomock.Any(), int64(42), int64(250), "ad:evt-4").
		Return(nil, domain.ErrStorage).Times(1)

	cases := []struct {
		name       string
		url        string
		wantStatus int
		wantBody   map[string]any
	}{
		{
			name:       "all ok",
			url:        postbackURL("42", "250", "evt-1", "postback%20secret"),
			wantStatus: http.StatusOK,
			wantBody:   map[string]any{"status": "ok", "transaction_id": float64(5)},
		}, {
			name:       "duplicate event",
			url:        postbackURL("42", "250", "evt-dup", "postback%20secret"),
			wantStatus: http.StatusOK,
			wantBody:   map[string]any{"status": "duplicate"},
		}, {
			name:       "unknown user",
			url:        postbackURL("404", "250", "evt-2", "postback%20secret"),
			wantStatus: http.StatusNotFound,
		}, {
			name:       "invalid amount",
			url:        postbackURL("42", "0", "evt-3", "postback%20secret"),
			wantStatus: http.StatusUnprocessableEntity,
		}, {
			name:       "storage failure",
			url:        postbackURL("42", "250", "evt-4", "postback%20secret"),
			wantStatus: http.StatusInternalServerError,
		}, {
			name:       "bad secret",
			url:        postbackURL("42", "250", "evt-5", "guess"),
			wantStatus: http.StatusForbidden,
		}, {
			name:       "missing event id",
			url:        postbackURL("42", "250", "", "postback%20secret"),
			wantStatus: http.StatusUnprocessableEntity,
		}, {
			name:       "malformed amount",
			url:        postbackURL("42", "ten", "evt-6", "postback%20secret"),
			wantStatus: http.StatusBadRequest,
		},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			res, err := testutils.MakeRequest(testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodGet,
				URL:    t.url,
			})
			s.Require().NoError(err)
			defer func() {
				closeErr := res.Body.Close()
				s.Require().NoError(closeErr)
			}()

			s.Equal(t.wantStatus, res.StatusCode)
			if t.wantBody != nil {
				body, decodeErr := testutils.DecodeJSON[map[string]any](res)
				s.Require().NoError(decodeErr)
				s.Equal(t.wantBody, body)
			}
		})
	}
}

func (s *PostbackHandlerTestSuite) TestDisabledWithoutSecret() {
	router, err := New(RouterArgs{
		Logger:    logger.New(io.Discard),
		AdService: s.mockAdService,
	})
	s.Require().NoError(err)

	res, err := testutils.MakeRequest(testutils.RequestArgs{
		Router: router,
		Method: http.MethodGet,
		URL:    postbackURL("42", "250", "evt-1", ""),
	})
	s.Require().NoError(err)
	defer res.Body.Close()

	s.Equal(http.StatusForbidden, res.StatusCode)
}

func (s *PostbackHandlerTestSuite) TestHealth() {
	res, err := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodGet,
		URL:    HealthRoute,
	})
	s.Require().NoError(err)
	defer res.Body.Close()

	s.Equal(http.StatusOK, res.StatusCode)
}
