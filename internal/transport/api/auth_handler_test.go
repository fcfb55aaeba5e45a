package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/praise456/cryptovault-backend/internal/domain"
	"github.com/praise456/cryptovault-backend/internal/logger"
	"github.com/praise456/cryptovault-backend/internal/service"
	"github.com/praise456/cryptovault-backend/internal/service/tokens"
	"github.com/praise456/cryptovault-backend/internal/transport/api/mocks"
	"github.com/praise456/cryptovault-backend/internal/transport/api/testutils"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockAccountService *mocks.MockAccountServicer
	jwtSecret          []byte
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (s *AuthHandlerTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())

	s.mockAccountService = mocks.NewMockAccountServicer(mockCtrl)
	s.jwtSecret = []byte("super secret key")

	s.router = New(RouterArgs{
		Logger:         logger.New(os.Stdout),
		AccountService: s.mockAccountService,
		JWTSecretKey:   s.jwtSecret,
	})
}

func (s *AuthHandlerTestSuite) TestRegister() {
	email := gofakeit.Email()
	name := gofakeit.Name()

	account := domain.Account{
		ID:        1,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		Name:      name,
		Email:     email,
		Role:      domain.RoleUser,
		Balance:   decimal.Zero,
	}

	authToken, tokenErr := tokens.GenerateAccountJWT(account.ID, tokens.PurposeAuth, time.Hour, s.jwtSecret)
	s.Require().NoError(tokenErr)

	s.mockAccountService.EXPECT().
		Register(gomock.Any(), service.RegisterAccountArgs{
			Name:     name,
			Email:    email,
			Password: "password123",
		}).
		Return(&account, authToken, nil)

	s.mockAccountService.EXPECT().
		Register(gomock.Any(), service.RegisterAccountArgs{
			Email:    "taken@example.com",
			Password: "password123",
		}).
		Return(nil, "", domain.ErrDuplicateKey)

	validBody, marshalErr := json.Marshal(gin.H{"name": name, "email": email, "password": "password123"})
	s.Require().NoError(marshalErr)

	cases := []struct {
		name       string
		body       []byte
		jwtToken   string
		wantStatus int
		wantAuth   bool
	}{
		{
			name:       "all ok",
			body:       validBody,
			wantStatus: http.StatusCreated,
			wantAuth:   true,
		}, {
			name:       "duplicate email",
			body:       []byte(`{"email":"taken@example.com","password":"password123"}`),
			wantStatus: http.StatusConflict,
		}, {
			name:       "invalid email",
			body:       []byte(`{"email":"not-an-email","password":"password123"}`),
			wantStatus: http.StatusUnprocessableEntity,
		}, {
			name:       "short password",
			body:       []byte(`{"email":"ok@example.com","password":"123"}`),
			wantStatus: http.StatusUnprocessableEntity,
		}, {
			name:       "already authenticated",
			body:       validBody,
			jwtToken:   authToken,
			wantStatus: http.StatusForbidden,
		}, {
			name:       "malformed json",
			body:       []byte(`{`),
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			reqOpts := []func(*testutils.RequestOptions){
				testutils.WithHeader("Content-Type", "application/json; charset=utf-8"),
			}
			if t.jwtToken != "" {
				reqOpts = append(reqOpts, testutils.WithHeader("Authorization", fmt.Sprintf("Bearer %s", t.jwtToken)))
			}

			res, err := testutils.MakeRequest(testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodPost,
				URL:    RouteGroup + RegisterRoute,
				Body:   bytes.NewReader(t.body),
			}, reqOpts...)
			s.Require().NoError(err)
			defer func() {
				closeErr := res.Body.Close()
				s.Require().NoError(closeErr)
			}()

			s.Equal(t.wantStatus, res.StatusCode)
			if t.wantAuth {
				s.Equal("Bearer "+authToken, res.Header.Get("Authorization"))
			}
		})
	}
}

func (s *AuthHandlerTestSuite) TestLogin() {
	email := gofakeit.Email()

	account := domain.Account{
		ID:    2,
		Email: email,
		Role:  domain.RoleUser,
	}

	authToken, tokenErr := tokens.GenerateAccountJWT(account.ID, tokens.PurposeAuth, time.Hour, s.jwtSecret)
	s.Require().NoError(tokenErr)

	s.mockAccountService.EXPECT().
		Login(gomock.Any(), service.LoginAccountArgs{Email: email, Password: "password123"}).
		Return(&account, authToken, nil)
	s.mockAccountService.EXPECT().
		Login(gomock.Any(), service.LoginAccountArgs{Email: "nobody@example.com", Password: "password123"}).
		Return(nil, "", domain.ErrRecordNotFound)
	s.mockAccountService.EXPECT().
		Login(gomock.Any(), service.LoginAccountArgs{Email: email, Password: "wrongpassword"}).
		Return(nil, "", domain.ErrPasswordMissMatch)

	validBody, marshalErr := json.Marshal(gin.H{"email": email, "password": "password123"})
	s.Require().NoError(marshalErr)

	cases := []struct {
		name       string
		body       []byte
		wantStatus int
	}{
		{
			name:       "all ok",
			body:       validBody,
			wantStatus: http.StatusOK,
		}, {
			// unknown email and wrong password must be indistinguishable
			name:       "unknown email",
			body:       []byte(`{"email":"nobody@example.com","password":"password123"}`),
			wantStatus: http.StatusUnauthorized,
		}, {
			name:       "wrong password",
			body:       []byte(fmt.Sprintf(`{"email":%q,"password":"wrongpassword"}`, email)),
			wantStatus: http.StatusUnauthorized,
		}, {
			name:       "missing password",
			body:       []byte(fmt.Sprintf(`{"email":%q}`, email)),
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			res, err := testutils.MakeRequest(testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodPost,
				URL:    RouteGroup + LoginRoute,
				Body:   bytes.NewReader(t.body),
			}, testutils.WithHeader("Content-Type", "application/json; charset=utf-8"))
			s.Require().NoError(err)
			defer func() {
				closeErr := res.Body.Close()
				s.Require().NoError(closeErr)
			}()

			s.Equal(t.wantStatus, res.StatusCode)
		})
	}
}
