package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/praise456/cryptovault-backend/internal/domain"
	"github.com/praise456/cryptovault-backend/internal/logger"
	"github.com/praise456/cryptovault-backend/internal/service/tokens"
	"github.com/praise456/cryptovault-backend/internal/transport/api/mocks"
	"github.com/praise456/cryptovault-backend/internal/transport/api/testutils"
)

type WalletHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockWalletService *mocks.MockWalletServicer
	jwtSecret         []byte
	accountID         int64
	authToken         string
}

func TestWalletHandlerSuite(t *testing.T) {
	suite.Run(t, new(WalletHandlerTestSuite))
}

func (s *WalletHandlerTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())

	s.mockWalletService = mocks.NewMockWalletServicer(mockCtrl)
	s.jwtSecret = []byte("super secret key")
	s.accountID = 1

	s.router = New(RouterArgs{
		Logger:        logger.New(os.Stdout),
		WalletService: s.mockWalletService,
		JWTSecretKey:  s.jwtSecret,
	})

	authToken, tokenErr := tokens.GenerateAccountJWT(s.accountID, tokens.PurposeAuth, time.Hour, s.jwtSecret)
	s.Require().NoError(tokenErr)
	s.authToken = authToken
}

func (s *WalletHandlerTestSuite) makeJSONRequest(method, url string, body []byte, jwtToken string) *http.Response {
	s.T().Helper()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	reqOpts := []func(*testutils.RequestOptions){
		testutils.WithHeader("Content-Type", "application/json; charset=utf-8"),
	}
	if jwtToken != "" {
		reqOpts = append(reqOpts, testutils.WithHeader("Authorization", fmt.Sprintf("Bearer %s", jwtToken)))
	}

	res, err := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: method,
		URL:    url,
		Body:   reader,
	}, reqOpts...)
	s.Require().NoError(err)
	return res
}

func (s *WalletHandlerTestSuite) TestDeposit() {
	amount := decimal.NewFromInt(100)

	s.mockWalletService.EXPECT().
		Deposit(gomock.Any(), s.accountID, "BTC", gomock.Any()).
		DoAndReturn(func(_ any, accountID int64, coin string, got decimal.Decimal) (*domain.Account, *domain.WalletEntry, error) {
			s.True(got.Equal(amount))
			return &domain.Account{ID: accountID, Balance: amount},
				&domain.WalletEntry{ID: 1, AccountID: accountID, Coin: coin, Amount: amount, CreatedAt: time.Now()},
				nil
		})

	s.mockWalletService.EXPECT().
		Deposit(gomock.Any(), s.accountID, "ETH", gomock.Any()).
		Return(nil, nil, domain.ErrInvalidAmount)

	cases := []struct {
		name       string
		body       []byte
		jwtToken   string
		wantStatus int
	}{
		{
			name:       "all ok",
			body:       []byte(`{"coin":"BTC","amount":100}`),
			jwtToken:   s.authToken,
			wantStatus: http.StatusOK,
		}, {
			name:       "non-positive amount",
			body:       []byte(`{"coin":"ETH","amount":-5}`),
			jwtToken:   s.authToken,
			wantStatus: http.StatusUnprocessableEntity,
		}, {
			name:       "missing coin",
			body:       []byte(`{"amount":100}`),
			jwtToken:   s.authToken,
			wantStatus: http.StatusUnprocessableEntity,
		}, {
			name:       "not authorized",
			body:       []byte(`{"coin":"BTC","amount":100}`),
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			res := s.makeJSONRequest(http.MethodPost, RouteGroup+WalletDepositRoute, t.body, t.jwtToken)
			defer func() {
				closeErr := res.Body.Close()
				s.Require().NoError(closeErr)
			}()

			s.Equal(t.wantStatus, res.StatusCode)

			if t.wantStatus == http.StatusOK {
				var payload struct {
					Balance float64 `json:"balance"`
				}
				s.Require().NoError(json.NewDecoder(res.Body).Decode(&payload))
				s.InDelta(100, payload.Balance, 0.0001)
			}
		})
	}
}

func (s *WalletHandlerTestSuite) TestHistory() {
	entries := []domain.WalletEntry{
		{ID: 1, AccountID: s.accountID, Coin: "BTC", Amount: decimal.NewFromInt(100), CreatedAt: time.Now()},
		{ID: 2, AccountID: s.accountID, Coin: "ETH", Amount: decimal.NewFromInt(50), CreatedAt: time.Now()},
	}

	s.mockWalletService.EXPECT().
		History(gomock.Any(), s.accountID).
		Return(entries, decimal.NewFromInt(150), nil)

	res := s.makeJSONRequest(http.MethodGet, RouteGroup+WalletHistoryRoute, nil, s.authToken)
	defer func() {
		closeErr := res.Body.Close()
		s.Require().NoError(closeErr)
	}()

	s.Equal(http.StatusOK, res.StatusCode)

	var payload struct {
		Wallet  []WalletEntryResponse `json:"wallet"`
		Balance float64               `json:"balance"`
	}
	s.Require().NoError(json.NewDecoder(res.Body).Decode(&payload))
	s.Len(payload.Wallet, 2)
	s.InDelta(150, payload.Balance, 0.0001)
}

func (s *WalletHandlerTestSuite) TestWithdrawRequest() {
	okAmount := decimal.NewFromInt(30)

	s.mockWalletService.EXPECT().
		RequestWithdrawal(gomock.Any(), s.accountID, "BTC", gomock.Any()).
		DoAndReturn(func(_ any, accountID int64, coin string, got decimal.Decimal) (*domain.Withdrawal, error) {
			if got.Equal(okAmount) {
				return &domain.Withdrawal{
					ID:        1,
					AccountID: accountID,
					Coin:      coin,
					Amount:    got,
					Status:    domain.WithdrawalStatusPending,
					CreatedAt: time.Now(),
				}, nil
			}
			return nil, domain.ErrNotEnoughBalance
		}).Times(2)

	cases := []struct {
		name       string
		body       []byte
		wantStatus int
	}{
		{
			name:       "all ok",
			body:       []byte(`{"coin":"BTC","amount":30}`),
			wantStatus: http.StatusOK,
		}, {
			name:       "insufficient balance",
			body:       []byte(`{"coin":"BTC","amount":100000}`),
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			res := s.makeJSONRequest(http.MethodPost, RouteGroup+WalletWithdrawRoute, t.body, s.authToken)
			defer func() {
				closeErr := res.Body.Close()
				s.Require().NoError(closeErr)
			}()

			s.Equal(t.wantStatus, res.StatusCode)

			if t.wantStatus == http.StatusOK {
				var payload struct {
					Withdrawal WithdrawalResponse `json:"withdrawal"`
				}
				s.Require().NoError(json.NewDecoder(res.Body).Decode(&payload))
				s.Equal(string(domain.WithdrawalStatusPending), payload.Withdrawal.Status)
			}
		})
	}
}

func (s *WalletHandlerTestSuite) TestWithdrawals() {
	withdrawals := []domain.Withdrawal{
		{ID: 1, AccountID: s.accountID, Coin: "BTC", Amount: decimal.NewFromInt(30), Status: domain.WithdrawalStatusPending},
	}

	s.mockWalletService.EXPECT().
		Withdrawals(gomock.Any(), s.accountID).
		Return(withdrawals, nil)

	res := s.makeJSONRequest(http.MethodGet, RouteGroup+WalletWithdrawalsRoute, nil, s.authToken)
	defer func() {
		closeErr := res.Body.Close()
		s.Require().NoError(closeErr)
	}()

	s.Equal(http.StatusOK, res.StatusCode)
}
