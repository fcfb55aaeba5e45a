package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/praise456/cryptovault-backend/internal/transport/api/middlewares"
)

const (
	DefaultServiceTimeout = 3 * time.Second
	// mail flows wait on an SMTP round trip
	DefaultMailTimeout = 10 * time.Second
)

const (
	RouteGroup                  = "/api"
	RegisterRoute               = "/register"
	LoginRoute                  = "/login"
	UserRoute                   = "/user"
	WalletDepositRoute          = "/wallet/deposit"
	WalletHistoryRoute          = "/wallet/history"
	WalletWithdrawRoute         = "/wallet/withdraw-request"
	WalletWithdrawalsRoute      = "/wallet/withdrawals"
	InvestmentsCreateRoute      = "/investments/create"
	InvestmentsRoute            = "/investments"
	AdminUsersRoute             = "/admin/users"
	AdminCreditRoute            = "/admin/credit"
	AdminStatusRoute            = "/admin/status"
	AdminWithdrawalsRoute       = "/admin/withdrawals"
	AdminWithdrawalsUpdateRoute = "/admin/withdrawals/update"
	SendVerificationRoute       = "/auth/send-verification"
	VerifyEmailRoute            = "/auth/verify-email"
	ForgotPasswordRoute         = "/auth/forgot-password"
	ResetPasswordRoute          = "/auth/reset-password"
)

type RouterArgs struct {
	Logger            *logrus.Logger
	AccountService    AccountServicer
	WalletService     WalletServicer
	InvestmentService InvestmentServicer
	JWTSecretKey      []byte
}

func New(args RouterArgs) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if args.Logger != nil {
		r.Use(middlewares.Logger(args.Logger))
	}
	r.Use(cors.Default())
	r.Use(middlewares.Errors())

	authHandler := NewAuthHandler(args.AccountService)
	userHandler := NewUserHandler(args.AccountService)
	walletHandler := NewWalletHandler(args.WalletService)
	investmentsHandler := NewInvestmentsHandler(args.InvestmentService)
	adminHandler := NewAdminHandler(args.AccountService, args.WalletService, args.InvestmentService)
	emailHandler := NewEmailHandler(args.AccountService)

	api := r.Group(RouteGroup)

	api.POST(RegisterRoute, middlewares.NonAuthRequired(args.JWTSecretKey), authHandler.Register)
	api.POST(LoginRoute, middlewares.NonAuthRequired(args.JWTSecretKey), authHandler.Login)

	// token-in-link flows, no session required
	api.POST(SendVerificationRoute, emailHandler.SendVerification)
	api.GET(VerifyEmailRoute, emailHandler.VerifyEmail)
	api.POST(ForgotPasswordRoute, emailHandler.ForgotPassword)
	api.POST(ResetPasswordRoute, emailHandler.ResetPassword)

	authed := api.Group("", middlewares.AuthRequired(args.JWTSecretKey))
	authed.GET(UserRoute, userHandler.Dashboard)

	authed.POST(WalletDepositRoute, walletHandler.Deposit)
	authed.GET(WalletHistoryRoute, walletHandler.History)
	authed.POST(WalletWithdrawRoute, walletHandler.WithdrawRequest)
	authed.GET(WalletWithdrawalsRoute, walletHandler.Withdrawals)

	authed.POST(InvestmentsCreateRoute, investmentsHandler.Create)
	authed.GET(InvestmentsRoute, investmentsHandler.Index)

	admin := authed.Group("", middlewares.AdminRequired(args.AccountService))
	admin.GET(AdminUsersRoute, adminHandler.Users)
	admin.POST(AdminCreditRoute, adminHandler.Credit)
	admin.POST(AdminStatusRoute, adminHandler.SetInvestmentStatus)
	admin.GET(AdminWithdrawalsRoute, adminHandler.Withdrawals)
	admin.POST(AdminWithdrawalsUpdateRoute, adminHandler.ReviewWithdrawal)

	return r
}
