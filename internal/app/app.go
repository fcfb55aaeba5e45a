package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/praise456/cryptovault-backend/internal/config"
	"github.com/praise456/cryptovault-backend/internal/repository/pgrepo"
	"github.com/praise456/cryptovault-backend/internal/repository/repoargs"
	"github.com/praise456/cryptovault-backend/internal/service"
	"github.com/praise456/cryptovault-backend/internal/service/mailer"
	"github.com/praise456/cryptovault-backend/internal/service/psswd"
	"github.com/praise456/cryptovault-backend/internal/transport/api"
	"github.com/praise456/cryptovault-backend/pkg/uow"

	// driver for migration applying postgres.
	_ "github.com/golang-migrate/migrate/v4/database/postgres" //nolint:revive
	// driver to get migrations from files (*.sql in our case).
	_ "github.com/golang-migrate/migrate/v4/source/file" //nolint:revive
)

type App struct {
	Config *config.Config
	Logger *logrus.Logger
}

func New(conf *config.Config, l *logrus.Logger) *App {
	return &App{
		Config: conf,
		Logger: l,
	}
}

func (a *App) Run() error {
	notifyCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.Logger.Infof("Starting app on %s", a.Config.RunAddress)
	conn, connErr := pgrepo.Connect(notifyCtx, a.Config.MigrationsDir, a.Config.DatabaseDSN, a.Logger)
	if connErr != nil {
		return fmt.Errorf("app run: %s", connErr.Error())
	}
	defer conn.Close()

	unitOfWork, uowErr := initUOW(conn)
	if uowErr != nil {
		return fmt.Errorf("app run: %s", uowErr.Error())
	}

	appMailer, mailerErr := a.initMailer()
	if mailerErr != nil {
		return fmt.Errorf("app run: %s", mailerErr.Error())
	}

	services, sErr := service.Factory(service.FactoryArgs{
		UOW:       unitOfWork,
		JWTSecret: []byte(a.Config.JWTSecret),
		Hasher:    psswd.PasswordHash(""),
		Mailer:    appMailer,
		BaseURL:   a.Config.BaseURL,
	})
	if sErr != nil {
		return fmt.Errorf("app run: %s", sErr.Error())
	}

	router := api.New(api.RouterArgs{
		Logger:            a.Logger,
		AccountService:    services.AccountService,
		WalletService:     services.WalletService,
		InvestmentService: services.InvestmentService,
		JWTSecretKey:      []byte(a.Config.JWTSecret),
	})

	errChan := make(chan error, 1)

	go func() {
		if runErr := router.Run(a.Config.RunAddress); runErr != nil {
			errChan <- runErr
		}
	}()

	select {
	case <-notifyCtx.Done():
		return notifyCtx.Err() //nolint:wrapcheck
	case err := <-errChan:
		return err
	}
}

// initMailer picks SMTP delivery when credentials are configured, otherwise
// outgoing mail lands in the log.
func (a *App) initMailer() (service.Mailer, error) {
	if a.Config.SMTPHost == "" {
		a.Logger.Warn("SMTP is not configured, outgoing mail will be logged")
		return mailer.NewLog(a.Logger), nil
	}
	smtp, err := mailer.NewSMTP(mailer.SMTPConfig{
		Host:     a.Config.SMTPHost,
		Port:     a.Config.SMTPPort,
		Username: a.Config.SMTPUsername,
		Password: a.Config.SMTPPassword,
		From:     a.Config.MailFrom,
	})
	if err != nil {
		return nil, fmt.Errorf("init mailer: %s", err.Error())
	}
	return smtp, nil
}

func initUOW(conn *pgxpool.Pool) (*uow.UnitOfWork, error) {
	unitOfWork := uow.NewUnitOfWork(conn)

	// account repo
	accountRepoFactoryFn := func(dbtx uow.DBTX) uow.Repository {
		return pgrepo.NewAccountRepository(dbtx)
	}
	if regErr := unitOfWork.Register(uow.RepositoryName(repoargs.AccountRepoName), accountRepoFactoryFn); regErr != nil {
		return nil, fmt.Errorf("init UOW: %s", regErr.Error())
	}

	// wallet repo
	walletRepoFactoryFn := func(dbtx uow.DBTX) uow.Repository {
		return pgrepo.NewWalletRepository(dbtx)
	}
	if regErr := unitOfWork.Register(uow.RepositoryName(repoargs.WalletRepoName), walletRepoFactoryFn); regErr != nil {
		return nil, fmt.Errorf("init UOW: %s", regErr.Error())
	}

	// withdrawal repo
	withdrawalRepoFactoryFn := func(dbtx uow.DBTX) uow.Repository {
		return pgrepo.NewWithdrawalRepository(dbtx)
	}
	if regErr := unitOfWork.Register(
		uow.RepositoryName(repoargs.WithdrawalRepoName),
		withdrawalRepoFactoryFn,
	); regErr != nil {
		return nil, fmt.Errorf("init UOW: %s", regErr.Error())
	}

	// investment repo
	investmentRepoFactoryFn := func(dbtx uow.DBTX) uow.Repository {
		return pgrepo.NewInvestmentRepository(dbtx)
	}
	if regErr := unitOfWork.Register(
		uow.RepositoryName(repoargs.InvestmentRepoName),
		investmentRepoFactoryFn,
	); regErr != nil {
		return nil, fmt.Errorf("init UOW: %s", regErr.Error())
	}

	return unitOfWork, nil
}
