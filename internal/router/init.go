package router

import (
	"github.com/ramah83/ST-System-Bank/internal/application"
	"github.com/ramah83/ST-System-Bank/internal/container"
	pginfra "github.com/ramah83/ST-System-Bank/internal/infrastructure/postgres"
	handlers "github.com/ramah83/ST-System-Bank/internal/interface/http"
	"github.com/ramah83/ST-System-Bank/internal/router/modules"
)

// InitModules builds every feature module from the container singletons and
// registers them with the router registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	userRepo := pginfra.NewUserRepository(pool)
	accountRepo := pginfra.NewAccountRepository(pool)
	transactionRepo := pginfra.NewTransactionRepository(pool)
	testRunRepo := pginfra.NewTestRunRepository(pool)

	policy := application.NewAccessPolicy()

	userSvc := application.NewUserService(
		userRepo,
		container.GetRedis(),
		container.GetES(),
		cfg.ESUsersIndex,
		container.GetJWT(),
		policy,
		logger,
	)
	accountSvc := application.NewAccountService(userRepo, accountRepo, policy, logger, cfg.AccountNumberStart)
	bankingSvc := application.NewBankingService(
		accountRepo,
		transactionRepo,
		policy,
		logger,
		cfg.MinimumDepositAmount,
		cfg.MinimumWithdrawalAmount,
	)
	reportingSvc := application.NewReportingService(transactionRepo, accountRepo, policy, logger)
	dashboardSvc := application.NewDashboardService(testRunRepo, container.GetRabbitPub(), policy, logger)

	userHandler := handlers.NewUserHandler(userSvc, accountSvc, logger, cfg.CookieDomain, cfg.CookieSecure)
	transactionHandler := handlers.NewTransactionHandler(bankingSvc, reportingSvc, logger)
	adminHandler := handlers.NewAdminHandler(userSvc, accountSvc, bankingSvc, reportingSvc, logger)
	dashboardHandler := handlers.NewDashboardHandler(dashboardSvc, logger)

	jwt := container.GetJWT()
	r.Add(modules.NewUserModule(userHandler, jwt))
	r.Add(modules.NewBankingModule(transactionHandler, jwt))
	r.Add(modules.NewAdminModule(adminHandler, jwt))
	r.Add(modules.NewDashboardModule(dashboardHandler, jwt))
}
