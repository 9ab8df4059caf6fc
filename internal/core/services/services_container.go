package services

import (
	portsevt "github.com/SscSPs/fintrack_app/internal/core/ports/events"
	portsrepo "github.com/SscSPs/fintrack_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fintrack_app/internal/core/ports/services"
	"github.com/SscSPs/fintrack_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// publisher may be nil, in which case no ledger events are emitted.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, publisher portsevt.EventPublisher) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.TwoFactor = NewTwoFactorService(repos.UserRepo, cfg.TOTPIssuer)
	container.TokenService = NewTokenService(cfg, container.User)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	container.Profile = NewProfileService(repos.ProfileRepo)
	container.Account = NewAccountService(
		repos.AccountRepo,
		WithOpeningBalanceWriter(repos.TransactionRepo),
		WithAccountEvents(publisher),
	)
	container.Ledger = NewLedgerService(
		repos.TransactionRepo,
		repos.ProfileRepo,
		WithLedgerEvents(publisher),
	)
	container.Budget = NewBudgetService(repos.BudgetRepo, WithBudgetEvents(publisher))
	container.Reporting = NewReportingService(repos.ReportingRepo)
	container.Export = NewExportService(container.Ledger)

	return container
}
