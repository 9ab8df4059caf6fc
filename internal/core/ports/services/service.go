package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Account            AccountSvcFacade
	Profile            ProfileSvcFacade
	Ledger             LedgerSvcFacade
	Budget             BudgetSvcFacade
	Reporting          ReportingService
	Export             ExportSvc
	User               UserSvcFacade
	TwoFactor          TwoFactorSvc
	TokenService       TokenSvcFacade
	GoogleOAuthHandler GoogleOAuthHandlerSvcFacade
}
