package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Ledger       LedgerSvcFacade
	Client       ClientSvcFacade
	SFD          SFDSvcFacade
	Credit       CreditSvcFacade
	Subsidy      SubsidySvcFacade
	User         UserSvcFacade
	Audit        AuditSvcFacade
	Notification NotificationSvcFacade
	Reporting    ReportingService
	Token        TokenSvcFacade
}
