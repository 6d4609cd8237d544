package services

import (
	portsrepo "github.com/ICON-SARL/ngnasoro-sub006/internal/core/ports/repositories"
	portssvc "github.com/ICON-SARL/ngnasoro-sub006/internal/core/ports/services"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Ledger = NewLedgerService(repos.LedgerRepo, repos.ClientRepo, repos.AuditRepo)
	container.Client = NewClientService(repos.ClientRepo, repos.SFDRepo)
	container.SFD = NewSFDService(repos.SFDRepo, repos.AuditRepo)
	container.Credit = NewCreditService(repos.CreditRepo, repos.ClientRepo)
	container.Subsidy = NewSubsidyService(repos.SubsidyRepo, repos.NotificationRepo)
	container.User = NewUserService(repos.UserRepo, repos.SFDRepo, repos.ClientRepo)
	container.Audit = NewAuditService(repos.AuditRepo)
	container.Notification = NewNotificationService(repos.NotificationRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo)
	container.Token = NewTokenService(cfg)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.LedgerSvcFacade       = (*ledgerService)(nil)
	_ portssvc.ClientSvcFacade       = (*clientService)(nil)
	_ portssvc.SFDSvcFacade          = (*sfdService)(nil)
	_ portssvc.CreditSvcFacade       = (*creditService)(nil)
	_ portssvc.SubsidySvcFacade      = (*subsidyService)(nil)
	_ portssvc.UserSvcFacade         = (*userService)(nil)
	_ portssvc.AuditSvcFacade        = (*auditService)(nil)
	_ portssvc.NotificationSvcFacade = (*notificationService)(nil)
	_ portssvc.ReportingService      = (*reportingService)(nil)
	_ portssvc.TokenSvcFacade        = (*tokenService)(nil)
)
