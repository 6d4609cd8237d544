package pgsql

import (
	portsrepo "github.com/ICON-SARL/ngnasoro-sub006/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	auditRepo := newPgxAuditRepository(dbPool)
	notificationRepo := newPgxNotificationRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool, auditRepo, notificationRepo)
	clientRepo := newPgxClientRepository(dbPool, auditRepo)
	sfdRepo := newPgxSFDRepository(dbPool)
	creditRepo := newPgxCreditRepository(dbPool, ledgerRepo, auditRepo, notificationRepo)
	subsidyRepo := newPgxSubsidyRepository(dbPool, sfdRepo, auditRepo, notificationRepo)
	userRepo := newPgxUserRepository(dbPool, auditRepo)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		LedgerRepo:       ledgerRepo,
		ClientRepo:       clientRepo,
		SFDRepo:          sfdRepo,
		CreditRepo:       creditRepo,
		SubsidyRepo:      subsidyRepo,
		UserRepo:         userRepo,
		AuditRepo:        auditRepo,
		NotificationRepo: notificationRepo,
		ReportingRepo:    reportingRepo,
	}
}
