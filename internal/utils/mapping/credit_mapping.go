package mapping

import (
	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/models"
)

// ToModelCreditApplication converts a domain CreditApplication to its model
func ToModelCreditApplication(d domain.CreditApplication) models.CreditApplication {
	return models.CreditApplication{
		ApplicationID:  d.ApplicationID,
		ClientID:       d.ClientID,
		SFDID:          d.SFDID,
		Amount:         d.Amount,
		DurationMonths: d.DurationMonths,
		Purpose:        d.Purpose,
		Status:         string(d.Status),
		ReviewedBy:     d.ReviewedBy,
		ReviewComment:  d.ReviewComment,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCreditApplication converts a model CreditApplication to its domain form
func ToDomainCreditApplication(m models.CreditApplication) domain.CreditApplication {
	return domain.CreditApplication{
		ApplicationID:  m.ApplicationID,
		ClientID:       m.ClientID,
		SFDID:          m.SFDID,
		Amount:         m.Amount,
		DurationMonths: m.DurationMonths,
		Purpose:        m.Purpose,
		Status:         domain.CreditStatus(m.Status),
		ReviewedBy:     m.ReviewedBy,
		ReviewComment:  m.ReviewComment,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCreditApplicationSlice converts model applications to domain form
func ToDomainCreditApplicationSlice(ms []models.CreditApplication) []domain.CreditApplication {
	ds := make([]domain.CreditApplication, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCreditApplication(m)
	}
	return ds
}
