package mapping

import (
	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/models"
)

// ToModelSFD converts a domain SFD to a model SFD
func ToModelSFD(d domain.SFD) models.SFD {
	return models.SFD{
		SFDID:          d.SFDID,
		Name:           d.Name,
		Code:           d.Code,
		Region:         d.Region,
		Status:         string(d.Status),
		SubsidyBalance: d.SubsidyBalance,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSFD converts a model SFD to a domain SFD
func ToDomainSFD(m models.SFD) domain.SFD {
	return domain.SFD{
		SFDID:          m.SFDID,
		Name:           m.Name,
		Code:           m.Code,
		Region:         m.Region,
		Status:         domain.SFDStatus(m.Status),
		SubsidyBalance: m.SubsidyBalance,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainSFDSlice converts a slice of model SFDs to domain SFDs
func ToDomainSFDSlice(ms []models.SFD) []domain.SFD {
	ds := make([]domain.SFD, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSFD(m)
	}
	return ds
}
