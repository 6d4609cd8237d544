package mapping

import (
	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/models"
)

// ToModelClient converts a domain Client to a model Client
func ToModelClient(d domain.Client) models.Client {
	return models.Client{
		ClientID:    d.ClientID,
		SFDID:       d.SFDID,
		FullName:    d.FullName,
		Email:       d.Email,
		Phone:       d.Phone,
		KYCStatus:   string(d.KYCStatus),
		KYCLevel:    d.KYCLevel,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainClient converts a model Client to a domain Client
func ToDomainClient(m models.Client) domain.Client {
	return domain.Client{
		ClientID:    m.ClientID,
		SFDID:       m.SFDID,
		FullName:    m.FullName,
		Email:       m.Email,
		Phone:       m.Phone,
		KYCStatus:   domain.KYCStatus(m.KYCStatus),
		KYCLevel:    m.KYCLevel,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainClientSlice converts a slice of model Clients to domain Clients
func ToDomainClientSlice(ms []models.Client) []domain.Client {
	ds := make([]domain.Client, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainClient(m)
	}
	return ds
}
