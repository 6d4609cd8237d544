package mapping

import (
	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/models"
)

// ToModelSubsidyRequest converts a domain SubsidyRequest to its model
func ToModelSubsidyRequest(d domain.SubsidyRequest) models.SubsidyRequest {
	return models.SubsidyRequest{
		RequestID:       d.RequestID,
		SFDID:           d.SFDID,
		Amount:          d.Amount,
		Purpose:         d.Purpose,
		Priority:        string(d.Priority),
		Status:          string(d.Status),
		DecidedBy:       d.DecidedBy,
		DecisionComment: d.DecisionComment,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSubsidyRequest converts a model SubsidyRequest to its domain form
func ToDomainSubsidyRequest(m models.SubsidyRequest) domain.SubsidyRequest {
	return domain.SubsidyRequest{
		RequestID:       m.RequestID,
		SFDID:           m.SFDID,
		Amount:          m.Amount,
		Purpose:         m.Purpose,
		Priority:        domain.RequestPriority(m.Priority),
		Status:          domain.RequestStatus(m.Status),
		DecidedBy:       m.DecidedBy,
		DecisionComment: m.DecisionComment,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainSubsidyRequestSlice converts model subsidy requests to domain form
func ToDomainSubsidyRequestSlice(ms []models.SubsidyRequest) []domain.SubsidyRequest {
	ds := make([]domain.SubsidyRequest, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSubsidyRequest(m)
	}
	return ds
}

// ToModelFundRequest converts a domain FundRequest to its model
func ToModelFundRequest(d domain.FundRequest) models.FundRequest {
	return models.FundRequest{
		RequestID:       d.RequestID,
		SFDID:           d.SFDID,
		Amount:          d.Amount,
		Purpose:         d.Purpose,
		Status:          string(d.Status),
		DecidedBy:       d.DecidedBy,
		DecisionComment: d.DecisionComment,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFundRequest converts a model FundRequest to its domain form
func ToDomainFundRequest(m models.FundRequest) domain.FundRequest {
	return domain.FundRequest{
		RequestID:       m.RequestID,
		SFDID:           m.SFDID,
		Amount:          m.Amount,
		Purpose:         m.Purpose,
		Status:          domain.RequestStatus(m.Status),
		DecidedBy:       m.DecidedBy,
		DecisionComment: m.DecisionComment,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainFundRequestSlice converts model fund requests to domain form
func ToDomainFundRequestSlice(ms []models.FundRequest) []domain.FundRequest {
	ds := make([]domain.FundRequest, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainFundRequest(m)
	}
	return ds
}
