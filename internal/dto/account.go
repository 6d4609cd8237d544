package dto

import (
	"time"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to open a client account.
type CreateAccountRequest struct {
	ClientID string `json:"clientID" binding:"required"`
	SFDID    string `json:"sfdID" binding:"required"`
}

// TransactionRequest defines the data needed to post a balance mutation.
// The mutation type comes from the endpoint, not the payload.
type TransactionRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required,decimalgt0"`
	Description string          `json:"description"`
	ReferenceID string          `json:"referenceID"` // Optional external reference
}

// AccountResponse defines the data returned for an account.
// Mirrors domain.Account.
type AccountResponse struct {
	AccountID     string          `json:"accountID"`
	ClientID      string          `json:"clientID"`
	SFDID         string          `json:"sfdID"`
	Balance       decimal.Decimal `json:"balance"`
	CurrencyCode  string          `json:"currencyCode"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy string          `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		ClientID:      acc.ClientID,
		SFDID:         acc.SFDID,
		Balance:       acc.Balance,
		CurrencyCode:  acc.CurrencyCode,
		IsActive:      acc.IsActive,
		CreatedAt:     acc.CreatedAt,
		CreatedBy:     acc.CreatedBy,
		LastUpdatedAt: acc.LastUpdatedAt,
		LastUpdatedBy: acc.LastUpdatedBy,
	}
}

// BalanceResponse defines the data returned for a balance query.
// Clients without an account report a zero balance.
type BalanceResponse struct {
	ClientID     string          `json:"clientID"`
	Balance      decimal.Decimal `json:"balance"`
	CurrencyCode string          `json:"currencyCode"`
}

// TransactionResponse defines the data returned for a recorded transaction.
type TransactionResponse struct {
	TransactionID string                   `json:"transactionID"`
	AccountID     string                   `json:"accountID"`
	ClientID      string                   `json:"clientID"`
	SFDID         string                   `json:"sfdID"`
	Type          domain.TransactionType   `json:"type"`
	Status        domain.TransactionStatus `json:"status"`
	Amount        decimal.Decimal          `json:"amount"`
	BalanceAfter  decimal.Decimal          `json:"balanceAfter"`
	Description   string                   `json:"description"`
	ReferenceID   string                   `json:"referenceID,omitempty"`
	PerformedBy   string                   `json:"performedBy"`
	CreatedAt     time.Time                `json:"createdAt"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		AccountID:     txn.AccountID,
		ClientID:      txn.ClientID,
		SFDID:         txn.SFDID,
		Type:          txn.Type,
		Status:        txn.Status,
		Amount:        txn.Amount,
		BalanceAfter:  txn.BalanceAfter,
		Description:   txn.Description,
		ReferenceID:   txn.ReferenceID,
		PerformedBy:   txn.PerformedBy,
		CreatedAt:     txn.CreatedAt,
	}
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse wraps the list of transactions with the
// pagination token for the next page.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToListTransactionsResponse converts domain transactions and a pagination
// token to the response DTO.
func ToListTransactionsResponse(txns []domain.Transaction, nextToken *string) ListTransactionsResponse {
	res := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		res[i] = ToTransactionResponse(&txn)
	}
	return ListTransactionsResponse{
		Transactions: res,
		NextToken:    nextToken,
	}
}
