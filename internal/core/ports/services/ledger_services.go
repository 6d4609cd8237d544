package services

import (
	"context"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/dto"
	"github.com/shopspring/decimal"
)

// LedgerReaderSvc defines read operations for accounts and transactions
type LedgerReaderSvc interface {
	// GetBalance returns the current balance and currency code for a client's
	// account. A client without an account has a zero balance, not an error.
	GetBalance(ctx context.Context, actor domain.AuthContext, clientID string) (decimal.Decimal, string, error)

	// GetAccountByClientID retrieves the account attached to a client.
	GetAccountByClientID(ctx context.Context, actor domain.AuthContext, clientID string) (*domain.Account, error)

	// GetTransactionByID retrieves a specific transaction.
	GetTransactionByID(ctx context.Context, actor domain.AuthContext, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a paginated list of a client's transactions
	// using token-based pagination, newest first.
	ListTransactions(ctx context.Context, actor domain.AuthContext, clientID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// ListSFDTransactions retrieves a paginated list of transactions across an SFD.
	ListSFDTransactions(ctx context.Context, actor domain.AuthContext, sfdID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// LedgerWriterSvc defines the balance mutation operations
type LedgerWriterSvc interface {
	// CreateAccount opens an account for a client.
	CreateAccount(ctx context.Context, actor domain.AuthContext, req dto.CreateAccountRequest) (*domain.Account, error)

	// Deposit credits the client's account and returns the recorded transaction.
	Deposit(ctx context.Context, actor domain.AuthContext, clientID string, req dto.TransactionRequest) (*domain.Transaction, error)

	// Withdraw debits the client's account, rejecting the mutation when the
	// balance is insufficient.
	Withdraw(ctx context.Context, actor domain.AuthContext, clientID string, req dto.TransactionRequest) (*domain.Transaction, error)

	// RecordRepayment posts a loan repayment against the client's account.
	RecordRepayment(ctx context.Context, actor domain.AuthContext, clientID string, req dto.TransactionRequest) (*domain.Transaction, error)
}

// TransactionFlagSvc defines the supervision path over recorded transactions
type TransactionFlagSvc interface {
	// FlagTransaction marks a transaction as flagged for review.
	FlagTransaction(ctx context.Context, actor domain.AuthContext, transactionID string) error
}

// LedgerSvcFacade combines all ledger-related service interfaces
// This is a facade for clients that need access to all operations
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
	TransactionFlagSvc
}
