package repositories

import (
	"context"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByClientID retrieves the account attached to a client, if any.
	FindAccountByClientID(ctx context.Context, clientID string) (*domain.Account, error)

	// ListAccountsBySFD retrieves a paginated list of accounts for a given SFD.
	ListAccountsBySFD(ctx context.Context, sfdID string, limit int, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, account domain.Account) error
}

// TransactionApplier defines the atomic balance mutation path. The balance
// update, the transaction row, the audit row and the notification are
// persisted in a single database transaction.
type TransactionApplier interface {
	// ApplyTransaction locks the client's account, validates the resulting
	// balance, and persists the mutation with its audit trail. It returns
	// the saved transaction with BalanceAfter populated.
	ApplyTransaction(ctx context.Context, txn domain.Transaction, audit domain.AuditLogEvent, notification *domain.Notification) (*domain.Transaction, error)

	// ApplyTransactionInTx performs the same mutation inside an existing
	// database transaction so callers can compose it with other writes.
	ApplyTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) (*domain.Transaction, error)
}

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction by its identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByClientID retrieves a paginated list of transactions for a client
	// using token-based pagination. It returns the transactions, a token for the
	// next page, and an error.
	ListTransactionsByClientID(ctx context.Context, clientID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// ListTransactionsBySFD retrieves a paginated list of transactions across an SFD.
	ListTransactionsBySFD(ctx context.Context, sfdID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// TransactionFlagger defines operations on a transaction's status.
type TransactionFlagger interface {
	// UpdateTransactionStatus changes the status of an existing transaction.
	UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, updatedBy string) error
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces
// This is a facade for clients that need access to all operations
type LedgerRepositoryFacade interface {
	AccountReader
	AccountWriter
	TransactionApplier
	TransactionReader
	TransactionFlagger
}

// LedgerRepositoryWithTx extends LedgerRepositoryFacade with transaction capabilities
type LedgerRepositoryWithTx interface {
	LedgerRepositoryFacade
	TransactionManager
}
