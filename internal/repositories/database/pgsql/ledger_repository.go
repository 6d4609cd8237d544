package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/apperrors"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
	portsrepo "github.com/ICON-SARL/ngnasoro-sub006/internal/core/ports/repositories"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/models"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/utils/mapping"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountColumns = `account_id, client_id, sfd_id, balance, currency_code, is_active, created_at, created_by, last_updated_at, last_updated_by`

const transactionColumns = `transaction_id, account_id, client_id, sfd_id, amount, type, status, reference_id, description, performed_by, balance_after, created_at`

type PgxLedgerRepository struct {
	BaseRepository
	auditRepo        portsrepo.AuditWriter
	notificationRepo portsrepo.NotificationWriter
}

// newPgxLedgerRepository creates a new repository for accounts and transactions.
func newPgxLedgerRepository(pool *pgxpool.Pool, auditRepo portsrepo.AuditWriter, notificationRepo portsrepo.NotificationWriter) portsrepo.LedgerRepositoryWithTx {
	return &PgxLedgerRepository{
		BaseRepository:   BaseRepository{Pool: pool},
		auditRepo:        auditRepo,
		notificationRepo: notificationRepo,
	}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryWithTx
var _ portsrepo.LedgerRepositoryWithTx = (*PgxLedgerRepository)(nil)

// SaveAccount inserts a new account.
func (r *PgxLedgerRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	modelAcc := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelAcc.AccountID,
		modelAcc.ClientID,
		modelAcc.SFDID,
		modelAcc.Balance,
		modelAcc.CurrencyCode,
		modelAcc.IsActive,
		modelAcc.CreatedAt,
		modelAcc.CreatedBy,
		modelAcc.LastUpdatedAt,
		modelAcc.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: client %s already has an account", apperrors.ErrDuplicate, modelAcc.ClientID)
		}
		return fmt.Errorf("failed to save account %s: %w", modelAcc.AccountID, err)
	}
	return nil
}

// UpdateAccount updates an existing account's mutable details.
func (r *PgxLedgerRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	modelAcc := mapping.ToModelAccount(account)

	query := `
		UPDATE accounts
		SET is_active = $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		modelAcc.AccountID,
		modelAcc.IsActive,
		modelAcc.LastUpdatedAt,
		modelAcc.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", modelAcc.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("account " + modelAcc.AccountID + " not found")
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxLedgerRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`

	modelAcc, err := r.scanAccountRow(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}

	domainAcc := mapping.ToDomainAccount(*modelAcc)
	return &domainAcc, nil
}

// FindAccountByClientID retrieves the account attached to a client.
func (r *PgxLedgerRepository) FindAccountByClientID(ctx context.Context, clientID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE client_id = $1;`

	modelAcc, err := r.scanAccountRow(r.Pool.QueryRow(ctx, query, clientID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account for client %s: %w", clientID, err)
	}

	domainAcc := mapping.ToDomainAccount(*modelAcc)
	return &domainAcc, nil
}

// ListAccountsBySFD retrieves a paginated list of accounts for a given SFD.
func (r *PgxLedgerRepository) ListAccountsBySFD(ctx context.Context, sfdID string, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE sfd_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, sfdID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts for SFD %s: %w", sfdID, err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		modelAcc, err := r.scanAccountRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, *modelAcc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}

	return mapping.ToDomainAccountSlice(accounts), nil
}

// ApplyTransaction posts a balance mutation together with its audit event and
// notification in a single database transaction.
func (r *PgxLedgerRepository) ApplyTransaction(ctx context.Context, txn domain.Transaction, audit domain.AuditLogEvent, notification *domain.Notification) (*domain.Transaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	saved, err := r.ApplyTransactionInTx(ctx, tx, txn)
	if err != nil {
		return nil, err
	}

	audit.TargetID = saved.TransactionID
	if err := r.auditRepo.SaveAuditEventInTx(ctx, tx, audit); err != nil {
		return nil, err
	}

	if notification != nil {
		if err := r.notificationRepo.SaveNotificationInTx(ctx, tx, *notification); err != nil {
			return nil, err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return saved, nil
}

// ApplyTransactionInTx locks the client's account row, validates the resulting
// balance, updates it and appends the ledger entry. A first credit to a client
// without an account opens the account with a zero starting balance.
func (r *PgxLedgerRepository) ApplyTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) (*domain.Transaction, error) {
	lockQuery := `SELECT ` + accountColumns + ` FROM accounts WHERE client_id = $1 FOR UPDATE;`

	modelAcc, err := r.scanAccountRow(tx.QueryRow(ctx, lockQuery, txn.ClientID))
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewAppError(500, "failed to lock account for client "+txn.ClientID, err)
		}
		if !txn.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: client %s has no account", apperrors.ErrNotFound, txn.ClientID)
		}
		opened, err := r.openAccountInTx(ctx, tx, txn)
		if err != nil {
			return nil, err
		}
		modelAcc = opened
	}

	if !modelAcc.IsActive {
		return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrConflict, modelAcc.AccountID)
	}

	newBalance := modelAcc.Balance.Add(txn.Amount)
	if newBalance.IsNegative() {
		return nil, apperrors.ErrInsufficientBalance
	}

	updateQuery := `
		UPDATE accounts
		SET balance = $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, modelAcc.AccountID, newBalance, txn.CreatedAt, txn.PerformedBy); err != nil {
		return nil, apperrors.NewAppError(500, "failed to update balance for account "+modelAcc.AccountID, err)
	}

	txn.AccountID = modelAcc.AccountID
	txn.SFDID = modelAcc.SFDID
	txn.BalanceAfter = newBalance

	modelTxn := mapping.ToModelTransaction(txn)
	insertQuery := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, insertQuery,
		modelTxn.TransactionID,
		modelTxn.AccountID,
		modelTxn.ClientID,
		modelTxn.SFDID,
		modelTxn.Amount,
		modelTxn.Type,
		modelTxn.Status,
		modelTxn.ReferenceID,
		modelTxn.Description,
		modelTxn.PerformedBy,
		modelTxn.BalanceAfter,
		modelTxn.CreatedAt,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert transaction "+modelTxn.TransactionID, err)
	}

	return &txn, nil
}

// openAccountInTx inserts a fresh zero-balance account for the client inside
// the supplied transaction and returns the new row.
func (r *PgxLedgerRepository) openAccountInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) (*models.Account, error) {
	acc := models.Account{
		AccountID:    uuid.NewString(),
		ClientID:     txn.ClientID,
		SFDID:        txn.SFDID,
		CurrencyCode: domain.DefaultCurrencyCode,
		IsActive:     true,
		AuditFields: models.AuditFields{
			CreatedAt:     txn.CreatedAt,
			CreatedBy:     txn.PerformedBy,
			LastUpdatedAt: txn.CreatedAt,
			LastUpdatedBy: txn.PerformedBy,
		},
	}

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := tx.Exec(ctx, query,
		acc.AccountID,
		acc.ClientID,
		acc.SFDID,
		acc.Balance,
		acc.CurrencyCode,
		acc.IsActive,
		acc.CreatedAt,
		acc.CreatedBy,
		acc.LastUpdatedAt,
		acc.LastUpdatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to open account for client "+txn.ClientID, err)
	}
	return &acc, nil
}

// FindTransactionByID retrieves a transaction by its ID.
func (r *PgxLedgerRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	var m models.Transaction
	err := r.Pool.QueryRow(ctx, query, transactionID).Scan(
		&m.TransactionID,
		&m.AccountID,
		&m.ClientID,
		&m.SFDID,
		&m.Amount,
		&m.Type,
		&m.Status,
		&m.ReferenceID,
		&m.Description,
		&m.PerformedBy,
		&m.BalanceAfter,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}

	domainTxn := mapping.ToDomainTransaction(m)
	return &domainTxn, nil
}

// ListTransactionsByClientID retrieves a paginated list of a client's
// transactions using token-based pagination, newest first.
func (r *PgxLedgerRepository) ListTransactionsByClientID(ctx context.Context, clientID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	return r.listTransactions(ctx, "client_id", clientID, limit, nextToken)
}

// ListTransactionsBySFD retrieves a paginated list of transactions across an SFD.
func (r *PgxLedgerRepository) ListTransactionsBySFD(ctx context.Context, sfdID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	return r.listTransactions(ctx, "sfd_id", sfdID, limit, nextToken)
}

func (r *PgxLedgerRepository) listTransactions(ctx context.Context, filterColumn, filterValue string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE ` + filterColumn + ` = $1
	`
	// Ordering must be stable; transaction_id breaks created_at ties.
	orderByClause := `ORDER BY created_at DESC, transaction_id DESC`

	args := []interface{}{filterValue}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeCursor(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		cursorClause := `AND (created_at, transaction_id) < ($2, $3)`
		args = append(args, lastCreatedAt, lastID)
		baseQuery = baseQuery + " " + cursorClause
	}

	query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions", err)
	}
	defer rows.Close()

	transactions := make([]models.Transaction, 0, fetchLimit)
	for rows.Next() {
		var m models.Transaction
		err := rows.Scan(
			&m.TransactionID,
			&m.AccountID,
			&m.ClientID,
			&m.SFDID,
			&m.Amount,
			&m.Type,
			&m.Status,
			&m.ReferenceID,
			&m.Description,
			&m.PerformedBy,
			&m.BalanceAfter,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		transactions = append(transactions, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating transaction rows", err)
	}

	var nextTokenVal *string
	results := transactions
	if len(transactions) > limit {
		lastTxn := transactions[limit-1] // The last item included in this page
		token := pagination.EncodeCursor(lastTxn.CreatedAt, lastTxn.TransactionID)
		nextTokenVal = &token
		results = transactions[:limit]
	}

	return mapping.ToDomainTransactionSlice(results), nextTokenVal, nil
}

// UpdateTransactionStatus changes the status of an existing transaction.
// The ledger is append-only; this is the only permitted mutation.
func (r *PgxLedgerRepository) UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, updatedBy string) error {
	query := `
		UPDATE transactions
		SET status = $2
		WHERE transaction_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, transactionID, string(status))
	if err != nil {
		return fmt.Errorf("failed to update status of transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("transaction " + transactionID + " not found")
	}
	return nil
}

// scanAccountRow scans one account row from a pgx.Row or pgx.Rows.
func (r *PgxLedgerRepository) scanAccountRow(row pgx.Row) (*models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.ClientID,
		&m.SFDID,
		&m.Balance,
		&m.CurrencyCode,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
