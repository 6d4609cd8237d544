package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
	portssvc "github.com/ICON-SARL/ngnasoro-sub006/internal/core/ports/services"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/dto"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler handles HTTP requests for accounts and the transaction ledger.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// RegisterLedgerRoutes registers all account and transaction routes.
func RegisterLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", middleware.RequireCapability(domain.CapLedgerWrite), h.createAccount)
	}

	clients := rg.Group("/clients/:id")
	{
		clients.GET("/balance", middleware.RequireCapability(domain.CapLedgerRead), h.getBalance)
		clients.GET("/account", middleware.RequireCapability(domain.CapLedgerRead), h.getAccount)
		clients.GET("/transactions", middleware.RequireCapability(domain.CapLedgerRead), h.listTransactions)
		clients.POST("/deposits", middleware.RequireCapability(domain.CapLedgerWrite), h.deposit)
		clients.POST("/withdrawals", middleware.RequireCapability(domain.CapLedgerWrite), h.withdraw)
		clients.POST("/repayments", middleware.RequireCapability(domain.CapLedgerWrite), h.recordRepayment)
	}

	transactions := rg.Group("/transactions")
	{
		transactions.GET("/:id", middleware.RequireCapability(domain.CapLedgerRead), h.getTransaction)
		transactions.POST("/:id/flag", middleware.RequireCapability(domain.CapLedgerFlag), h.flagTransaction)
	}

	sfds := rg.Group("/sfds/:id")
	{
		sfds.GET("/transactions", middleware.RequireCapability(domain.CapLedgerRead), h.listSFDTransactions)
	}
}

// createAccount godoc
// @Summary Open a client account
// @Description Opens a zero-balance FCFA account for a client.
// @Tags accounts
// @Accept json
// @Produce json
// @Param account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Client already has an account"
// @Security BearerAuth
// @Router /accounts [post]
func (h *ledgerHandler) createAccount(c *gin.Context) {
	actor, ok := mustGetAuth(c)
	if !ok {
		return
	}
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.ledgerService.CreateAccount(c.Request.Context(), actor, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create account")
		return
	}
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// getBalance godoc
// @Summary Get a client's balance
// @Description Returns the current balance. Clients without an account report zero.
// @Tags accounts
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} dto.BalanceResponse
// @Failure 404 {object} ErrorResponse "Client not found"
// @Security BearerAuth
// @Router /clients/{id}/balance [get]
func (h *ledgerHandler) getBalance(c *gin.Context) {
	actor, ok := mustGetAuth(c)
	if !ok {
		return
	}
	clientID := c.Param("id")

	balance, currency, err := h.ledgerService.GetBalance(c.Request.Context(), actor, clientID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve balance")
		return
	}
	c.JSON(http.StatusOK, dto.BalanceResponse{
		ClientID:     clientID,
		Balance:      balance,
		CurrencyCode: currency,
	})
}

// getAccount godoc
// @Summary Get a client's account
// @Tags accounts
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients/{id}/account [get]
func (h *ledgerHandler) getAccount(c *gin.Context) {
	actor, ok := mustGetAuth(c)
	if !ok {
		return
	}
	account, err := h.ledgerService.GetAccountByClientID(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deposit godoc
// @Summary Deposit into a client's account
// @Description Credits the account and records the ledger entry atomically.
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param transaction body dto.TransactionRequest true "Deposit details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients/{id}/deposits [post]
func (h *ledgerHandler) deposit(c *gin.Context) {
	h.applyMutation(c, h.ledgerService.Deposit, "Failed to record deposit")
}

// withdraw godoc
// @Summary Withdraw from a client's account
// @Description Debits the account. A debit that would leave the balance negative is rejected.
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param transaction body dto.TransactionRequest true "Withdrawal details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 422 {object} ErrorResponse "Insufficient balance"
// @Security BearerAuth
// @Router /clients/{id}/withdrawals [post]
func (h *ledgerHandler) withdraw(c *gin.Context) {
	h.applyMutation(c, h.ledgerService.Withdraw, "Failed to record withdrawal")
}

// recordRepayment godoc
// @Summary Record a loan repayment
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param transaction body dto.TransactionRequest true "Repayment details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 422 {object} ErrorResponse "Insufficient balance"
// @Security BearerAuth
// @Router /clients/{id}/repayments [post]
func (h *ledgerHandler) recordRepayment(c *gin.Context) {
	h.applyMutation(c, h.ledgerService.RecordRepayment, "Failed to record repayment")
}

func (h *ledgerHandler) applyMutation(
	c *gin.Context,
	apply func(ctx context.Context, actor domain.AuthContext, clientID string, req dto.TransactionRequest) (*domain.Transaction, error),
	failureMessage string,
) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := mustGetAuth(c)
	if !ok {
		return
	}
	clientID := c.Param("id")

	var req dto.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for transaction request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	txn, err := apply(c.Request.Context(), actor, clientID, req)
	if err != nil {
		respondServiceError(c, err, failureMessage)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// getTransaction godoc
// @Summary Get a transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{id} [get]
func (h *ledgerHandler) getTransaction(c *gin.Context) {
	actor, ok := mustGetAuth(c)
	if !ok {
		return
	}
	txn, err := h.ledgerService.GetTransactionByID(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List a client's transactions
// @Description Returns the client's ledger entries, newest first, with token pagination.
// @Tags transactions
// @Produce json
// @Param id path string true "Client ID"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListTransactionsResponse
// @Security BearerAuth
// @Router /clients/{id}/transactions [get]
func (h *ledgerHandler) listTransactions(c *gin.Context) {
	actor, ok := mustGetAuth(c)
	if !ok {
		return
	}
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	txns, nextToken, err := h.ledgerService.ListTransactions(c.Request.Context(), actor, c.Param("id"), params.Limit, params.NextToken)
	if err != nil {
		respondServiceError(c, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTransactionsResponse(txns, nextToken))
}

// listSFDTransactions godoc
// @Summary List an SFD's transactions
// @Tags transactions
// @Produce json
// @Param id path string true "SFD ID"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListTransactionsResponse
// @Security BearerAuth
// @Router /sfds/{id}/transactions [get]
func (h *ledgerHandler) listSFDTransactions(c *gin.Context) {
	actor, ok := mustGetAuth(c)
	if !ok {
		return
	}
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	txns, nextToken, err := h.ledgerService.ListSFDTransactions(c.Request.Context(), actor, c.Param("id"), params.Limit, params.NextToken)
	if err != nil {
		respondServiceError(c, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTransactionsResponse(txns, nextToken))
}

// flagTransaction godoc
// @Summary Flag a transaction for review
// @Description Marks a recorded transaction as flagged. The entry itself is never modified.
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 204 "Flagged"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already flagged"
// @Security BearerAuth
// @Router /transactions/{id}/flag [post]
func (h *ledgerHandler) flagTransaction(c *gin.Context) {
	actor, ok := mustGetAuth(c)
	if !ok {
		return
	}
	if err := h.ledgerService.FlagTransaction(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondServiceError(c, err, "Failed to flag transaction")
		return
	}
	c.Status(http.StatusNoContent)
}
