package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/apperrors"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
	portssvc "github.com/ICON-SARL/ngnasoro-sub006/internal/core/ports/services"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/dto"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/handlers"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/middleware"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) GetBalance(ctx context.Context, actor domain.AuthContext, clientID string) (decimal.Decimal, string, error) {
	args := m.Called(ctx, actor, clientID)
	return args.Get(0).(decimal.Decimal), args.String(1), args.Error(2)
}
func (m *MockLedgerService) GetAccountByClientID(ctx context.Context, actor domain.AuthContext, clientID string) (*domain.Account, error) {
	args := m.Called(ctx, actor, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockLedgerService) GetTransactionByID(ctx context.Context, actor domain.AuthContext, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, actor, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockLedgerService) ListTransactions(ctx context.Context, actor domain.AuthContext, clientID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, actor, clientID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.Transaction), token, args.Error(2)
}
func (m *MockLedgerService) ListSFDTransactions(ctx context.Context, actor domain.AuthContext, sfdID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, actor, sfdID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.Transaction), token, args.Error(2)
}
func (m *MockLedgerService) CreateAccount(ctx context.Context, actor domain.AuthContext, req dto.CreateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockLedgerService) Deposit(ctx context.Context, actor domain.AuthContext, clientID string, req dto.TransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, actor, clientID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockLedgerService) Withdraw(ctx context.Context, actor domain.AuthContext, clientID string, req dto.TransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, actor, clientID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockLedgerService) RecordRepayment(ctx context.Context, actor domain.AuthContext, clientID string, req dto.TransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, actor, clientID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockLedgerService) FlagTransaction(ctx context.Context, actor domain.AuthContext, transactionID string) error {
	args := m.Called(ctx, actor, transactionID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Test Suite ---
type LedgerHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockLedgerService *MockLedgerService
	jwtSecret         string
}

func (suite *LedgerHandlerTestSuite) generateTestToken(userID string, role domain.Role, sfdID string) string {
	return suite.generateClientToken(userID, role, sfdID, "")
}

func (suite *LedgerHandlerTestSuite) generateClientToken(userID string, role domain.Role, sfdID, clientID string) string {
	token, err := utils.GenerateJWT(userID, string(role), sfdID, clientID, suite.jwtSecret, time.Hour, "ngnasoro-test")
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (suite *LedgerHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockLedgerService = new(MockLedgerService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterLedgerRoutes(v1, suite.mockLedgerService)
}

func (suite *LedgerHandlerTestSuite) doRequest(method, url, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *LedgerHandlerTestSuite) TestGetBalance_Success() {
	clientID := uuid.NewString()
	cashierID := uuid.NewString()
	sfdID := uuid.NewString()

	suite.mockLedgerService.On("GetBalance",
		mock.Anything,
		mock.MatchedBy(func(actor domain.AuthContext) bool {
			return actor.UserID == cashierID && actor.Role == domain.RoleCashier && actor.SFDID == sfdID
		}),
		clientID,
	).Return(decimal.NewFromInt(150000), domain.DefaultCurrencyCode, nil).Once()

	token := suite.generateTestToken(cashierID, domain.RoleCashier, sfdID)
	w := suite.doRequest(http.MethodGet, fmt.Sprintf("/api/v1/clients/%s/balance", clientID), token, nil)

	suite.Equal(http.StatusOK, w.Code)

	var body dto.BalanceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(clientID, body.ClientID)
	suite.True(body.Balance.Equal(decimal.NewFromInt(150000)))
	suite.Equal(domain.DefaultCurrencyCode, body.CurrencyCode)

	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestGetBalance_ClientTokenCarriesClientID() {
	clientID := uuid.NewString()
	userID := uuid.NewString()
	sfdID := uuid.NewString()

	suite.mockLedgerService.On("GetBalance",
		mock.Anything,
		mock.MatchedBy(func(actor domain.AuthContext) bool {
			return actor.Role == domain.RoleClient && actor.ClientID == clientID
		}),
		clientID,
	).Return(decimal.NewFromInt(10000), domain.DefaultCurrencyCode, nil).Once()

	token := suite.generateClientToken(userID, domain.RoleClient, sfdID, clientID)
	w := suite.doRequest(http.MethodGet, fmt.Sprintf("/api/v1/clients/%s/balance", clientID), token, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestDeposit_Success() {
	clientID := uuid.NewString()
	cashierID := uuid.NewString()
	sfdID := uuid.NewString()
	amount := decimal.NewFromInt(25000)

	recorded := &domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     uuid.NewString(),
		ClientID:      clientID,
		SFDID:         sfdID,
		Type:          domain.Deposit,
		Status:        domain.TxnSuccess,
		Amount:        amount,
		BalanceAfter:  decimal.NewFromInt(175000),
		PerformedBy:   cashierID,
		CreatedAt:     time.Now().UTC(),
	}

	suite.mockLedgerService.On("Deposit",
		mock.Anything,
		mock.Anything,
		clientID,
		mock.MatchedBy(func(req dto.TransactionRequest) bool {
			return req.Amount.Equal(amount)
		}),
	).Return(recorded, nil).Once()

	token := suite.generateTestToken(cashierID, domain.RoleCashier, sfdID)
	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/clients/%s/deposits", clientID), token,
		dto.TransactionRequest{Amount: amount, Description: "Versement guichet"})

	suite.Equal(http.StatusCreated, w.Code)

	var body dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(recorded.TransactionID, body.TransactionID)
	suite.Equal(domain.Deposit, body.Type)
	suite.True(body.BalanceAfter.Equal(recorded.BalanceAfter))

	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestWithdraw_InsufficientBalance() {
	clientID := uuid.NewString()
	cashierID := uuid.NewString()
	sfdID := uuid.NewString()

	suite.mockLedgerService.On("Withdraw", mock.Anything, mock.Anything, clientID, mock.Anything).
		Return(nil, apperrors.ErrInsufficientBalance).Once()

	token := suite.generateTestToken(cashierID, domain.RoleCashier, sfdID)
	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/clients/%s/withdrawals", clientID), token,
		dto.TransactionRequest{Amount: decimal.NewFromInt(999999)})

	suite.Equal(http.StatusUnprocessableEntity, w.Code)

	var body map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("Insufficient balance", body["error"])

	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestDeposit_ClientRoleForbidden() {
	clientID := uuid.NewString()

	token := suite.generateTestToken(uuid.NewString(), domain.RoleClient, "")
	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/clients/%s/deposits", clientID), token,
		dto.TransactionRequest{Amount: decimal.NewFromInt(1000)})

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "Deposit")
}

func (suite *LedgerHandlerTestSuite) TestGetBalance_MissingToken() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/clients/"+uuid.NewString()+"/balance", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "GetBalance")
}

func (suite *LedgerHandlerTestSuite) TestFlagTransaction_Success() {
	transactionID := uuid.NewString()

	suite.mockLedgerService.On("FlagTransaction", mock.Anything, mock.Anything, transactionID).
		Return(nil).Once()

	token := suite.generateTestToken(uuid.NewString(), domain.RoleSuperAdmin, "")
	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/transactions/%s/flag", transactionID), token, nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestFlagTransaction_CashierForbidden() {
	transactionID := uuid.NewString()

	token := suite.generateTestToken(uuid.NewString(), domain.RoleCashier, uuid.NewString())
	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/transactions/%s/flag", transactionID), token, nil)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "FlagTransaction")
}

func (suite *LedgerHandlerTestSuite) TestListTransactions_Success() {
	clientID := uuid.NewString()
	sfdID := uuid.NewString()

	txns := []domain.Transaction{
		{
			TransactionID: uuid.NewString(),
			ClientID:      clientID,
			SFDID:         sfdID,
			Type:          domain.Deposit,
			Status:        domain.TxnSuccess,
			Amount:        decimal.NewFromInt(10000),
			CreatedAt:     time.Now().UTC(),
		},
		{
			TransactionID: uuid.NewString(),
			ClientID:      clientID,
			SFDID:         sfdID,
			Type:          domain.Withdrawal,
			Status:        domain.TxnSuccess,
			Amount:        decimal.NewFromInt(-5000),
			CreatedAt:     time.Now().UTC().Add(-time.Hour),
		},
	}

	suite.mockLedgerService.On("ListTransactions", mock.Anything, mock.Anything, clientID, 10, (*string)(nil)).
		Return(txns, nil, nil).Once()

	token := suite.generateTestToken(uuid.NewString(), domain.RoleSFDAdmin, sfdID)
	w := suite.doRequest(http.MethodGet, fmt.Sprintf("/api/v1/clients/%s/transactions?limit=10", clientID), token, nil)

	suite.Equal(http.StatusOK, w.Code)

	var body dto.ListTransactionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Len(body.Transactions, 2)
	suite.Equal(txns[0].TransactionID, body.Transactions[0].TransactionID)
	suite.Nil(body.NextToken)

	suite.mockLedgerService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestLedgerHandler(t *testing.T) {
	suite.Run(t, new(LedgerHandlerTestSuite))
}
