package handlers_test

import (
	"fmt"
	"net/http"

	"github.com/SscSPs/fintrack_app/internal/apperrors"
	"github.com/SscSPs/fintrack_app/internal/core/domain"
	"github.com/SscSPs/fintrack_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// decimalPtr returns a pointer to the provided decimal.Decimal value.
func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

func (suite *HandlerTestSuite) TestCreateAccount_Success() {
	req := dto.CreateAccountRequest{
		Name:           "HDFC Savings",
		Type:           "Savings",
		OpeningBalance: decimalPtr(decimal.NewFromInt(125000)),
	}
	created := &domain.Account{
		AccountID:   "acc-1",
		UserID:      testUserID,
		Name:        req.Name,
		AccountType: domain.Savings,
		Balance:     decimal.NewFromInt(125000),
	}

	suite.accounts.On("CreateAccount", mock.Anything, testUserID, mock.MatchedBy(func(r dto.CreateAccountRequest) bool {
		return r.Name == req.Name && r.Type == req.Type && r.OpeningBalance != nil && r.OpeningBalance.Equal(*req.OpeningBalance)
	})).Return(created, nil).Once()

	w := suite.authed(http.MethodPost, "/api/v1/accounts", req)

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.AccountResponse
	suite.decode(w, &resp)
	suite.Equal("acc-1", resp.AccountID)
	suite.Equal("Savings", resp.Type)
	suite.True(resp.Balance.Equal(decimal.NewFromInt(125000)))
}

func (suite *HandlerTestSuite) TestCreateAccount_MissingName() {
	w := suite.authed(http.MethodPost, "/api/v1/accounts", map[string]any{"type": "Cash"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.accounts.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateAccount_ServiceValidationError() {
	suite.accounts.On("CreateAccount", mock.Anything, testUserID, mock.Anything).
		Return(nil, fmt.Errorf("%w: account type is required", apperrors.ErrValidation)).Once()

	w := suite.authed(http.MethodPost, "/api/v1/accounts", dto.CreateAccountRequest{Name: "Wallet", Type: " "})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestAccounts_RequireToken() {
	w := suite.do(http.MethodGet, "/api/v1/accounts", nil, "")
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/accounts", nil, "not-a-jwt")
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestListAccounts() {
	suite.accounts.On("ListAccounts", mock.Anything, testUserID).Return([]domain.Account{
		{AccountID: "a1", Name: "Cash Wallet", AccountType: domain.Cash, Balance: decimal.NewFromInt(15000)},
		{AccountID: "a2", Name: "Zerodha", AccountType: domain.Investment, Balance: decimal.NewFromInt(850000)},
	}, nil).Once()

	w := suite.authed(http.MethodGet, "/api/v1/accounts", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.AccountResponse
	suite.decode(w, &resp)
	suite.Len(resp, 2)
	suite.Equal("Investment", resp[1].Type)
}

func (suite *HandlerTestSuite) TestGetAccount_NotFound() {
	suite.accounts.On("GetAccountByID", mock.Anything, testUserID, "other-owners").
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.authed(http.MethodGet, "/api/v1/accounts/other-owners", nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.JSONEq(`{"error":"Account not found"}`, w.Body.String())
}

func (suite *HandlerTestSuite) TestUpdateAccount_Rename() {
	name := "Joint Savings"
	suite.accounts.On("UpdateAccount", mock.Anything, testUserID, "acc-1", dto.UpdateAccountRequest{Name: &name}).
		Return(&domain.Account{AccountID: "acc-1", Name: name, AccountType: domain.Savings, Balance: decimal.NewFromInt(10)}, nil).Once()

	w := suite.authed(http.MethodPut, "/api/v1/accounts/acc-1", map[string]any{"name": name})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.AccountResponse
	suite.decode(w, &resp)
	suite.Equal(name, resp.Name)
}

func (suite *HandlerTestSuite) TestUpdateAccount_InternalError() {
	suite.accounts.On("UpdateAccount", mock.Anything, testUserID, "acc-1", mock.Anything).
		Return(nil, fmt.Errorf("connection reset")).Once()

	w := suite.authed(http.MethodPut, "/api/v1/accounts/acc-1", map[string]any{"type": "Cash"})

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.JSONEq(`{"error":"Failed to update account"}`, w.Body.String())
}

func (suite *HandlerTestSuite) TestProfiles_CreateAndNotFound() {
	suite.profiles.On("CreateProfile", mock.Anything, testUserID, dto.CreateProfileRequest{Name: "Mrs. Ravi", Type: "spouse"}).
		Return(&domain.Profile{ProfileID: "p2", Name: "Mrs. Ravi", Type: domain.ProfileSpouse, IsActive: true}, nil).Once()
	suite.profiles.On("UpdateProfile", mock.Anything, testUserID, "missing", mock.Anything).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.authed(http.MethodPost, "/api/v1/profiles", map[string]any{"name": "Mrs. Ravi", "type": "spouse"})
	suite.Equal(http.StatusCreated, w.Code)
	var env dto.ProfileEnvelope
	suite.decode(w, &env)
	suite.Equal("p2", env.Profile.ProfileID)
	suite.True(env.Profile.IsActive)

	w = suite.authed(http.MethodPut, "/api/v1/profiles/missing", map[string]any{"name": "X"})
	suite.Equal(http.StatusNotFound, w.Code)
	suite.JSONEq(`{"error":"Profile not found or not authorized"}`, w.Body.String())
}
