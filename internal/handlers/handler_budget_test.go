package handlers_test

import (
	"net/http"
	"time"

	"github.com/SscSPs/fintrack_app/internal/apperrors"
	"github.com/SscSPs/fintrack_app/internal/core/domain"
	"github.com/SscSPs/fintrack_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func groceriesBudget(amount int64) *domain.Budget {
	return &domain.Budget{
		BudgetID:  "b1",
		UserID:    testUserID,
		Category:  "Groceries",
		Amount:    decimal.NewFromInt(amount),
		Period:    domain.Monthly,
		StartDate: time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2023, 4, 30, 0, 0, 0, 0, time.UTC),
		Spent:     decimal.NewFromInt(8500),
	}
}

func (suite *HandlerTestSuite) TestUpsertBudget_CreatedThenUpdated() {
	suite.budgets.On("UpsertBudget", mock.Anything, testUserID, mock.MatchedBy(func(r dto.UpsertBudgetRequest) bool {
		return r.Amount.Equal(decimal.NewFromInt(15000))
	})).Return(groceriesBudget(15000), true, nil).Once()
	suite.budgets.On("UpsertBudget", mock.Anything, testUserID, mock.MatchedBy(func(r dto.UpsertBudgetRequest) bool {
		return r.Amount.Equal(decimal.NewFromInt(18000))
	})).Return(groceriesBudget(18000), false, nil).Once()

	w := suite.authed(http.MethodPost, "/api/v1/budgets", map[string]any{
		"category": "Groceries", "amount": 15000, "period": "monthly", "reference_date": "2023-04-15",
	})
	suite.Equal(http.StatusCreated, w.Code, w.Body.String())

	w = suite.authed(http.MethodPost, "/api/v1/budgets", map[string]any{
		"category": "Groceries", "amount": 18000, "period": "monthly", "reference_date": "2023-04-20",
	})
	suite.Equal(http.StatusOK, w.Code, w.Body.String())

	var env dto.BudgetEnvelope
	suite.decode(w, &env)
	suite.Equal("b1", env.Budget.BudgetID)
	suite.Equal("2023-04-01", env.Budget.StartDate)
	suite.Equal("2023-04-30", env.Budget.EndDate)
	suite.True(env.Budget.Remaining.Equal(decimal.NewFromInt(9500)))
}

func (suite *HandlerTestSuite) TestUpsertBudget_RejectsNonPositiveAmount() {
	w := suite.authed(http.MethodPost, "/api/v1/budgets", map[string]any{"category": "Groceries", "amount": -5})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.authed(http.MethodPost, "/api/v1/budgets", map[string]any{"category": "Groceries", "amount": 5, "reference_date": "15/04/2023"})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestListBudgets() {
	suite.budgets.On("ListBudgets", mock.Anything, testUserID).Return([]domain.Budget{*groceriesBudget(15000)}, nil).Once()

	w := suite.authed(http.MethodGet, "/api/v1/budgets", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.BudgetResponse
	suite.decode(w, &resp)
	suite.Require().Len(resp, 1)
	suite.True(resp[0].Spent.Equal(decimal.NewFromInt(8500)))
}

func (suite *HandlerTestSuite) TestUpdateBudget_NotOwner() {
	suite.budgets.On("UpdateBudget", mock.Anything, testUserID, "b-other", mock.Anything).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.authed(http.MethodPut, "/api/v1/budgets/b-other", map[string]any{"amount": 10})

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestDeleteBudget() {
	suite.budgets.On("DeleteBudget", mock.Anything, testUserID, "b1").Return(nil).Once()
	suite.budgets.On("DeleteBudget", mock.Anything, testUserID, "b1").Return(apperrors.ErrNotFound).Once()

	w := suite.authed(http.MethodDelete, "/api/v1/budgets/b1", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"msg":"Budget deleted"}`, w.Body.String())

	w = suite.authed(http.MethodDelete, "/api/v1/budgets/b1", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}
