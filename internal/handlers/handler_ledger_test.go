package handlers_test

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/fintrack_app/internal/apperrors"
	"github.com/SscSPs/fintrack_app/internal/core/domain"
	"github.com/SscSPs/fintrack_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func sampleView(id string, amount int64, typ domain.TransactionType) *domain.TransactionView {
	profile := "Dr. Ravi"
	return &domain.TransactionView{
		Transaction: domain.Transaction{
			TransactionID: id,
			UserID:        testUserID,
			AccountID:     "acc-1",
			Amount:        decimal.NewFromInt(amount),
			Type:          typ,
			Category:      "Groceries",
			Date:          time.Date(2023, 4, 12, 0, 0, 0, 0, time.UTC),
			CreatedAt:     time.Date(2023, 4, 12, 9, 30, 0, 0, time.UTC),
		},
		AccountName: "HDFC Savings",
		ProfileName: &profile,
	}
}

func (suite *HandlerTestSuite) TestRecordTransaction_Created() {
	suite.ledger.On("RecordTransaction", mock.Anything, testUserID, mock.MatchedBy(func(r dto.CreateTransactionRequest) bool {
		return r.AccountID == "acc-1" && r.Type == domain.Expense && r.Amount.Equal(decimal.NewFromInt(2500)) && r.Date == "2023-04-12"
	})).Return(sampleView("t1", -2500, domain.Expense), nil).Once()

	w := suite.authed(http.MethodPost, "/api/v1/transactions", map[string]any{
		"account_id": "acc-1",
		"amount":     2500,
		"type":       "expense",
		"category":   "Groceries",
		"date":       "2023-04-12",
	})

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.RecordTransactionResponse
	suite.decode(w, &resp)
	suite.Equal("t1", resp.Transaction.TransactionID)
	suite.True(resp.Transaction.Amount.Equal(decimal.NewFromInt(-2500)))
	suite.Equal("2023-04-12", resp.Transaction.Date)
	suite.Equal("HDFC Savings", resp.Transaction.AccountName)
}

func (suite *HandlerTestSuite) TestRecordTransaction_BindingFailures() {
	cases := []map[string]any{
		{"amount": 10, "type": "expense", "category": "Food"},                                  // no account
		{"account_id": "acc-1", "amount": 10, "type": "refund", "category": "Food"},            // bad type
		{"account_id": "acc-1", "amount": 0, "type": "income", "category": "Salary"},           // zero amount
		{"account_id": "acc-1", "amount": 10, "type": "income", "category": "S", "date": "x"}, // bad date
	}
	for _, body := range cases {
		w := suite.authed(http.MethodPost, "/api/v1/transactions", body)
		suite.Equal(http.StatusBadRequest, w.Code, body)
	}
}

func (suite *HandlerTestSuite) TestRecordTransaction_ForeignAccount() {
	suite.ledger.On("RecordTransaction", mock.Anything, testUserID, mock.Anything).
		Return(nil, fmt.Errorf("account acc-9: %w", apperrors.ErrNotFound)).Once()

	w := suite.authed(http.MethodPost, "/api/v1/transactions", map[string]any{
		"account_id": "acc-9", "amount": 10, "type": "income", "category": "Salary",
	})

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestListTransactions_PassesFilters() {
	next := "2023-04-12T00:00:00Z|2023-04-12T09:30:00Z"
	suite.ledger.On("ListTransactions", mock.Anything, testUserID, mock.MatchedBy(func(p dto.ListTransactionsParams) bool {
		return p.ProfileID == "p1" && p.ShowShared != nil && !*p.ShowShared && p.Limit == 1 && p.NextToken == nil
	})).Return([]domain.TransactionView{*sampleView("t1", 100, domain.Income)}, &next, nil).Once()

	w := suite.authed(http.MethodGet, "/api/v1/transactions?profile_id=p1&show_shared=false&limit=1", nil)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.ListTransactionsResponse
	suite.decode(w, &resp)
	suite.Len(resp.Transactions, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(next, *resp.NextToken)
}

func (suite *HandlerTestSuite) TestListTransactions_InvalidLimit() {
	w := suite.authed(http.MethodGet, "/api/v1/transactions?limit=-1", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestGetTransaction_NotFound() {
	suite.ledger.On("GetTransactionByID", mock.Anything, testUserID, "t404").Return(nil, apperrors.ErrNotFound).Once()

	w := suite.authed(http.MethodGet, "/api/v1/transactions/t404", nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.JSONEq(`{"error":"Transaction not found"}`, w.Body.String())
}

func (suite *HandlerTestSuite) TestExportTransactions_CSV() {
	csvBody := "Date,Type,Category\n2023-04-12,expense,Groceries\n"
	suite.export.On("ExportTransactions", mock.Anything, testUserID, mock.Anything, domain.ExportCSV, mock.Anything).
		Return(nil, csvBody).Once()

	w := suite.authed(http.MethodGet, "/api/v1/transactions/export", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	suite.True(strings.HasPrefix(w.Header().Get("Content-Disposition"), `attachment; filename="transactions_`))
	suite.True(strings.HasSuffix(w.Header().Get("Content-Disposition"), `.csv"`))
	suite.Equal(csvBody, w.Body.String())
}

func (suite *HandlerTestSuite) TestExportTransactions_XLSXWithFilters() {
	suite.export.On("ExportTransactions", mock.Anything, testUserID, mock.MatchedBy(func(p dto.ListTransactionsParams) bool {
		return p.ProfileID == "all"
	}), domain.ExportXLSX, mock.Anything).Return(nil, "PK").Once()

	w := suite.authed(http.MethodGet, "/api/v1/transactions/export?format=XLSX&profile_id=all", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
}

func (suite *HandlerTestSuite) TestExportTransactions_Errors() {
	w := suite.authed(http.MethodGet, "/api/v1/transactions/export?format=pdf", nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	suite.export.On("ExportTransactions", mock.Anything, testUserID, mock.Anything, domain.ExportCSV, mock.Anything).
		Return(errors.New("disk full"), "").Once()
	w = suite.authed(http.MethodGet, "/api/v1/transactions/export?format=csv", nil)
	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.Equal("application/json; charset=utf-8", w.Header().Get("Content-Type"))
}

func (suite *HandlerTestSuite) TestDashboard() {
	suite.reporting.On("GetDashboard", mock.Anything, testUserID).Return(&domain.Dashboard{
		Stats: domain.DashboardStats{
			TotalBalance:    decimal.NewFromInt(1000),
			MonthlyIncome:   decimal.NewFromInt(500),
			MonthlyExpenses: decimal.NewFromInt(200),
			InvestmentValue: decimal.Zero,
		},
		RecentTransactions: []domain.TransactionView{*sampleView("t1", -200, domain.Expense)},
		ExpenseBreakdown:   []domain.CategoryAmount{{Category: "Groceries", Amount: decimal.NewFromInt(200)}},
		MonthlyData: []domain.MonthlyTrendPoint{
			{MonthStart: time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC), Income: decimal.NewFromInt(500), Expenses: decimal.NewFromInt(200)},
		},
	}, nil).Once()

	w := suite.authed(http.MethodGet, "/api/v1/dashboard", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.DashboardResponse
	suite.decode(w, &resp)
	suite.True(resp.Stats.MonthlyIncome.Equal(decimal.NewFromInt(500)))
	suite.Len(resp.RecentTransactions, 1)
	suite.Require().Len(resp.MonthlyData, 1)
	suite.Equal("04", resp.MonthlyData[0].Month)
	suite.Equal("2023-04", resp.MonthlyData[0].Period)
}
