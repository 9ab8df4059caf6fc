package dto

import (
	"time"

	"github.com/SscSPs/fintrack_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a transaction.
// Expense amounts may be sent with either sign; they are stored negative.
type CreateTransactionRequest struct {
	AccountID   string                 `json:"account_id" binding:"required"`
	ProfileID   *string                `json:"profile_id"` // Omitted for shared household spending
	Amount      decimal.Decimal        `json:"amount" binding:"required"`
	Type        domain.TransactionType `json:"type" binding:"required,oneof=income expense"`
	Category    string                 `json:"category" binding:"required,max=100"`
	Description *string                `json:"description"`
	IsShared    bool                   `json:"is_shared"`
	Date        string                 `json:"date" binding:"omitempty,datetime=2006-01-02"` // Defaults to today
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	ProfileID  string  `form:"profile_id"`  // Empty or "all" for no profile filter
	ShowShared *bool   `form:"show_shared"` // Defaults to true
	Limit      int     `form:"limit,default=0" binding:"min=0,max=500"`
	NextToken  *string `form:"nextToken"`
}

// WantsShared resolves the show_shared default.
func (p ListTransactionsParams) WantsShared() bool {
	return p.ShowShared == nil || *p.ShowShared
}

// TransactionResponse is a transaction joined with account and profile details.
type TransactionResponse struct {
	TransactionID string          `json:"id"`
	AccountID     string          `json:"account_id"`
	ProfileID     *string         `json:"profile_id"`
	Amount        decimal.Decimal `json:"amount"`
	Type          string          `json:"type"`
	Category      string          `json:"category"`
	Description   *string         `json:"description"`
	IsShared      bool            `json:"is_shared"`
	IsOpening     bool            `json:"is_opening"`
	Date          string          `json:"date"`
	AccountName   string          `json:"account_name"`
	ProfileName   *string         `json:"profile_name"`
	ProfilePhoto  *string         `json:"profile_photo"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// RecordTransactionResponse is returned after a transaction is recorded.
type RecordTransactionResponse struct {
	Msg         string              `json:"msg"`
	Transaction TransactionResponse `json:"transaction"`
}

func ToTransactionResponse(v domain.TransactionView) TransactionResponse {
	return TransactionResponse{
		TransactionID: v.TransactionID,
		AccountID:     v.AccountID,
		ProfileID:     v.ProfileID,
		Amount:        v.Amount,
		Type:          string(v.Type),
		Category:      v.Category,
		Description:   v.Description,
		IsShared:      v.IsShared,
		IsOpening:     v.IsOpening,
		Date:          v.Date.Format(DateLayout),
		AccountName:   v.AccountName,
		ProfileName:   v.ProfileName,
		ProfilePhoto:  v.ProfilePhoto,
		CreatedAt:     v.CreatedAt,
	}
}

func ToTransactionResponses(views []domain.TransactionView) []TransactionResponse {
	res := make([]TransactionResponse, len(views))
	for i, v := range views {
		res[i] = ToTransactionResponse(v)
	}
	return res
}
