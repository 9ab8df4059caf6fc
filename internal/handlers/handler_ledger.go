package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/fintrack_app/internal/core/domain"
	portssvc "github.com/SscSPs/fintrack_app/internal/core/ports/services"
	"github.com/SscSPs/fintrack_app/internal/dto"
	"github.com/SscSPs/fintrack_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

var exportContentTypes = map[domain.ExportFormat]string{
	domain.ExportCSV:  "text/csv; charset=utf-8",
	domain.ExportXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// ledgerHandler serves transaction recording, listing and export.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
	exportService portssvc.ExportSvc
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade, es portssvc.ExportSvc) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls, exportService: es}
}

// RegisterLedgerRoutes registers the transaction routes.
func RegisterLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, exportService portssvc.ExportSvc) {
	h := newLedgerHandler(ledgerService, exportService)

	txns := rg.Group("/transactions")
	{
		txns.GET("", h.listTransactions)
		txns.POST("", h.recordTransaction)
		txns.GET("/export", h.exportTransactions)
		txns.GET("/:id", h.getTransaction)
	}
}

// recordTransaction godoc
// @Summary Record a transaction
// @Description Records an income or expense and moves the account balance in the same database transaction.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.RecordTransactionResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Account or profile not found"
// @Failure 500 {object} ErrorResponse "Failed to record transaction"
// @Security BearerAuth
// @Router /transactions [post]
func (h *ledgerHandler) recordTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("account_id", req.AccountID), slog.String("type", string(req.Type)))

	view, err := h.ledgerService.RecordTransaction(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, logger, err, "record transaction", "Account or profile not found")
		return
	}

	logger.Info("Transaction recorded", slog.String("transaction_id", view.TransactionID))
	c.JSON(http.StatusCreated, dto.RecordTransactionResponse{
		Msg:         "Transaction recorded",
		Transaction: dto.ToTransactionResponse(*view),
	})
}

// listTransactions godoc
// @Summary List transactions
// @Description Newest first. Filter by profile and toggle shared household spending; page with limit and nextToken.
// @Tags transactions
// @Produce json
// @Param profile_id query string false "Profile ID, or 'all'"
// @Param show_shared query bool false "Include shared transactions" default(true)
// @Param limit query int false "Page size, 0 for everything" default(0)
// @Param nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions [get]
func (h *ledgerHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	txns, nextToken, err := h.ledgerService.ListTransactions(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, logger, err, "list transactions", "")
		return
	}

	c.JSON(http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	})
}

// getTransaction godoc
// @Summary Get a transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{id} [get]
func (h *ledgerHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	view, err := h.ledgerService.GetTransactionByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "retrieve transaction", "Transaction not found")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(*view))
}

// exportTransactions godoc
// @Summary Export transactions
// @Description Downloads the filtered listing as CSV or XLSX.
// @Tags transactions
// @Produce octet-stream
// @Param format query string false "csv or xlsx" default(csv)
// @Param profile_id query string false "Profile ID, or 'all'"
// @Param show_shared query bool false "Include shared transactions" default(true)
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/export [get]
func (h *ledgerHandler) exportTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	format, ok := domain.ParseExportFormat(c.Query("format"))
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unsupported export format, use csv or xlsx"})
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	// Buffered so a failure midway can still produce an error status.
	var buf bytes.Buffer
	if err := h.exportService.ExportTransactions(c.Request.Context(), userID, params, format, &buf); err != nil {
		respondError(c, logger, err, "export transactions", "")
		return
	}

	filename := fmt.Sprintf("transactions_%s.%s", time.Now().Format("20060102"), format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, exportContentTypes[format], buf.Bytes())
}
