package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "moneta/internal/errors"
	"moneta/internal/models"
	"moneta/internal/pagination"
	"moneta/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	rateService        services.RateServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, rateService services.RateServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, rateService: rateService}
}

// SplitRequest represents one split line in a transaction payload
type SplitRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Category    string          `json:"category" binding:"required,max=100"`
	SubCategory string          `json:"sub_category" binding:"max=100"`
}

// TransactionRequest represents the request payload for creating or replacing
// a transaction. When currency is set the amount and fee are interpreted in
// that display currency and converted to the base currency before storage.
type TransactionRequest struct {
	Amount          decimal.Decimal        `json:"amount" binding:"required"`
	Fee             decimal.Decimal        `json:"fee"`
	Type            models.TransactionType `json:"type" binding:"required,transaction_type"`
	SourceAccountID uint                   `json:"source_account_id" binding:"required"`
	TargetAccountID *uint                  `json:"target_account_id"`
	Category        string                 `json:"category" binding:"required,max=100"`
	SubCategory     string                 `json:"sub_category" binding:"max=100"`
	Date            *string                `json:"date"`
	Note            string                 `json:"note" binding:"max=500"`
	Recurrence      models.Recurrence      `json:"recurrence" binding:"omitempty,recurrence"`
	Currency        string                 `json:"currency" binding:"omitempty,iso4217"`
	Splits          []SplitRequest         `json:"splits" binding:"dive"`
}

// TransactionResponse represents a transaction in the response
type TransactionResponse struct {
	ID              string                    `json:"id"`
	Amount          decimal.Decimal           `json:"amount"`
	Fee             decimal.Decimal           `json:"fee"`
	Type            models.TransactionType    `json:"type"`
	SourceAccountID uint                      `json:"source_account_id"`
	TargetAccountID *uint                     `json:"target_account_id,omitempty"`
	Category        string                    `json:"category"`
	SubCategory     string                    `json:"sub_category,omitempty"`
	Date            time.Time                 `json:"date"`
	Note            string                    `json:"note,omitempty"`
	Recurrence      models.Recurrence         `json:"recurrence"`
	Splits          []models.TransactionSplit `json:"splits,omitempty"`
}

func (h *TransactionHandler) buildInput(req TransactionRequest) (services.TransactionInput, error) {
	input := services.TransactionInput{
		Amount:          req.Amount,
		Fee:             req.Fee,
		Type:            req.Type,
		SourceAccountID: req.SourceAccountID,
		TargetAccountID: req.TargetAccountID,
		Category:        req.Category,
		SubCategory:     req.SubCategory,
		Note:            req.Note,
		Recurrence:      req.Recurrence,
	}

	if req.Date != nil && *req.Date != "" {
		parsed, err := parseFlexibleTime(*req.Date)
		if err != nil {
			return input, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid date format, use RFC3339 or YYYY-MM-DD")
		}
		input.Date = parsed
	}

	for _, split := range req.Splits {
		input.Splits = append(input.Splits, models.TransactionSplit{
			Amount:      split.Amount,
			Category:    split.Category,
			SubCategory: split.SubCategory,
		})
	}

	// Display-currency entry converts at the boundary; storage stays base.
	if req.Currency != "" {
		amount, err := h.rateService.Convert(input.Amount, req.Currency, true)
		if err != nil {
			return input, err
		}
		input.Amount = amount
		fee, err := h.rateService.Convert(input.Fee, req.Currency, true)
		if err != nil {
			return input, err
		}
		input.Fee = fee
		for i := range input.Splits {
			split, err := h.rateService.Convert(input.Splits[i].Amount, req.Currency, true)
			if err != nil {
				return input, err
			}
			input.Splits[i].Amount = split
		}
	}

	return input, nil
}

// CreateTransaction handles the creation of a new transaction
// @Summary     Create a transaction
// @Description Create a new expense, income, or transfer. Setting a recurrence other than none makes the transaction a recurring template.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       request body TransactionRequest true "Transaction details"
// @Success     201 {object} TransactionResponse "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input, err := h.buildInput(req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.CreateTransaction(input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// GetTransactions handles the retrieval of transactions
// @Summary     Get transactions
// @Description Get a paginated list of transactions with optional filters
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       page           query int    false "Page number (default 1)"
// @Param       page_size      query int    false "Items per page (default 20, max 100)"
// @Param       from_date      query string false "Filter by start date (RFC3339 or YYYY-MM-DD)"
// @Param       to_date        query string false "Filter by end date (RFC3339 or YYYY-MM-DD)"
// @Param       type           query string false "Filter by transaction type (expense, transfer, income)"
// @Param       category       query string false "Filter by category"
// @Param       account_id     query int    false "Filter by source or target account ID"
// @Param       templates_only query bool   false "Return only recurring templates"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Paginated transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [get]
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter, err := parseTransactionFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.transactionService.GetTransactions(page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func parseTransactionFilter(c *gin.Context) (services.TransactionFilter, error) {
	var filter services.TransactionFilter

	if v := c.Query("from_date"); v != "" {
		t, err := parseFlexibleTime(v)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid from_date format, use RFC3339 or YYYY-MM-DD")
		}
		filter.FromDate = &t
	}

	if v := c.Query("to_date"); v != "" {
		t, err := parseFlexibleTime(v)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid to_date format, use RFC3339 or YYYY-MM-DD")
		}
		filter.ToDate = &t
	}

	if v := c.Query("type"); v != "" {
		txType := models.TransactionType(v)
		switch txType {
		case models.TransactionTypeExpense, models.TransactionTypeTransfer, models.TransactionTypeIncome:
			filter.Type = &txType
		default:
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid type, must be expense, transfer, or income")
		}
	}

	if v := c.Query("category"); v != "" {
		filter.Category = &v
	}

	if v := c.Query("account_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid account_id")
		}
		acctID := uint(id)
		filter.AccountID = &acctID
	}

	if v := c.Query("templates_only"); v != "" {
		filter.TemplatesOnly = v == "true" || v == "1"
	}

	return filter, nil
}

// GetTransactionByID handles the retrieval of a specific transaction
// @Summary     Get transaction by ID
// @Description Get a specific transaction by ID
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       id path string true "Transaction ID"
// @Success     200 {object} TransactionResponse "Transaction details"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	transaction, err := h.transactionService.GetTransactionByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// UpdateTransaction handles replacing an existing transaction
// @Summary     Update transaction
// @Description Replace a transaction's fields. The old balance effect is reverted and the new one applied atomically.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       id      path string             true "Transaction ID"
// @Param       request body TransactionRequest true "Replacement transaction"
// @Success     200 {object} TransactionResponse "Updated transaction"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input, err := h.buildInput(req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.UpdateTransaction(c.Param("id"), input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// DeleteTransaction handles the deletion of a transaction
// @Summary     Delete transaction
// @Description Delete a transaction by ID, reverting its balance effect
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       id path string true "Transaction ID"
// @Success     200 {object} MessageResponse "Transaction deleted"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	if err := h.transactionService.DeleteTransaction(c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}
