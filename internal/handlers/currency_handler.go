package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "moneta/internal/errors"
	"moneta/internal/services"
)

// CurrencyHandler handles currency rate and conversion requests.
type CurrencyHandler struct {
	rateService services.RateServicer
}

// NewCurrencyHandler creates a new CurrencyHandler.
func NewCurrencyHandler(rateService services.RateServicer) *CurrencyHandler {
	return &CurrencyHandler{rateService: rateService}
}

// GetRates handles the retrieval of the current rate table
// @Summary     Get currency rates
// @Description Get the current base-currency rate table, including shipped defaults for codes never refreshed
// @Tags        currency
// @Accept      json
// @Produce     json
// @Success     200 {object} map[string]interface{} "Rate table"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /currency/rates [get]
func (h *CurrencyHandler) GetRates(c *gin.Context) {
	table, err := h.rateService.Table()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"base":       table.Base,
		"rates":      table.Rates(),
		"updated_at": table.UpdatedAt,
	})
}

// UpsertRateRequest represents the request payload for storing a rate
type UpsertRateRequest struct {
	Code string  `json:"code" binding:"required,iso4217"`
	Rate float64 `json:"rate" binding:"required,gt=0"`
}

// UpsertRate handles storing a refreshed currency rate
// @Summary     Upsert a currency rate
// @Description Store a refreshed rate for a currency code, expressed as display units per base unit
// @Tags        currency
// @Accept      json
// @Produce     json
// @Param       request body UpsertRateRequest true "Rate details"
// @Success     200 {object} models.CurrencyRate "Stored rate"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /currency/rates [put]
func (h *CurrencyHandler) UpsertRate(c *gin.Context) {
	var req UpsertRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	rate, err := h.rateService.UpsertRate(req.Code, req.Rate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rate": rate})
}

// Convert handles a currency conversion
// @Summary     Convert an amount
// @Description Convert an amount between the base currency and a display currency. A malformed amount converts as zero.
// @Tags        currency
// @Accept      json
// @Produce     json
// @Param       amount  query string true  "Amount to convert"
// @Param       code    query string true  "Display currency code"
// @Param       to_base query bool   false "Convert from display into base instead of base into display"
// @Success     200 {object} map[string]interface{} "Converted amount"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /currency/convert [get]
func (h *CurrencyHandler) Convert(c *gin.Context) {
	// Unparseable amounts convert as zero rather than erroring, matching
	// free-form amount entry elsewhere.
	amount, err := decimal.NewFromString(c.Query("amount"))
	if err != nil {
		amount = decimal.Zero
	}

	toBase := c.Query("to_base") == "true" || c.Query("to_base") == "1"

	converted, err := h.rateService.Convert(amount, c.Query("code"), toBase)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"amount":    amount,
		"code":      c.Query("code"),
		"converted": converted,
	})
}
