package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "moneta/internal/errors"
	"moneta/internal/services"
)

// ReportHandler handles aggregation report requests.
type ReportHandler struct {
	reportService services.ReportServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GetSummary handles the overall income/expense summary
// @Summary     Get summary report
// @Description Get total income, total expense, and net over an optional date window. Transfer fees count as expense.
// @Tags        reports
// @Accept      json
// @Produce     json
// @Param       from_date query string false "Start date (RFC3339 or YYYY-MM-DD)"
// @Param       to_date   query string false "End date (RFC3339 or YYYY-MM-DD)"
// @Success     200 {object} services.ReportSummary "Summary totals"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/summary [get]
func (h *ReportHandler) GetSummary(c *gin.Context) {
	var from, to *time.Time

	if v := c.Query("from_date"); v != "" {
		t, err := parseFlexibleTime(v)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid from_date format, use RFC3339 or YYYY-MM-DD"))
			return
		}
		from = &t
	}
	if v := c.Query("to_date"); v != "" {
		t, err := parseFlexibleTime(v)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid to_date format, use RFC3339 or YYYY-MM-DD"))
			return
		}
		to = &t
	}

	summary, err := h.reportService.Summary(from, to)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// GetBreakdown handles the spending breakdown report
// @Summary     Get spending breakdown
// @Description Get expense totals keyed by category or by account type. Split transactions contribute per split line.
// @Tags        reports
// @Accept      json
// @Produce     json
// @Param       by       query string false "Grouping: category (default) or account_type" Enums(category, account_type)
// @Param       currency query string false "Display currency for the returned values"
// @Success     200 {object} map[string]decimal.Decimal "Keyed totals"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/breakdown [get]
func (h *ReportHandler) GetBreakdown(c *gin.Context) {
	by := c.DefaultQuery("by", "category")
	if by != "category" && by != "account_type" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid by, must be category or account_type"))
		return
	}

	breakdown, err := h.reportService.Breakdown(by == "category", c.Query("currency"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"breakdown": breakdown})
}

// GetMonthly handles the monthly comparison report
// @Summary     Get monthly comparison
// @Description Get income and expense totals for the last six calendar months, oldest first
// @Tags        reports
// @Accept      json
// @Produce     json
// @Success     200 {object} []ledger.MonthlyData "Six month buckets"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/monthly [get]
func (h *ReportHandler) GetMonthly(c *gin.Context) {
	months, err := h.reportService.Monthly(time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"months": months})
}
