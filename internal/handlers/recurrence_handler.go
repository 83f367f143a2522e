package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "moneta/internal/errors"
	"moneta/internal/services"
)

// RecurrenceHandler handles recurring transaction generation requests.
type RecurrenceHandler struct {
	recurrenceService services.RecurrenceServicer
}

// NewRecurrenceHandler creates a new RecurrenceHandler.
func NewRecurrenceHandler(recurrenceService services.RecurrenceServicer) *RecurrenceHandler {
	return &RecurrenceHandler{recurrenceService: recurrenceService}
}

// Run handles an explicit recurrence scan
// @Summary     Generate due recurring transactions
// @Description Scan recurring templates and create all occurrences due up to today. Idempotent; already generated occurrences are skipped.
// @Tags        recurrences
// @Accept      json
// @Produce     json
// @Param       as_of query string false "Generate as of this date instead of today (RFC3339 or YYYY-MM-DD)"
// @Success     200 {object} map[string]interface{} "Generated occurrences"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recurrences/run [post]
func (h *RecurrenceHandler) Run(c *gin.Context) {
	today := time.Now()
	if v := c.Query("as_of"); v != "" {
		parsed, err := parseFlexibleTime(v)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid as_of format, use RFC3339 or YYYY-MM-DD"))
			return
		}
		today = parsed
	}

	generated, err := h.recurrenceService.Run(today)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"generated": generated,
		"count":     len(generated),
	})
}
