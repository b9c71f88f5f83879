package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "budgetbook/internal/errors"
	"budgetbook/internal/pagination"
	"budgetbook/internal/services"
)

// MonthHandler handles month-related requests.
type MonthHandler struct {
	monthService services.MonthServicer
}

// NewMonthHandler creates a new MonthHandler.
func NewMonthHandler(monthService services.MonthServicer) *MonthHandler {
	return &MonthHandler{monthService: monthService}
}

// CreateMonthRequest represents the request payload for creating a month.
type CreateMonthRequest struct {
	Month string `json:"month" binding:"required,period_key"`
}

// CreateMonth handles idempotent creation of a budget month.
func (h *MonthHandler) CreateMonth(c *gin.Context) {
	var req CreateMonthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidPeriod, err.Error()))
		return
	}

	month, err := h.monthService.CreateMonth(req.Month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"month": month})
}

// GetMonths handles listing months in chronological order.
func (h *MonthHandler) GetMonths(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.monthService.ListMonths(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
