package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "budgetbook/internal/errors"
	"budgetbook/internal/services"
)

// BudgetHandler handles the per-month budget view and value mutations.
type BudgetHandler struct {
	budgetService services.BudgetServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// GetMonthItems resolves every active item's effective value for a month.
func (h *BudgetHandler) GetMonthItems(c *gin.Context) {
	monthID := c.Param("month_id")

	lines, err := h.budgetService.ResolveForMonth(monthID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"month": monthID,
		"items": lines,
		"count": len(lines),
	})
}

// SetItemValueRequest represents the request payload for filing a value
// against a specific month.
type SetItemValueRequest struct {
	Value    int64  `json:"value" binding:"required"`
	Notes    string `json:"notes" binding:"max=500"`
	IsOneOff bool   `json:"is_one_off"`
}

// SetItemValue files a value for an item against a month. Filing twice for
// the same month replaces the earlier value rather than stacking a second one.
func (h *BudgetHandler) SetItemValue(c *gin.Context) {
	monthID := c.Param("month_id")
	itemID := c.Param("item_id")

	var req SetItemValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	line, err := h.budgetService.SetValueForMonth(monthID, itemID, req.Value, req.Notes, req.IsOneOff)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": line})
}

// RemoveItemFromMonth ends an item's run as of the given month. The item
// keeps appearing in earlier months and disappears from this one onward.
func (h *BudgetHandler) RemoveItemFromMonth(c *gin.Context) {
	monthID := c.Param("month_id")
	itemID := c.Param("item_id")

	if err := h.budgetService.TerminateItemAtMonth(monthID, itemID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item removed from month onward"})
}
