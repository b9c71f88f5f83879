package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "budgetbook/internal/errors"
	"budgetbook/internal/models"
	"budgetbook/internal/pagination"
	"budgetbook/internal/services"
)

// ItemHandler handles budget item catalogue requests.
type ItemHandler struct {
	itemService services.ItemServicer
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(itemService services.ItemServicer) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

// CreateItemRequest represents the request payload for creating a budget item
// together with its first version.
type CreateItemRequest struct {
	ItemName           string                 `json:"item_name" binding:"required,min=1,max=100"`
	ItemType           models.ItemType        `json:"item_type" binding:"required,item_type"`
	Description        string                 `json:"description" binding:"max=500"`
	Owner              models.Owner           `json:"owner" binding:"required,item_owner"`
	BillsPot           bool                   `json:"bills_pot"`
	CalculationType    models.CalculationType `json:"calculation_type" binding:"required,calculation_type"`
	WeeklyPaymentDay   *int                   `json:"weekly_payment_day" binding:"omitempty,min=1,max=7"`
	LastPaymentMonthID *string                `json:"last_payment_month_id" binding:"omitempty,period_key"`
	Value              int64                  `json:"value" binding:"required"`
	Notes              string                 `json:"notes" binding:"max=500"`
	IsOneOff           bool                   `json:"is_one_off"`
}

// CreateItem creates a budget item anchored to the month in the path. The
// item's first version is filed against, and effective from, that month.
func (h *ItemHandler) CreateItem(c *gin.Context) {
	monthID := c.Param("month_id")

	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	item, err := h.itemService.CreateItem(monthID, services.CreateItemInput{
		ItemName:           req.ItemName,
		ItemType:           req.ItemType,
		Description:        req.Description,
		Owner:              req.Owner,
		BillsPot:           req.BillsPot,
		CalculationType:    req.CalculationType,
		WeeklyPaymentDay:   req.WeeklyPaymentDay,
		LastPaymentMonthID: req.LastPaymentMonthID,
		Value:              req.Value,
		Notes:              req.Notes,
		IsOneOff:           req.IsOneOff,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// GetItems lists the item catalogue across all months.
func (h *ItemHandler) GetItems(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.itemService.ListItems(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdateItemRequest represents a partial update of a budget item's metadata.
// Only fields present in the payload are touched. An empty string for
// last_payment_month_id clears the termination boundary.
type UpdateItemRequest struct {
	ItemName           *string                 `json:"item_name" binding:"omitempty,min=1,max=100"`
	ItemType           *models.ItemType        `json:"item_type" binding:"omitempty,item_type"`
	Description        *string                 `json:"description" binding:"omitempty,max=500"`
	Owner              *models.Owner           `json:"owner" binding:"omitempty,item_owner"`
	BillsPot           *bool                   `json:"bills_pot"`
	CalculationType    *models.CalculationType `json:"calculation_type" binding:"omitempty,calculation_type"`
	WeeklyPaymentDay   *int                    `json:"weekly_payment_day" binding:"omitempty,min=1,max=7"`
	LastPaymentMonthID *string                 `json:"last_payment_month_id" binding:"omitempty,period_key"`
}

// UpdateItem applies a partial update to a budget item.
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	itemID := c.Param("item_id")

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	item, err := h.itemService.EditItem(itemID, services.UpdateItemInput{
		ItemName:           req.ItemName,
		ItemType:           req.ItemType,
		Description:        req.Description,
		Owner:              req.Owner,
		BillsPot:           req.BillsPot,
		CalculationType:    req.CalculationType,
		WeeklyPaymentDay:   req.WeeklyPaymentDay,
		LastPaymentMonthID: req.LastPaymentMonthID,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}
