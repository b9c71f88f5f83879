package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "budgetbook/internal/errors"
	"budgetbook/internal/models"
	"budgetbook/internal/pagination"
)

// itemService handles budget item lifecycle logic.
type itemService struct {
	db *gorm.DB
}

// NewItemService creates a new ItemServicer.
func NewItemService(db *gorm.DB) ItemServicer {
	return &itemService{db: db}
}

// CreateItem creates a budget item together with its first version, filed
// for and effective from the given starting month. Both rows are written in
// one transaction; a partially created item is never observable.
func (s *itemService) CreateItem(monthID string, input CreateItemInput) (*models.BudgetItem, error) {
	if input.ItemName == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "item name is required")
	}

	month, err := getMonth(s.db, monthID)
	if err != nil {
		return nil, err
	}

	var lastPaymentMonthID *string
	if input.LastPaymentMonthID != nil && *input.LastPaymentMonthID != "" {
		boundary, err := getMonth(s.db, *input.LastPaymentMonthID)
		if err != nil {
			return nil, err
		}
		lastPaymentMonthID = &boundary.MonthID
	}

	// The payment weekday only has meaning for weekly_count items.
	weekday := input.WeeklyPaymentDay
	if input.CalculationType != models.CalculationTypeWeeklyCount {
		weekday = nil
	}

	item := &models.BudgetItem{
		ItemName:           input.ItemName,
		ItemType:           input.ItemType,
		Description:        input.Description,
		Owner:              input.Owner,
		BillsPot:           input.BillsPot,
		CalculationType:    input.CalculationType,
		WeeklyPaymentDay:   weekday,
		LastPaymentMonthID: lastPaymentMonthID,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(item).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		version := &models.BudgetItemVersion{
			BudgetItemID:         item.ID,
			MonthID:              month.MonthID,
			Value:                input.Value,
			EffectiveFromMonthID: month.MonthID,
			Notes:                input.Notes,
			IsOneOff:             input.IsOneOff,
		}
		if err := tx.Create(version).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return item, nil
}

// ListItems returns a page of budget items ordered by name.
func (s *itemService) ListItems(page pagination.PageRequest) (*pagination.PageResponse[models.BudgetItem], error) {
	page.Defaults()

	base := s.db.Model(&models.BudgetItem{})

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var items []models.BudgetItem
	if err := base.Order("item_name").Scopes(pagination.Paginate(page)).Find(&items).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(items, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// EditItem applies a partial update to item metadata. Only supplied fields
// change. Moving an item off weekly_count clears its payment weekday, and a
// weekday supplied for a non-weekly item is discarded.
func (s *itemService) EditItem(itemID string, input UpdateItemInput) (*models.BudgetItem, error) {
	item, err := getItem(s.db, itemID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if input.ItemName != nil {
		updates["item_name"] = *input.ItemName
	}
	if input.ItemType != nil {
		updates["item_type"] = *input.ItemType
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Owner != nil {
		updates["owner"] = *input.Owner
	}
	if input.BillsPot != nil {
		updates["bills_pot"] = *input.BillsPot
	}

	if input.LastPaymentMonthID != nil {
		if *input.LastPaymentMonthID == "" {
			updates["last_payment_month_id"] = nil
		} else {
			boundary, err := getMonth(s.db, *input.LastPaymentMonthID)
			if err != nil {
				return nil, err
			}
			updates["last_payment_month_id"] = boundary.MonthID
		}
	}

	switch {
	case input.CalculationType != nil:
		updates["calculation_type"] = *input.CalculationType
		if *input.CalculationType != models.CalculationTypeWeeklyCount {
			updates["weekly_payment_day"] = nil
		} else if input.WeeklyPaymentDay != nil {
			updates["weekly_payment_day"] = *input.WeeklyPaymentDay
		}
	case input.WeeklyPaymentDay != nil:
		if item.CalculationType == models.CalculationTypeWeeklyCount {
			updates["weekly_payment_day"] = *input.WeeklyPaymentDay
		} else {
			updates["weekly_payment_day"] = nil
		}
	}

	if len(updates) > 0 {
		if err := s.db.Model(item).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return getItem(s.db, itemID)
}

// getItem fetches an existing budget item or returns ErrItemNotFound.
func getItem(tx *gorm.DB, itemID string) (*models.BudgetItem, error) {
	var item models.BudgetItem
	if err := tx.Where("id = ?", itemID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrItemNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &item, nil
}
