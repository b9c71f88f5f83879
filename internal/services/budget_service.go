package services

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"budgetbook/internal/calendar"
	apperrors "budgetbook/internal/errors"
	"budgetbook/internal/logger"
	"budgetbook/internal/models"
)

// budgetService is the effective-value resolution engine. For a target
// month it decides, per item, which version applies: an exact version filed
// for that month wins, otherwise the latest non-one-off version effective
// on or before it rolls forward. Weekly-count items multiply the version
// value by the occurrence count of their payment weekday.
type budgetService struct {
	db    *gorm.DB
	clock Clock
}

// NewBudgetService creates a new BudgetServicer. The clock gates edits to
// already-closed months; pass nil to use the system clock.
func NewBudgetService(db *gorm.DB, clock Clock) BudgetServicer {
	if clock == nil {
		clock = time.Now
	}
	return &budgetService{db: db, clock: clock}
}

// ResolveForMonth computes one resolved line per budget item active in the
// target month. Items whose termination boundary precedes the month are
// skipped, as are items with no applicable version. A single item's anomaly
// never aborts the pass.
func (s *budgetService) ResolveForMonth(monthID string) ([]ResolvedLine, error) {
	month, err := getMonth(s.db, monthID)
	if err != nil {
		return nil, err
	}

	var items []models.BudgetItem
	if err := s.db.Preload("LastPaymentMonth").Order("item_name").Find(&items).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	lines := make([]ResolvedLine, 0, len(items))
	for i := range items {
		item := &items[i]

		if item.LastPaymentMonth != nil && month.StartDate.After(item.LastPaymentMonth.EndDate) {
			continue
		}

		version, err := s.selectVersion(item, month)
		if err != nil {
			return nil, err
		}
		if version == nil {
			continue
		}

		lines = append(lines, s.calculateLine(item, month, version))
	}

	return lines, nil
}

// SetValueForMonth files a value for the (item, month) pair, overwriting any
// version already filed there, and returns the freshly resolved line. The
// new version is always effective from the target month itself. Months that
// started before the current month are immutable.
func (s *budgetService) SetValueForMonth(monthID, itemID string, value int64, notes string, isOneOff bool) (*ResolvedLine, error) {
	month, err := getMonth(s.db, monthID)
	if err != nil {
		return nil, err
	}
	item, err := getItem(s.db, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.checkNotPast(month); err != nil {
		return nil, err
	}

	version := &models.BudgetItemVersion{
		BudgetItemID:         item.ID,
		MonthID:              month.MonthID,
		Value:                value,
		EffectiveFromMonthID: month.MonthID,
		Notes:                notes,
		IsOneOff:             isOneOff,
	}
	// The unique (budget_item_id, month_id) key makes this an atomic
	// create-or-overwrite; concurrent writers serialize at the store.
	err = s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "budget_item_id"}, {Name: "month_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"value", "effective_from_month_id", "notes", "is_one_off", "updated_at",
		}),
	}).Create(version).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Reload the canonical row: on conflict the original row (and its ID)
	// survives with updated columns.
	var stored models.BudgetItemVersion
	err = s.db.Preload("EffectiveFromMonth").
		Where("budget_item_id = ? AND month_id = ?", item.ID, month.MonthID).
		First(&stored).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	line := s.calculateLine(item, month, &stored)
	return &line, nil
}

// TerminateItemAtMonth marks the item inactive from the target month
// onward by setting its termination boundary to the preceding month. The
// preceding month is created on demand inside the same transaction as the
// boundary write. Prior months still resolve the item.
func (s *budgetService) TerminateItemAtMonth(monthID, itemID string) error {
	month, err := getMonth(s.db, monthID)
	if err != nil {
		return err
	}
	item, err := getItem(s.db, itemID)
	if err != nil {
		return err
	}
	if err := s.checkNotPast(month); err != nil {
		return err
	}

	prevKey := calendar.PreviousKey(month.StartDate)
	return s.db.Transaction(func(tx *gorm.DB) error {
		previous, err := getOrCreateMonth(tx, prevKey)
		if err != nil {
			return err
		}
		if err := tx.Model(item).Update("last_payment_month_id", previous.MonthID).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// checkNotPast rejects mutations against months that started before the
// first day of the current month.
func (s *budgetService) checkNotPast(month *models.Month) error {
	if month.StartDate.Before(calendar.MonthStart(s.clock())) {
		return apperrors.ErrPastPeriod
	}
	return nil
}

// selectVersion picks the version that applies to the item for the target
// month: the exact version filed for that month if one exists, otherwise
// the non-one-off version with the latest effective-from month starting on
// or before the target. Returns nil when neither exists.
func (s *budgetService) selectVersion(item *models.BudgetItem, month *models.Month) (*models.BudgetItemVersion, error) {
	var version models.BudgetItemVersion

	err := s.db.Preload("EffectiveFromMonth").
		Where("budget_item_id = ? AND month_id = ?", item.ID, month.MonthID).
		First(&version).Error
	if err == nil {
		return &version, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	err = s.db.Preload("EffectiveFromMonth").
		Joins("JOIN months ON months.month_id = budget_item_versions.effective_from_month_id").
		Where("budget_item_versions.budget_item_id = ? AND budget_item_versions.is_one_off = ? AND months.start_date <= ?",
			item.ID, false, month.StartDate).
		Order("months.start_date DESC").
		First(&version).Error
	if err == nil {
		return &version, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
}

// calculateLine applies the item's calculation mode to the selected version.
// A weekly_count item missing its payment weekday should not exist, but
// resolution degrades to the raw value rather than failing the whole month.
func (s *budgetService) calculateLine(item *models.BudgetItem, month *models.Month, version *models.BudgetItemVersion) ResolvedLine {
	line := ResolvedLine{
		BudgetItemID:           item.ID,
		ItemName:               item.ItemName,
		ItemType:               item.ItemType,
		Description:            item.Description,
		Owner:                  item.Owner,
		BillsPot:               item.BillsPot,
		CalculationType:        item.CalculationType,
		WeeklyPaymentDay:       item.WeeklyPaymentDay,
		Value:                  version.Value,
		EffectiveValue:         version.Value,
		EffectiveFromMonthName: version.EffectiveFromMonth.MonthName,
		Notes:                  version.Notes,
		IsOneOff:               version.IsOneOff,
	}

	if item.CalculationType != models.CalculationTypeWeeklyCount {
		return line
	}
	if item.WeeklyPaymentDay == nil {
		logger.Get().Warnw("weekly_count item has no payment weekday, using raw value",
			"budget_item_id", item.ID,
			"item_name", item.ItemName,
			"month_id", month.MonthID,
		)
		return line
	}

	occurrences, err := calendar.Occurrences(
		month.StartDate.Year(), int(month.StartDate.Month()), *item.WeeklyPaymentDay)
	if err != nil {
		logger.Get().Warnw("weekly occurrence count failed, using raw value",
			"budget_item_id", item.ID,
			"month_id", month.MonthID,
			"error", err,
		)
		return line
	}

	line.Occurrences = &occurrences
	line.EffectiveValue = version.Value * int64(occurrences)
	return line
}
