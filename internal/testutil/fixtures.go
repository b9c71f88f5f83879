package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"budgetbook/internal/calendar"
	"budgetbook/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestMonth creates the month for the given "YYYY-MM" key.
func CreateTestMonth(t *testing.T, db *gorm.DB, key string) *models.Month {
	t.Helper()

	year, monthNum, err := calendar.ParseKey(key)
	if err != nil {
		t.Fatalf("invalid month key %q: %v", key, err)
	}
	start, end := calendar.Bounds(year, monthNum)

	month := &models.Month{
		MonthID:   key,
		MonthName: calendar.DisplayName(year, monthNum),
		StartDate: start,
		EndDate:   end,
	}
	if err := db.Create(month).Error; err != nil {
		t.Fatalf("failed to create test month %s: %v", key, err)
	}
	return month
}

// CreateTestItem creates a fixed-calculation expense item.
func CreateTestItem(t *testing.T, db *gorm.DB) *models.BudgetItem {
	t.Helper()
	return CreateTestItemNamed(t, db, fmt.Sprintf("Test Item %d", nextID()))
}

// CreateTestItemNamed creates a fixed-calculation expense item with the given name.
func CreateTestItemNamed(t *testing.T, db *gorm.DB, name string) *models.BudgetItem {
	t.Helper()

	item := &models.BudgetItem{
		ItemName:        name,
		ItemType:        models.ItemTypeExpense,
		Owner:           models.OwnerShared,
		CalculationType: models.CalculationTypeFixed,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("failed to create test item: %v", err)
	}
	return item
}

// CreateTestWeeklyItem creates a weekly_count expense item paying on the
// given ISO weekday (1=Mon .. 7=Sun).
func CreateTestWeeklyItem(t *testing.T, db *gorm.DB, weekday int) *models.BudgetItem {
	t.Helper()

	item := &models.BudgetItem{
		ItemName:         fmt.Sprintf("Test Weekly Item %d", nextID()),
		ItemType:         models.ItemTypeExpense,
		Owner:            models.OwnerShared,
		CalculationType:  models.CalculationTypeWeeklyCount,
		WeeklyPaymentDay: &weekday,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("failed to create test weekly item: %v", err)
	}
	return item
}

// CreateTestVersion files a non-one-off version of the item for the month,
// effective from that same month.
func CreateTestVersion(t *testing.T, db *gorm.DB, itemID, monthID string, value int64) *models.BudgetItemVersion {
	t.Helper()
	return createVersion(t, db, itemID, monthID, value, false)
}

// CreateTestOneOffVersion files a one-off version of the item for the month.
func CreateTestOneOffVersion(t *testing.T, db *gorm.DB, itemID, monthID string, value int64) *models.BudgetItemVersion {
	t.Helper()
	return createVersion(t, db, itemID, monthID, value, true)
}

func createVersion(t *testing.T, db *gorm.DB, itemID, monthID string, value int64, oneOff bool) *models.BudgetItemVersion {
	t.Helper()

	version := &models.BudgetItemVersion{
		BudgetItemID:         itemID,
		MonthID:              monthID,
		Value:                value,
		EffectiveFromMonthID: monthID,
		IsOneOff:             oneOff,
	}
	if err := db.Create(version).Error; err != nil {
		t.Fatalf("failed to create test version: %v", err)
	}
	return version
}
