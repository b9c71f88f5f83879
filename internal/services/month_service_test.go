package services

import (
	"testing"
	"time"

	"budgetbook/internal/models"
	"budgetbook/internal/pagination"
	"budgetbook/internal/testutil"
)

func TestCreateMonth(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMonthService(db)

		month, err := svc.CreateMonth("2025-03")
		testutil.AssertNoError(t, err)

		if month.MonthID != "2025-03" {
			t.Errorf("expected month_id 2025-03, got %s", month.MonthID)
		}
		if month.MonthName != "March 2025" {
			t.Errorf("expected month name March 2025, got %s", month.MonthName)
		}
		if !month.StartDate.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("unexpected start date: %v", month.StartDate)
		}
		if month.EndDate.Day() != 31 {
			t.Errorf("expected March to end on the 31st, got %d", month.EndDate.Day())
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMonthService(db)

		first, err := svc.CreateMonth("2025-06")
		testutil.AssertNoError(t, err)
		second, err := svc.CreateMonth("2025-06")
		testutil.AssertNoError(t, err)

		if first.MonthName != second.MonthName {
			t.Errorf("expected the same month back, got %q and %q", first.MonthName, second.MonthName)
		}

		var count int64
		if err := db.Model(&models.Month{}).Count(&count).Error; err != nil {
			t.Fatalf("count failed: %v", err)
		}
		if count != 1 {
			t.Errorf("expected 1 month row, got %d", count)
		}
	})

	t.Run("invalid_key", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMonthService(db)

		for _, bad := range []string{"2025", "2025-13", "2025-00", "March 2025", "2025-3"} {
			_, err := svc.CreateMonth(bad)
			testutil.AssertAppError(t, err, "INVALID_PERIOD")
		}
	})
}

func TestGetMonth(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewMonthService(db)
	testutil.CreateTestMonth(t, db, "2025-01")

	month, err := svc.GetMonth("2025-01")
	testutil.AssertNoError(t, err)
	if month.MonthName != "January 2025" {
		t.Errorf("unexpected month name: %s", month.MonthName)
	}

	_, err = svc.GetMonth("1999-01")
	testutil.AssertAppError(t, err, "MONTH_NOT_FOUND")
}

func TestListMonths(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewMonthService(db)

	// Created out of order; listing must be chronological.
	testutil.CreateTestMonth(t, db, "2025-03")
	testutil.CreateTestMonth(t, db, "2024-12")
	testutil.CreateTestMonth(t, db, "2025-01")

	page := pagination.PageRequest{Page: 1, PageSize: 20}
	result, err := svc.ListMonths(page)
	testutil.AssertNoError(t, err)

	if result.TotalItems != 3 {
		t.Fatalf("expected 3 months, got %d", result.TotalItems)
	}
	want := []string{"2024-12", "2025-01", "2025-03"}
	for i, key := range want {
		if result.Data[i].MonthID != key {
			t.Errorf("position %d: expected %s, got %s", i, key, result.Data[i].MonthID)
		}
	}
}
