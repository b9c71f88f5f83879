package services

import (
	"errors"

	"gorm.io/gorm"

	"budgetbook/internal/calendar"
	apperrors "budgetbook/internal/errors"
	"budgetbook/internal/models"
	"budgetbook/internal/pagination"
)

// monthService handles month-related business logic.
type monthService struct {
	db *gorm.DB
}

// NewMonthService creates a new MonthServicer.
func NewMonthService(db *gorm.DB) MonthServicer {
	return &monthService{db: db}
}

// CreateMonth creates the month for the given "YYYY-MM" period key, or
// returns the existing row. Boundaries and display name are derived from
// the key, so creation is idempotent.
func (s *monthService) CreateMonth(periodKey string) (*models.Month, error) {
	month, err := getOrCreateMonth(s.db, periodKey)
	if err != nil {
		return nil, err
	}
	return month, nil
}

// GetMonth returns the month with the given period key.
func (s *monthService) GetMonth(monthID string) (*models.Month, error) {
	return getMonth(s.db, monthID)
}

// ListMonths returns a chronologically ordered page of months.
func (s *monthService) ListMonths(page pagination.PageRequest) (*pagination.PageResponse[models.Month], error) {
	page.Defaults()

	base := s.db.Model(&models.Month{})

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var months []models.Month
	if err := base.Order("start_date").Scopes(pagination.Paginate(page)).Find(&months).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(months, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// getOrCreateMonth looks up or inserts the month for a period key. It runs
// against the connection it is given so callers can use it inside a larger
// transaction (termination creates the preceding month this way).
func getOrCreateMonth(tx *gorm.DB, periodKey string) (*models.Month, error) {
	year, monthNum, err := calendar.ParseKey(periodKey)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidPeriod, err)
	}

	start, end := calendar.Bounds(year, monthNum)
	var month models.Month
	err = tx.Where(models.Month{MonthID: periodKey}).
		Attrs(models.Month{
			MonthID:   periodKey,
			MonthName: calendar.DisplayName(year, monthNum),
			StartDate: start,
			EndDate:   end,
		}).
		FirstOrCreate(&month).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &month, nil
}

// getMonth fetches an existing month or returns ErrMonthNotFound.
func getMonth(tx *gorm.DB, monthID string) (*models.Month, error) {
	var month models.Month
	if err := tx.Where("month_id = ?", monthID).First(&month).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMonthNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &month, nil
}
