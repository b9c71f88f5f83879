package services

import (
	"time"

	"budgetbook/internal/models"
	"budgetbook/internal/pagination"
)

// Clock supplies the current wall-clock time. It is injected into services
// that enforce the closed-month rule so tests can pin "today".
type Clock func() time.Time

// MonthServicer defines the contract for month-related business logic.
type MonthServicer interface {
	CreateMonth(periodKey string) (*models.Month, error)
	GetMonth(monthID string) (*models.Month, error)
	ListMonths(page pagination.PageRequest) (*pagination.PageResponse[models.Month], error)
}

// CreateItemInput holds everything needed to create a budget item together
// with its first version.
type CreateItemInput struct {
	ItemName           string
	ItemType           models.ItemType
	Description        string
	Owner              models.Owner
	BillsPot           bool
	CalculationType    models.CalculationType
	WeeklyPaymentDay   *int
	LastPaymentMonthID *string
	Value              int64
	Notes              string
	IsOneOff           bool
}

// UpdateItemInput holds a partial update of item metadata. Nil fields are
// left untouched. LastPaymentMonthID distinguishes three states: nil leaves
// the termination boundary alone, an empty string clears it, and a month
// key sets it.
type UpdateItemInput struct {
	ItemName           *string
	ItemType           *models.ItemType
	Description        *string
	Owner              *models.Owner
	BillsPot           *bool
	CalculationType    *models.CalculationType
	WeeklyPaymentDay   *int
	LastPaymentMonthID *string
}

// ItemServicer defines the contract for budget item lifecycle logic.
type ItemServicer interface {
	CreateItem(monthID string, input CreateItemInput) (*models.BudgetItem, error)
	ListItems(page pagination.PageRequest) (*pagination.PageResponse[models.BudgetItem], error)
	EditItem(itemID string, input UpdateItemInput) (*models.BudgetItem, error)
}

// ResolvedLine is one budget item's effective value for a target month.
// Value is the raw stored value of the selected version; EffectiveValue is
// the calculated monthly amount (for weekly_count items, Value multiplied by
// Occurrences). EffectiveFromMonthName names the month the selected version
// was filed for, which may be earlier than the target month when the value
// rolled forward.
type ResolvedLine struct {
	BudgetItemID           string                 `json:"budget_item_id"`
	ItemName               string                 `json:"item_name"`
	ItemType               models.ItemType        `json:"item_type"`
	Description            string                 `json:"description"`
	Owner                  models.Owner           `json:"owner"`
	BillsPot               bool                   `json:"bills_pot"`
	CalculationType        models.CalculationType `json:"calculation_type"`
	WeeklyPaymentDay       *int                   `json:"weekly_payment_day,omitempty"`
	Value                  int64                  `json:"value"`
	EffectiveValue         int64                  `json:"effective_value"`
	Occurrences            *int                   `json:"occurrences,omitempty"`
	EffectiveFromMonthName string                 `json:"effective_from_month_name"`
	Notes                  string                 `json:"notes"`
	IsOneOff               bool                   `json:"is_one_off"`
}

// BudgetServicer defines the contract for the effective-value resolution
// engine and the month-scoped mutations that feed it.
type BudgetServicer interface {
	ResolveForMonth(monthID string) ([]ResolvedLine, error)
	SetValueForMonth(monthID, itemID string, value int64, notes string, isOneOff bool) (*ResolvedLine, error)
	TerminateItemAtMonth(monthID, itemID string) error
}
