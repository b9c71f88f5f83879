package models

// ItemType distinguishes money coming in from money going out.
type ItemType string

const (
	ItemTypeExpense ItemType = "expense"
	ItemTypeIncome  ItemType = "income"
)

// Owner identifies who a budget item belongs to.
type Owner string

const (
	OwnerShared Owner = "shared"
	OwnerAlex   Owner = "alex"
	OwnerSam    Owner = "sam"
)

// CalculationType defines how an item's monthly value is derived from its
// stored version value.
type CalculationType string

const (
	// CalculationTypeFixed uses the stored value as-is.
	CalculationTypeFixed CalculationType = "fixed"
	// CalculationTypeWeeklyCount multiplies the stored value by the number
	// of times the item's payment weekday occurs in the target month.
	CalculationTypeWeeklyCount CalculationType = "weekly_count"
)

// BudgetItem is a budget line category such as "Rent" or "Salary". Items are
// never hard-deleted: removing an item from a month onward sets
// LastPaymentMonth to the preceding month.
//
// WeeklyPaymentDay (1=Mon .. 7=Sun) is set only for weekly_count items.
type BudgetItem struct {
	Base
	ItemName           string          `gorm:"size:100;not null" json:"item_name"`
	ItemType           ItemType        `gorm:"size:10;not null;default:expense" json:"item_type"`
	Description        string          `json:"description"`
	Owner              Owner           `gorm:"size:50;not null;default:shared" json:"owner"`
	BillsPot           bool            `gorm:"not null;default:false" json:"bills_pot"`
	CalculationType    CalculationType `gorm:"size:20;not null;default:fixed" json:"calculation_type"`
	WeeklyPaymentDay   *int            `json:"weekly_payment_day,omitempty"`
	LastPaymentMonthID *string         `gorm:"size:7" json:"last_payment_month_id,omitempty"`

	// Relationships
	LastPaymentMonth *Month              `gorm:"foreignKey:LastPaymentMonthID;references:MonthID" json:"-"`
	Versions         []BudgetItemVersion `gorm:"foreignKey:BudgetItemID" json:"-"`
}
