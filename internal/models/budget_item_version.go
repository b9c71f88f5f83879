package models

// BudgetItemVersion records the value of a budget item as filed for one
// month. At most one version exists per (item, month) pair; re-filing the
// same pair overwrites the row. EffectiveFromMonthID is always the filed
// month, and non-one-off versions roll forward into later months until a
// newer version supersedes them. Values are in minor currency units; for
// weekly_count items the value is per occurrence of the payment weekday.
type BudgetItemVersion struct {
	Base
	BudgetItemID         string `gorm:"type:uuid;not null;uniqueIndex:idx_version_item_month" json:"budget_item_id"`
	MonthID              string `gorm:"size:7;not null;uniqueIndex:idx_version_item_month" json:"month_id"`
	Value                int64  `gorm:"not null" json:"value"`
	EffectiveFromMonthID string `gorm:"size:7;not null" json:"effective_from_month_id"`
	Notes                string `json:"notes"`
	IsOneOff             bool   `gorm:"not null;default:false" json:"is_one_off"`

	// Relationships
	BudgetItem         BudgetItem `gorm:"foreignKey:BudgetItemID" json:"-"`
	Month              Month      `gorm:"foreignKey:MonthID;references:MonthID" json:"-"`
	EffectiveFromMonth Month      `gorm:"foreignKey:EffectiveFromMonthID;references:MonthID" json:"-"`
}
