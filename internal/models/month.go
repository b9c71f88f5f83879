package models

import "time"

// Month represents one calendar month of the budget. Months are keyed by
// their "YYYY-MM" period key, created on demand, and never deleted.
// StartDate and EndDate are the first and (inclusive) last day of the
// month; ordering months by StartDate orders them chronologically.
type Month struct {
	MonthID   string    `gorm:"primaryKey;size:7" json:"month_id"`
	MonthName string    `gorm:"size:50;uniqueIndex;not null" json:"month_name"`
	StartDate time.Time `gorm:"not null" json:"start_date"`
	EndDate   time.Time `gorm:"not null" json:"end_date"`
}
