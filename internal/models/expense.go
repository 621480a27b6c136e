package models

import "time"

// Expense is a single spending record owned by a user. The category
// association is optional and nullable.
type Expense struct {
	Base
	ExpenseName string    `json:"expense_name"`
	Amount      int64     `gorm:"not null" json:"amount"`
	Note        string    `json:"note"`
	ExpenseDate time.Time `gorm:"type:date;not null" json:"expense_date"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	CategoryID  *uint     `json:"category_id"`

	User     User      `gorm:"foreignKey:UserID" json:"-"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"-"`
}
