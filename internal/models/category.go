package models

// Category is a named grouping for expenses, global and shared across users.
// Categories are seed data; there are no endpoints that mutate them.
type Category struct {
	Base
	CategoryName string `gorm:"uniqueIndex;not null" json:"category_name"`

	Expenses []Expense `gorm:"foreignKey:CategoryID" json:"expenses,omitempty"`
}
