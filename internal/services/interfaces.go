package services

import (
	"time"

	"outlay/internal/models"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	Register(username, email, password string) (*models.User, error)
	Authenticate(email, password string) (*models.User, error)
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	ListCategories() ([]models.Category, error)
}

// ExpenseServicer defines the contract for expense-related business logic.
type ExpenseServicer interface {
	ListByUser(userID uint) ([]models.Expense, error)
	Create(name string, amount int64, note string, date time.Time, userID uint, categoryID *uint) (*models.Expense, error)
	GetByID(expenseID uint) (*models.Expense, error)
	Update(expenseID uint, name string, amount int64, note string, date time.Time, categoryID *uint) (*models.Expense, error)
	Delete(expenseID uint) error
}
