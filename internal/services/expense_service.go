package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "outlay/internal/errors"
	"outlay/internal/models"
)

// expenseService handles expense CRUD.
type expenseService struct {
	db *gorm.DB
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB) ExpenseServicer {
	return &expenseService{db: db}
}

// ListByUser returns all expenses owned by userID. An unknown user id simply
// yields an empty list; there is no existence check.
func (s *expenseService) ListByUser(userID uint) ([]models.Expense, error) {
	var expenses []models.Expense
	if err := s.db.Where("user_id = ?", userID).Order("id").Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expenses, nil
}

// Create stores a new expense for the given owner.
func (s *expenseService) Create(name string, amount int64, note string, date time.Time, userID uint, categoryID *uint) (*models.Expense, error) {
	expense := &models.Expense{
		ExpenseName: name,
		Amount:      amount,
		Note:        note,
		ExpenseDate: date,
		UserID:      userID,
		CategoryID:  categoryID,
	}
	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// GetByID retrieves a single expense.
func (s *expenseService) GetByID(expenseID uint) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.First(&expense, expenseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// Update overwrites all mutable fields of an expense. The owning user never
// changes.
func (s *expenseService) Update(expenseID uint, name string, amount int64, note string, date time.Time, categoryID *uint) (*models.Expense, error) {
	expense, err := s.GetByID(expenseID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"expense_name": name,
		"amount":       amount,
		"note":         note,
		"expense_date": date,
		"category_id":  categoryID,
	}
	if err := s.db.Model(expense).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Reload so the caller sees exactly what was persisted.
	return s.GetByID(expenseID)
}

// Delete removes an expense.
func (s *expenseService) Delete(expenseID uint) error {
	expense, err := s.GetByID(expenseID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(expense).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
