package services

import (
	"gorm.io/gorm"

	apperrors "outlay/internal/errors"
	"outlay/internal/models"
)

// categoryService reads the global category list. Categories are seeded by
// migration and have no mutating endpoints.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// ListCategories returns all categories ordered by id.
func (s *categoryService) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Order("id").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}
