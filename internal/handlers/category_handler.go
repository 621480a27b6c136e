package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"outlay/internal/services"
)

// CategoryHandler handles category reads. Categories are seed data; there
// are no mutating endpoints.
type CategoryHandler struct {
	categoryService services.CategoryServicer
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService services.CategoryServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CategoryResponse is the serialized category: id and name only.
type CategoryResponse struct {
	ID           uint   `json:"id"`
	CategoryName string `json:"category_name"`
}

// ListCategories returns every category as a bare JSON array.
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.ListCategories()
	if err != nil {
		respondWithError(c, err)
		return
	}

	resp := make([]CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		resp = append(resp, CategoryResponse{ID: cat.ID, CategoryName: cat.CategoryName})
	}
	c.JSON(http.StatusOK, resp)
}
