package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "outlay/internal/errors"
	"outlay/internal/models"
	"outlay/internal/services"
)

// ExpenseHandler handles expense CRUD requests.
type ExpenseHandler struct {
	expenseService services.ExpenseServicer
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseService services.ExpenseServicer) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// ExpenseRequest represents the payload for creating or updating an expense.
// user_id is only read on create; updates never change the owner.
type ExpenseRequest struct {
	ExpenseName string `json:"expense_name"`
	Amount      int64  `json:"amount"`
	Note        string `json:"note"`
	ExpenseDate string `json:"expense_date"`
	UserID      uint   `json:"user_id"`
	CategoryID  *uint  `json:"category_id"`
}

// ExpenseResponse is the serialized expense. The owning user id and the
// creation timestamp are not part of the wire shape.
type ExpenseResponse struct {
	ID          uint   `json:"id"`
	ExpenseName string `json:"expense_name"`
	Amount      int64  `json:"amount"`
	Note        string `json:"note"`
	ExpenseDate string `json:"expense_date"`
	CategoryID  *uint  `json:"category_id"`
}

func newExpenseResponse(e *models.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		ExpenseName: e.ExpenseName,
		Amount:      e.Amount,
		Note:        e.Note,
		ExpenseDate: e.ExpenseDate.Format(dateLayout),
		CategoryID:  e.CategoryID,
	}
}

// ListByUser returns all expenses for the user id in the path as a bare JSON
// array. There is no existence check; an unknown id yields an empty list.
func (h *ExpenseHandler) ListByUser(c *gin.Context) {
	userID, err := parsePathID(c, "user_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenses, err := h.expenseService.ListByUser(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	resp := make([]ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		resp = append(resp, newExpenseResponse(&expenses[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Create stores a new expense. The owner is the user_id carried in the body;
// the path segment is not consulted.
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	// A malformed date is not a handled case; it surfaces as a server error.
	date, err := time.Parse(dateLayout, req.ExpenseDate)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	expense, err := h.expenseService.Create(req.ExpenseName, req.Amount, req.Note, date, req.UserID, req.CategoryID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newExpenseResponse(expense))
}

// GetByID returns a single expense or a 404.
func (h *ExpenseHandler) GetByID(c *gin.Context) {
	expenseID, err := parsePathID(c, "expense_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.GetByID(expenseID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, newExpenseResponse(expense))
}

// Update overwrites all mutable fields of an expense. It answers 201, not
// 200; existing clients depend on that.
func (h *ExpenseHandler) Update(c *gin.Context) {
	expenseID, err := parsePathID(c, "expense_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := time.Parse(dateLayout, req.ExpenseDate)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	expense, err := h.expenseService.Update(expenseID, req.ExpenseName, req.Amount, req.Note, date, req.CategoryID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newExpenseResponse(expense))
}

// Delete removes an expense and answers 204.
func (h *ExpenseHandler) Delete(c *gin.Context) {
	expenseID, err := parsePathID(c, "expense_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.expenseService.Delete(expenseID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
