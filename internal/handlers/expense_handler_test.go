package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "outlay/internal/errors"
	"outlay/internal/models"
)

// --- mock expense service ---

type mockExpenseService struct {
	listByUserFn func(userID uint) ([]models.Expense, error)
	createFn     func(name string, amount int64, note string, date time.Time, userID uint, categoryID *uint) (*models.Expense, error)
	getByIDFn    func(expenseID uint) (*models.Expense, error)
	updateFn     func(expenseID uint, name string, amount int64, note string, date time.Time, categoryID *uint) (*models.Expense, error)
	deleteFn     func(expenseID uint) error
}

func (m *mockExpenseService) ListByUser(userID uint) ([]models.Expense, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(userID)
	}
	return nil, nil
}

func (m *mockExpenseService) Create(name string, amount int64, note string, date time.Time, userID uint, categoryID *uint) (*models.Expense, error) {
	if m.createFn != nil {
		return m.createFn(name, amount, note, date, userID, categoryID)
	}
	return &models.Expense{}, nil
}

func (m *mockExpenseService) GetByID(expenseID uint) (*models.Expense, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(expenseID)
	}
	return &models.Expense{}, nil
}

func (m *mockExpenseService) Update(expenseID uint, name string, amount int64, note string, date time.Time, categoryID *uint) (*models.Expense, error) {
	if m.updateFn != nil {
		return m.updateFn(expenseID, name, amount, note, date, categoryID)
	}
	return &models.Expense{}, nil
}

func (m *mockExpenseService) Delete(expenseID uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(expenseID)
	}
	return nil
}

func setupExpenseRouter(handler *ExpenseHandler) *gin.Engine {
	r := gin.New()
	r.GET("/expenses/:user_id", handler.ListByUser)
	r.POST("/expenses/:user_id", handler.Create)
	r.GET("/expense/:expense_id", handler.GetByID)
	r.PUT("/expense/:expense_id", handler.Update)
	r.DELETE("/expense/:expense_id", handler.Delete)
	return r
}

func TestExpenseHandler_ListByUser(t *testing.T) {
	t.Run("returns bare array", func(t *testing.T) {
		catID := uint(2)
		expSvc := &mockExpenseService{
			listByUserFn: func(userID uint) ([]models.Expense, error) {
				return []models.Expense{
					{
						Base:        models.Base{ID: 1},
						ExpenseName: "Coffee",
						Amount:      5,
						ExpenseDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
						UserID:      userID,
						CategoryID:  &catID,
					},
				}, nil
			},
		}
		r := setupExpenseRouter(NewExpenseHandler(expSvc))

		rec := doRequest(r, "GET", "/expenses/3", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		items := parseJSONArray(t, rec)
		if len(items) != 1 {
			t.Fatalf("expected 1 expense, got %d", len(items))
		}
		first := items[0].(map[string]interface{})
		if first["expense_name"] != "Coffee" {
			t.Errorf("expected Coffee, got %v", first["expense_name"])
		}
		if first["expense_date"] != "2024-01-01" {
			t.Errorf("expected date 2024-01-01, got %v", first["expense_date"])
		}
		if first["category_id"] != float64(2) {
			t.Errorf("expected category_id 2, got %v", first["category_id"])
		}
		if _, leaked := first["user_id"]; leaked {
			t.Error("user_id must not be serialized")
		}
	})

	t.Run("unknown user returns empty array not null", func(t *testing.T) {
		expSvc := &mockExpenseService{
			listByUserFn: func(userID uint) ([]models.Expense, error) { return nil, nil },
		}
		r := setupExpenseRouter(NewExpenseHandler(expSvc))

		rec := doRequest(r, "GET", "/expenses/999", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if body := rec.Body.String(); body != "[]" {
			t.Errorf("expected [], got %s", body)
		}
	})

	t.Run("non-numeric user id returns 400", func(t *testing.T) {
		r := setupExpenseRouter(NewExpenseHandler(&mockExpenseService{}))

		rec := doRequest(r, "GET", "/expenses/abc", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestExpenseHandler_Create(t *testing.T) {
	t.Run("owner comes from the body, not the path", func(t *testing.T) {
		var gotUserID uint
		expSvc := &mockExpenseService{
			createFn: func(name string, amount int64, note string, date time.Time, userID uint, categoryID *uint) (*models.Expense, error) {
				gotUserID = userID
				return &models.Expense{
					Base:        models.Base{ID: 10},
					ExpenseName: name,
					Amount:      amount,
					Note:        note,
					ExpenseDate: date,
					UserID:      userID,
					CategoryID:  categoryID,
				}, nil
			},
		}
		r := setupExpenseRouter(NewExpenseHandler(expSvc))

		rec := doRequest(r, "POST", "/expenses/1",
			`{"expense_name":"Coffee","amount":5,"note":"","expense_date":"2024-01-01","user_id":42,"category_id":1}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotUserID != 42 {
			t.Errorf("expected owner 42 from the body, got %d", gotUserID)
		}
		result := parseJSON(t, rec)
		if result["id"] != float64(10) {
			t.Errorf("expected id 10, got %v", result["id"])
		}
		if result["expense_date"] != "2024-01-01" {
			t.Errorf("expected 2024-01-01, got %v", result["expense_date"])
		}
	})

	t.Run("malformed date surfaces as server error", func(t *testing.T) {
		r := setupExpenseRouter(NewExpenseHandler(&mockExpenseService{}))

		rec := doRequest(r, "POST", "/expenses/1",
			`{"expense_name":"Coffee","amount":5,"expense_date":"01/01/2024","user_id":1}`)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})
}

func TestExpenseHandler_GetByID(t *testing.T) {
	t.Run("returns 404 with error_message when absent", func(t *testing.T) {
		expSvc := &mockExpenseService{
			getByIDFn: func(expenseID uint) (*models.Expense, error) {
				return nil, apperrors.ErrExpenseNotFound
			},
		}
		r := setupExpenseRouter(NewExpenseHandler(expSvc))

		rec := doRequest(r, "GET", "/expense/77", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["error_message"] == nil {
			t.Error("expected error_message in response")
		}
	})

	t.Run("nil category serializes as null", func(t *testing.T) {
		expSvc := &mockExpenseService{
			getByIDFn: func(expenseID uint) (*models.Expense, error) {
				return &models.Expense{
					Base:        models.Base{ID: expenseID},
					ExpenseName: "Cash",
					Amount:      20,
					ExpenseDate: time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC),
				}, nil
			},
		}
		r := setupExpenseRouter(NewExpenseHandler(expSvc))

		rec := doRequest(r, "GET", "/expense/5", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		value, present := result["category_id"]
		if !present {
			t.Fatal("category_id key must always be present")
		}
		if value != nil {
			t.Errorf("expected null category_id, got %v", value)
		}
	})
}

func TestExpenseHandler_Update(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		expSvc := &mockExpenseService{
			updateFn: func(expenseID uint, name string, amount int64, note string, date time.Time, categoryID *uint) (*models.Expense, error) {
				return &models.Expense{
					Base:        models.Base{ID: expenseID},
					ExpenseName: name,
					Amount:      amount,
					Note:        note,
					ExpenseDate: date,
					CategoryID:  categoryID,
				}, nil
			},
		}
		r := setupExpenseRouter(NewExpenseHandler(expSvc))

		rec := doRequest(r, "PUT", "/expense/5",
			`{"expense_name":"Tea","amount":3,"note":"","expense_date":"2024-02-02","category_id":2}`)

		// Existing clients expect 201 on update; do not "fix" it to 200.
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["expense_name"] != "Tea" {
			t.Errorf("expected Tea, got %v", result["expense_name"])
		}
	})

	t.Run("returns 404 when absent", func(t *testing.T) {
		expSvc := &mockExpenseService{
			updateFn: func(expenseID uint, name string, amount int64, note string, date time.Time, categoryID *uint) (*models.Expense, error) {
				return nil, apperrors.ErrExpenseNotFound
			},
		}
		r := setupExpenseRouter(NewExpenseHandler(expSvc))

		rec := doRequest(r, "PUT", "/expense/404",
			`{"expense_name":"X","amount":1,"expense_date":"2024-01-01"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestExpenseHandler_Delete(t *testing.T) {
	t.Run("returns 204", func(t *testing.T) {
		r := setupExpenseRouter(NewExpenseHandler(&mockExpenseService{}))

		rec := doRequest(r, "DELETE", "/expense/5", "")

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
	})

	t.Run("returns 404 when absent", func(t *testing.T) {
		expSvc := &mockExpenseService{
			deleteFn: func(expenseID uint) error { return apperrors.ErrExpenseNotFound },
		}
		r := setupExpenseRouter(NewExpenseHandler(expSvc))

		rec := doRequest(r, "DELETE", "/expense/404", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
