// Package webapp is the server-rendered frontend. Handlers translate browser
// form submissions into API calls through the apiclient and render HTML from
// the embedded templates. Form posts backed by inline JavaScript answer with
// small JSON payloads ({"success": ...} or {"error": ...}); the delete flow
// uses flashes and a redirect instead.
package webapp

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"outlay/internal/apiclient"
	"outlay/internal/chart"
	"outlay/internal/logger"
)

// User-facing messages. These are part of the page contract; the inline
// JavaScript keys off the success/error fields, not the wording.
const (
	msgLoginSuccess    = "Login successful! Redirecting..."
	msgRegisterSuccess = "Registration Successful. You can now Log in"
	msgCreateSuccess   = "New expense added successfully!"
	msgCreateFailure   = "There was an error creating new expense."
	msgUpdateSuccess   = "Expense Updated successfully!"
	msgUpdateFailure   = "There was an error performing the update"
	msgDeleteSuccess   = "Expense deleted successfully"
	msgDeleteFailure   = "There was an error performing the delete"
)

// Handlers holds the frontend's only dependency: the API client.
type Handlers struct {
	api *apiclient.Client
}

// NewHandlers creates the frontend handler set.
func NewHandlers(api *apiclient.Client) *Handlers {
	return &Handlers{api: api}
}

type signInForm struct {
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type registerForm struct {
	Username string `form:"username" binding:"required"`
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type expenseForm struct {
	ExpenseName string `form:"expense_name" binding:"required"`
	Amount      int64  `form:"amount" binding:"required"`
	ExpenseDate string `form:"expense_date" binding:"required,dateonly"`
	Note        string `form:"note"`
	Category    string `form:"category"`
}

// categoryID converts the form's category selection to a nullable id. An
// empty or unparsable selection means "no category".
func (f expenseForm) categoryID() *uint {
	if f.Category == "" {
		return nil
	}
	parsed, err := strconv.ParseUint(f.Category, 10, 64)
	if err != nil {
		return nil
	}
	id := uint(parsed)
	return &id
}

// expenseRow is the dashboard's table view of an expense, with the category
// id already resolved to its name.
type expenseRow struct {
	ID          uint
	ExpenseName string
	Amount      int64
	Note        string
	ExpenseDate string
	Category    string
}

// SignInForm renders the sign-in page.
func (h *Handlers) SignInForm(c *gin.Context) {
	c.HTML(http.StatusOK, "sign-in.html", gin.H{"flashes": consumeFlashes(c)})
}

// SignIn forwards credentials to the API and opens a session on success.
func (h *Handlers) SignIn(c *gin.Context) {
	var form signInForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form submission."})
		return
	}

	user, err := h.api.Login(form.Email, form.Password)
	if err != nil {
		var statusErr *apiclient.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusUnauthorized {
			c.JSON(http.StatusOK, gin.H{"error": statusErr.Message})
			return
		}
		logger.Get().Errorw("sign-in request failed", "error", err)
		c.HTML(http.StatusOK, "sign-in.html", gin.H{"flashes": consumeFlashes(c)})
		return
	}

	session := sessions.Default(c)
	session.Set(sessionKeyLoggedIn, true)
	session.Set(sessionKeyUserID, user.ID)
	session.Set(sessionKeyUsername, user.Username)
	if err := session.Save(); err != nil {
		logger.Get().Errorw("failed to save session", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": msgLoginSuccess})
}

// RegisterForm renders the registration page.
func (h *Handlers) RegisterForm(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", nil)
}

// Register forwards a new account to the API.
func (h *Handlers) Register(c *gin.Context) {
	var form registerForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form submission."})
		return
	}

	if _, err := h.api.Register(form.Username, form.Email, form.Password); err != nil {
		var statusErr *apiclient.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusForbidden {
			c.JSON(http.StatusOK, gin.H{"error": statusErr.Message})
			return
		}
		logger.Get().Errorw("register request failed", "error", err)
		c.HTML(http.StatusOK, "register.html", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": msgRegisterSuccess})
}

// SignOut clears the session and sends the browser back to sign-in.
func (h *Handlers) SignOut(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	_ = session.Save()
	c.Redirect(http.StatusFound, "/sign-in")
}

// Dashboard renders the expense table, the add-expense form, and the
// spending pie chart for the session user.
func (h *Handlers) Dashboard(c *gin.Context) {
	categories, err := h.api.Categories()
	if err != nil {
		h.internalError(c, "fetch categories", err)
		return
	}

	userID := sessionUserID(c)
	expenses, err := h.api.Expenses(userID)
	if err != nil {
		h.internalError(c, "fetch expenses", err)
		return
	}

	plot, err := chart.PieDataURI(categories, expenses)
	if err != nil {
		h.internalError(c, "render chart", err)
		return
	}

	names := make(map[uint]string, len(categories))
	for _, cat := range categories {
		names[cat.ID] = cat.CategoryName
	}
	rows := make([]expenseRow, 0, len(expenses))
	for _, e := range expenses {
		row := expenseRow{
			ID:          e.ID,
			ExpenseName: e.ExpenseName,
			Amount:      e.Amount,
			Note:        e.Note,
			ExpenseDate: e.ExpenseDate,
		}
		if e.CategoryID != nil {
			row.Category = names[*e.CategoryID]
		}
		rows = append(rows, row)
	}

	data := gin.H{
		"username":   sessionUsername(c),
		"categories": categories,
		"expenses":   rows,
		"flashes":    consumeFlashes(c),
	}
	// The template would reject a data: URI in a src attribute as an unsafe
	// URL; it is our own rendered PNG, so mark it trusted. Only set when a
	// chart exists so the template's {{if .plot}} guard still works.
	if plot != "" {
		data["plot"] = template.URL(plot)
	}
	c.HTML(http.StatusOK, "dashboard.html", data)
}

// CreateExpense forwards the add-expense form to the API. The path id has
// always been the literal 1; the API takes the owner from the body.
func (h *Handlers) CreateExpense(c *gin.Context) {
	var form expenseForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusOK, gin.H{"error": msgCreateFailure})
		return
	}

	req := apiclient.ExpenseRequest{
		ExpenseName: form.ExpenseName,
		Amount:      form.Amount,
		Note:        form.Note,
		ExpenseDate: form.ExpenseDate,
		UserID:      sessionUserID(c),
		CategoryID:  form.categoryID(),
	}
	if _, err := h.api.CreateExpense(1, req); err != nil {
		logger.Get().Errorw("create expense failed", "error", err)
		c.JSON(http.StatusOK, gin.H{"error": msgCreateFailure})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": msgCreateSuccess})
}

// DeleteExpense forwards a delete to the API, flashes the outcome, and
// redirects back to the dashboard.
func (h *Handlers) DeleteExpense(c *gin.Context) {
	expenseID, err := strconv.ParseUint(c.PostForm("expense_id"), 10, 64)
	if err != nil {
		flash(c, flashDanger, msgDeleteFailure)
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}

	if err := h.api.DeleteExpense(uint(expenseID)); err != nil {
		logger.Get().Errorw("delete expense failed", "error", err)
		flash(c, flashDanger, msgDeleteFailure)
	} else {
		flash(c, flashSuccess, msgDeleteSuccess)
	}
	c.Redirect(http.StatusFound, "/dashboard")
}

// UpdateForm renders the edit page pre-filled from the current expense.
func (h *Handlers) UpdateForm(c *gin.Context) {
	expenseID, err := strconv.ParseUint(c.Param("expense_id"), 10, 64)
	if err != nil {
		flash(c, flashDanger, msgUpdateFailure)
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}

	expense, err := h.api.Expense(uint(expenseID))
	if err != nil {
		h.internalError(c, "fetch expense", err)
		return
	}
	categories, err := h.api.Categories()
	if err != nil {
		h.internalError(c, "fetch categories", err)
		return
	}

	var selected uint
	if expense.CategoryID != nil {
		selected = *expense.CategoryID
	}
	c.HTML(http.StatusOK, "update.html", gin.H{
		"expense":          expense,
		"categories":       categories,
		"selectedCategory": selected,
	})
}

// UpdateExpense forwards the edited fields to the API's update endpoint.
func (h *Handlers) UpdateExpense(c *gin.Context) {
	expenseID, err := strconv.ParseUint(c.Param("expense_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"error": msgUpdateFailure})
		return
	}

	var form expenseForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusOK, gin.H{"error": msgUpdateFailure})
		return
	}

	req := apiclient.ExpenseRequest{
		ExpenseName: form.ExpenseName,
		Amount:      form.Amount,
		Note:        form.Note,
		ExpenseDate: form.ExpenseDate,
		CategoryID:  form.categoryID(),
	}
	if _, err := h.api.UpdateExpense(uint(expenseID), req); err != nil {
		logger.Get().Errorw("update expense failed", "error", err)
		c.JSON(http.StatusOK, gin.H{"error": msgUpdateFailure})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": msgUpdateSuccess})
}

// internalError logs the failed upstream call and answers with a plain 500.
func (h *Handlers) internalError(c *gin.Context, op string, err error) {
	logger.Get().Errorw("api call failed", "op", op, "error", err)
	c.String(http.StatusInternalServerError, "Something went wrong.")
}
