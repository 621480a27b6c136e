// Package apiclient is the typed HTTP client the web tier uses to talk to
// the API tier. Calls are synchronous with no retries; any unexpected status
// is surfaced as a StatusError carrying the API's error_message.
package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Client talks to the Outlay API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client for the given base URL, e.g. "http://127.0.0.1:5000".
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// User mirrors the API's serialized user.
type User struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// Category mirrors the API's serialized category.
type Category struct {
	ID           uint   `json:"id"`
	CategoryName string `json:"category_name"`
}

// Expense mirrors the API's serialized expense.
type Expense struct {
	ID          uint   `json:"id"`
	ExpenseName string `json:"expense_name"`
	Amount      int64  `json:"amount"`
	Note        string `json:"note"`
	ExpenseDate string `json:"expense_date"`
	CategoryID  *uint  `json:"category_id"`
}

// ExpenseRequest is the payload for creating or updating an expense.
type ExpenseRequest struct {
	ExpenseName string `json:"expense_name"`
	Amount      int64  `json:"amount"`
	Note        string `json:"note"`
	ExpenseDate string `json:"expense_date"`
	UserID      uint   `json:"user_id,omitempty"`
	CategoryID  *uint  `json:"category_id"`
}

// StatusError reports a non-expected HTTP status along with the API's
// error_message, when one was present.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api: status %d", e.StatusCode)
}

// Login authenticates with email and password. The API reads credentials
// from the body of a GET request.
func (c *Client) Login(email, password string) (*User, error) {
	payload := map[string]string{"email": email, "password": password}
	var user User
	if err := c.do(http.MethodGet, "/authenticate", payload, http.StatusOK, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Register creates a new user.
func (c *Client) Register(username, email, password string) (*User, error) {
	payload := map[string]string{"username": username, "email": email, "password": password}
	var user User
	if err := c.do(http.MethodPost, "/authenticate", payload, http.StatusCreated, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Categories fetches the global category list.
func (c *Client) Categories() ([]Category, error) {
	var categories []Category
	if err := c.do(http.MethodGet, "/categories", nil, http.StatusOK, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Expenses fetches all expenses owned by userID.
func (c *Client) Expenses(userID uint) ([]Expense, error) {
	var expenses []Expense
	path := fmt.Sprintf("/expenses/%d", userID)
	if err := c.do(http.MethodGet, path, nil, http.StatusOK, &expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}

// Expense fetches a single expense by id.
func (c *Client) Expense(expenseID uint) (*Expense, error) {
	var expense Expense
	path := fmt.Sprintf("/expense/%d", expenseID)
	if err := c.do(http.MethodGet, path, nil, http.StatusOK, &expense); err != nil {
		return nil, err
	}
	return &expense, nil
}

// CreateExpense creates an expense. The API takes the owner from the request
// body; pathUserID only fills the path segment.
func (c *Client) CreateExpense(pathUserID uint, req ExpenseRequest) (*Expense, error) {
	var expense Expense
	path := fmt.Sprintf("/expenses/%d", pathUserID)
	if err := c.do(http.MethodPost, path, req, http.StatusCreated, &expense); err != nil {
		return nil, err
	}
	return &expense, nil
}

// UpdateExpense overwrites an expense. The API answers 201 on update.
func (c *Client) UpdateExpense(expenseID uint, req ExpenseRequest) (*Expense, error) {
	var expense Expense
	path := fmt.Sprintf("/expense/%d", expenseID)
	if err := c.do(http.MethodPut, path, req, http.StatusCreated, &expense); err != nil {
		return nil, err
	}
	return &expense, nil
}

// DeleteExpense removes an expense.
func (c *Client) DeleteExpense(expenseID uint) error {
	path := fmt.Sprintf("/expense/%d", expenseID)
	return c.do(http.MethodDelete, path, nil, http.StatusNoContent, nil)
}

// do sends a JSON request and decodes the response into out when the status
// matches wantStatus. Any other status becomes a StatusError.
func (c *Client) do(method, path string, payload interface{}, wantStatus int, out interface{}) error {
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		var apiErr struct {
			ErrorMessage string `json:"error_message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return &StatusError{StatusCode: resp.StatusCode, Message: apiErr.ErrorMessage}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
