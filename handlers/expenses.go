package handlers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"wisewallet/backend/middleware"
	"wisewallet/backend/models"
	"wisewallet/backend/services"
)

// ExpenseService is implemented by services.ExpenseService.
type ExpenseService interface {
	Create(ctx context.Context, uid string, in services.ExpenseInput) (*models.Expense, error)
	List(ctx context.Context, uid string) ([]models.Expense, error)
	ListByCategory(ctx context.Context, uid, category string) ([]models.Expense, error)
	ListByDateRange(ctx context.Context, uid, start, end string) ([]models.Expense, error)
	GetByID(ctx context.Context, id, uid string) (*models.Expense, error)
	Update(ctx context.Context, id, uid string, in services.ExpenseInput) (*models.Expense, error)
	Delete(ctx context.Context, id, uid string) error
	Summary(ctx context.Context, uid string) (*models.ExpenseSummary, error)
	Categories(ctx context.Context, uid string) ([]string, error)
}

type expenseResponse struct {
	Message string          `json:"message"`
	Expense *models.Expense `json:"expense"`
}

type expenseRequest struct {
	Description string     `json:"description"`
	Amount      flexString `json:"amount"`
	Category    string     `json:"category"`
	Date        string     `json:"date"`
}

func (req expenseRequest) input() services.ExpenseInput {
	return services.ExpenseInput{
		Description: req.Description,
		Amount:      string(req.Amount),
		Category:    req.Category,
		Date:        req.Date,
	}
}

// ExpenseHandler serves /expenses. Every route requires RequireAuth.
type ExpenseHandler struct {
	svc ExpenseService
	err errorResponder
}

func NewExpenseHandler(svc ExpenseService, showDetail bool) *ExpenseHandler {
	return &ExpenseHandler{
		svc: svc,
		err: errorResponder{providerStatus: http.StatusBadRequest, showDetail: showDetail},
	}
}

// CreateExpense handles POST /expenses
func (h *ExpenseHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.err.badRequest(w, "Invalid request body", err)
		return
	}

	expense, err := h.svc.Create(r.Context(), middleware.GetUserIDFromContext(r), req.input())
	if err != nil {
		h.err.respond(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, expenseResponse{Message: "Expense created successfully", Expense: expense})
}

// GetExpenses handles GET /expenses
func (h *ExpenseHandler) GetExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.svc.List(r.Context(), middleware.GetUserIDFromContext(r))
	h.writeList(w, r, expenses, err)
}

// GetExpensesByCategory handles GET /expenses/category/{category}
func (h *ExpenseHandler) GetExpensesByCategory(w http.ResponseWriter, r *http.Request) {
	category := mux.Vars(r)["category"]
	expenses, err := h.svc.ListByCategory(r.Context(), middleware.GetUserIDFromContext(r), category)
	h.writeList(w, r, expenses, err)
}

// GetExpensesByDateRange handles GET /expenses/range/{startDate}/{endDate}
func (h *ExpenseHandler) GetExpensesByDateRange(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	expenses, err := h.svc.ListByDateRange(r.Context(), middleware.GetUserIDFromContext(r), vars["startDate"], vars["endDate"])
	h.writeList(w, r, expenses, err)
}

// GetExpense handles GET /expenses/{id}
func (h *ExpenseHandler) GetExpense(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	expense, err := h.svc.GetByID(r.Context(), id, middleware.GetUserIDFromContext(r))
	if err != nil {
		h.err.respond(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, expense)
}

// UpdateExpense handles PUT /expenses/{id}
func (h *ExpenseHandler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req expenseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.err.badRequest(w, "Invalid request body", err)
		return
	}

	expense, err := h.svc.Update(r.Context(), id, middleware.GetUserIDFromContext(r), req.input())
	if err != nil {
		h.err.respond(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, expenseResponse{Message: "Expense updated successfully", Expense: expense})
}

// DeleteExpense handles DELETE /expenses/{id}
func (h *ExpenseHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.svc.Delete(r.Context(), id, middleware.GetUserIDFromContext(r)); err != nil {
		h.err.respond(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Expense deleted successfully"})
}

// GetSummary handles GET /expenses/summary
func (h *ExpenseHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.Summary(r.Context(), middleware.GetUserIDFromContext(r))
	if err != nil {
		h.err.respond(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// GetCategories handles GET /expenses/categories
func (h *ExpenseHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.Categories(r.Context(), middleware.GetUserIDFromContext(r))
	if err != nil {
		h.err.respond(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

func (h *ExpenseHandler) writeList(w http.ResponseWriter, r *http.Request, expenses []models.Expense, err error) {
	if err != nil {
		h.err.respond(w, r, err)
		return
	}
	if expenses == nil {
		expenses = []models.Expense{}
	}
	respondJSON(w, http.StatusOK, expenses)
}
