package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "budgetwise/internal/errors"
	"budgetwise/internal/models"
	"budgetwise/internal/pagination"
	"budgetwise/internal/services"
)

// --- mock expense service ---

type mockExpenseService struct {
	listExpensesFn   func(userID uint, filter services.ExpenseFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error)
	createExpenseFn  func(userID uint, input services.ExpenseInput) (*models.Expense, error)
	getExpenseByIDFn func(userID, expenseID uint) (*models.Expense, error)
	updateExpenseFn  func(userID, expenseID uint, input services.ExpenseInput) (*models.Expense, error)
	deleteExpenseFn  func(userID, expenseID uint) error
}

func (m *mockExpenseService) ListExpenses(userID uint, filter services.ExpenseFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error) {
	if m.listExpensesFn != nil {
		return m.listExpensesFn(userID, filter, page)
	}
	resp := pagination.NewPageResponse([]models.Expense{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockExpenseService) CreateExpense(userID uint, input services.ExpenseInput) (*models.Expense, error) {
	if m.createExpenseFn != nil {
		return m.createExpenseFn(userID, input)
	}
	return &models.Expense{Base: models.Base{ID: 1}, UserID: userID, Amount: input.Amount}, nil
}

func (m *mockExpenseService) GetExpenseByID(userID, expenseID uint) (*models.Expense, error) {
	if m.getExpenseByIDFn != nil {
		return m.getExpenseByIDFn(userID, expenseID)
	}
	return &models.Expense{Base: models.Base{ID: expenseID}, UserID: userID}, nil
}

func (m *mockExpenseService) UpdateExpense(userID, expenseID uint, input services.ExpenseInput) (*models.Expense, error) {
	if m.updateExpenseFn != nil {
		return m.updateExpenseFn(userID, expenseID, input)
	}
	return &models.Expense{Base: models.Base{ID: expenseID}, UserID: userID, Amount: input.Amount}, nil
}

func (m *mockExpenseService) DeleteExpense(userID, expenseID uint) error {
	if m.deleteExpenseFn != nil {
		return m.deleteExpenseFn(userID, expenseID)
	}
	return nil
}

var _ services.ExpenseServicer = (*mockExpenseService)(nil)

func setupExpenseRouter(handler *ExpenseHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(1))
	auth.GET("/expenses", handler.ListExpenses)
	auth.POST("/expenses", handler.CreateExpense)
	auth.GET("/expenses/:id", handler.GetExpenseByID)
	auth.PUT("/expenses/:id", handler.UpdateExpense)
	auth.DELETE("/expenses/:id", handler.DeleteExpense)
	return r
}

func TestExpenseHandler_ListExpenses(t *testing.T) {
	t.Run("passes filters and pagination through", func(t *testing.T) {
		var gotFilter services.ExpenseFilter
		var gotPage pagination.PageRequest
		expSvc := &mockExpenseService{
			listExpensesFn: func(_ uint, filter services.ExpenseFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error) {
				gotFilter, gotPage = filter, page
				resp := pagination.NewPageResponse([]models.Expense{}, page.Page, page.PageSize, 0)
				return &resp, nil
			},
		}
		handler := NewExpenseHandler(expSvc)
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "GET", "/expenses?start_date=2026-06-01&end_date=2026-06-30&category_id=3&search=coffee&page=2&page_size=10", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotFilter.StartDate == nil || gotFilter.StartDate.Day() != 1 {
			t.Error("expected start_date filter to be parsed")
		}
		if gotFilter.CategoryID == nil || *gotFilter.CategoryID != 3 {
			t.Error("expected category_id filter to be parsed")
		}
		if gotFilter.Search != "coffee" {
			t.Errorf("expected search filter, got %q", gotFilter.Search)
		}
		if gotPage.Page != 2 || gotPage.PageSize != 10 {
			t.Errorf("expected page 2 size 10, got %d/%d", gotPage.Page, gotPage.PageSize)
		}
	})

	t.Run("malformed date returns 400", func(t *testing.T) {
		handler := NewExpenseHandler(&mockExpenseService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "GET", "/expenses?start_date=06-01-2026", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestExpenseHandler_CreateExpense(t *testing.T) {
	validBody := `{"budget_id":1,"budget_item_id":2,"category_id":3,"date":"2026-06-10","amount":"45.50","merchant":"Corner Deli"}`

	t.Run("returns 201 on success", func(t *testing.T) {
		var gotInput services.ExpenseInput
		expSvc := &mockExpenseService{
			createExpenseFn: func(userID uint, input services.ExpenseInput) (*models.Expense, error) {
				gotInput = input
				return &models.Expense{Base: models.Base{ID: 9}, UserID: userID, Amount: input.Amount}, nil
			},
		}
		handler := NewExpenseHandler(expSvc)
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "POST", "/expenses", validBody)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotInput.BudgetItemID != 2 || !gotInput.Amount.Equal(decimal.RequireFromString("45.50")) {
			t.Errorf("unexpected input: %+v", gotInput)
		}
		if gotInput.Merchant == nil || *gotInput.Merchant != "Corner Deli" {
			t.Error("expected merchant to be passed")
		}
	})

	t.Run("soft cap breach returns 422", func(t *testing.T) {
		expSvc := &mockExpenseService{
			createExpenseFn: func(uint, services.ExpenseInput) (*models.Expense, error) {
				return nil, apperrors.ErrBudgetLimitExceeded
			},
		}
		handler := NewExpenseHandler(expSvc)
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "POST", "/expenses", validBody)

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
		assertEnvelope(t, parseJSON(t, rec), false)
	})

	t.Run("malformed date returns 400", func(t *testing.T) {
		handler := NewExpenseHandler(&mockExpenseService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "POST", "/expenses", `{"budget_id":1,"budget_item_id":2,"category_id":3,"date":"June 10","amount":"45.50"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("missing amount fails validation", func(t *testing.T) {
		handler := NewExpenseHandler(&mockExpenseService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "POST", "/expenses", `{"budget_id":1,"budget_item_id":2,"category_id":3,"date":"2026-06-10"}`)

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}

func TestExpenseHandler_UpdateExpense(t *testing.T) {
	t.Run("item mismatch returns 404", func(t *testing.T) {
		expSvc := &mockExpenseService{
			updateExpenseFn: func(uint, uint, services.ExpenseInput) (*models.Expense, error) {
				return nil, apperrors.ErrItemBudgetMismatch
			},
		}
		handler := NewExpenseHandler(expSvc)
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "PUT", "/expenses/9", `{"budget_id":1,"budget_item_id":8,"category_id":3,"date":"2026-06-10","amount":"45.50"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestExpenseHandler_DeleteExpense(t *testing.T) {
	t.Run("unknown expense returns 404", func(t *testing.T) {
		expSvc := &mockExpenseService{
			deleteExpenseFn: func(uint, uint) error {
				return apperrors.ErrExpenseNotFound
			},
		}
		handler := NewExpenseHandler(expSvc)
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "DELETE", "/expenses/99", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
