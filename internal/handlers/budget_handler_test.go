package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "budgetwise/internal/errors"
	"budgetwise/internal/models"
	"budgetwise/internal/services"
)

// --- mock budget service ---

type mockBudgetService struct {
	createBudgetFn              func(userID uint, month time.Time, notes *string) (*models.Budget, error)
	getUserBudgetsFn            func(userID uint, now time.Time) (*services.BudgetList, error)
	getOrCreateBudgetForMonthFn func(userID uint, month time.Time) (*models.Budget, error)
	getBudgetByIDFn             func(userID, budgetID uint) (*models.Budget, error)
	getBudgetDetailFn           func(userID, budgetID uint) (*services.BudgetDetail, error)
	updateBudgetFn              func(userID, budgetID uint, month time.Time, notes *string) (*models.Budget, error)
	deleteBudgetFn              func(userID, budgetID uint) error
}

func (m *mockBudgetService) CreateBudget(userID uint, month time.Time, notes *string) (*models.Budget, error) {
	if m.createBudgetFn != nil {
		return m.createBudgetFn(userID, month, notes)
	}
	return &models.Budget{Base: models.Base{ID: 1}, UserID: userID, Month: month}, nil
}

func (m *mockBudgetService) GetUserBudgets(userID uint, now time.Time) (*services.BudgetList, error) {
	if m.getUserBudgetsFn != nil {
		return m.getUserBudgetsFn(userID, now)
	}
	return &services.BudgetList{Budgets: []models.Budget{}}, nil
}

func (m *mockBudgetService) GetOrCreateBudgetForMonth(userID uint, month time.Time) (*models.Budget, error) {
	if m.getOrCreateBudgetForMonthFn != nil {
		return m.getOrCreateBudgetForMonthFn(userID, month)
	}
	return &models.Budget{Base: models.Base{ID: 1}, UserID: userID, Month: models.NormalizeMonth(month)}, nil
}

func (m *mockBudgetService) GetBudgetByID(userID, budgetID uint) (*models.Budget, error) {
	if m.getBudgetByIDFn != nil {
		return m.getBudgetByIDFn(userID, budgetID)
	}
	return &models.Budget{Base: models.Base{ID: budgetID}, UserID: userID}, nil
}

func (m *mockBudgetService) GetBudgetDetail(userID, budgetID uint) (*services.BudgetDetail, error) {
	if m.getBudgetDetailFn != nil {
		return m.getBudgetDetailFn(userID, budgetID)
	}
	return &services.BudgetDetail{
		Budget: &models.Budget{Base: models.Base{ID: budgetID}, UserID: userID},
	}, nil
}

func (m *mockBudgetService) UpdateBudget(userID, budgetID uint, month time.Time, notes *string) (*models.Budget, error) {
	if m.updateBudgetFn != nil {
		return m.updateBudgetFn(userID, budgetID, month, notes)
	}
	return &models.Budget{Base: models.Base{ID: budgetID}, UserID: userID, Month: month}, nil
}

func (m *mockBudgetService) DeleteBudget(userID, budgetID uint) error {
	if m.deleteBudgetFn != nil {
		return m.deleteBudgetFn(userID, budgetID)
	}
	return nil
}

var _ services.BudgetServicer = (*mockBudgetService)(nil)

func setupBudgetRouter(handler *BudgetHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(1))
	auth.GET("/budgets", handler.GetBudgets)
	auth.POST("/budgets", handler.CreateBudget)
	auth.GET("/budgets/:id", handler.GetBudgetByID)
	auth.PUT("/budgets/:id", handler.UpdateBudget)
	auth.DELETE("/budgets/:id", handler.DeleteBudget)
	return r
}

func TestBudgetHandler_GetBudgets(t *testing.T) {
	t.Run("month query auto-creates and returns detail", func(t *testing.T) {
		created := false
		budgetSvc := &mockBudgetService{
			getOrCreateBudgetForMonthFn: func(userID uint, month time.Time) (*models.Budget, error) {
				created = true
				want := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
				if !models.NormalizeMonth(month).Equal(want) {
					t.Errorf("expected month %v, got %v", want, month)
				}
				return &models.Budget{Base: models.Base{ID: 5}, UserID: userID}, nil
			},
		}
		handler := NewBudgetHandler(budgetSvc)
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "GET", "/budgets?month=2026-03", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if !created {
			t.Error("expected get-or-create to run")
		}
	})

	t.Run("malformed month returns 400", func(t *testing.T) {
		handler := NewBudgetHandler(&mockBudgetService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "GET", "/budgets?month=March-2026", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertEnvelope(t, parseJSON(t, rec), false)
	})

	t.Run("without month returns the list", func(t *testing.T) {
		budgetSvc := &mockBudgetService{
			getUserBudgetsFn: func(userID uint, _ time.Time) (*services.BudgetList, error) {
				return &services.BudgetList{
					Budgets: []models.Budget{{Base: models.Base{ID: 1}, UserID: userID}},
					Summary: services.BudgetListSummary{TotalBudgets: 1},
				}, nil
			},
		}
		handler := NewBudgetHandler(budgetSvc)
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "GET", "/budgets", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		data := dataField(t, parseJSON(t, rec))
		summary, ok := data["summary"].(map[string]interface{})
		if !ok || summary["total_budgets"] != float64(1) {
			t.Errorf("expected summary with total_budgets 1, got %v", data["summary"])
		}
	})
}

func TestBudgetHandler_CreateBudget(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		handler := NewBudgetHandler(&mockBudgetService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "POST", "/budgets", `{"month":"2026-03-01"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("mid-month date fails validation", func(t *testing.T) {
		handler := NewBudgetHandler(&mockBudgetService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "POST", "/budgets", `{"month":"2026-03-15"}`)

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 409 on duplicate month", func(t *testing.T) {
		budgetSvc := &mockBudgetService{
			createBudgetFn: func(uint, time.Time, *string) (*models.Budget, error) {
				return nil, apperrors.ErrBudgetMonthExists
			},
		}
		handler := NewBudgetHandler(budgetSvc)
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "POST", "/budgets", `{"month":"2026-03-01"}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})
}

func TestBudgetHandler_GetBudgetByID(t *testing.T) {
	t.Run("returns 404 for missing budget", func(t *testing.T) {
		budgetSvc := &mockBudgetService{
			getBudgetDetailFn: func(uint, uint) (*services.BudgetDetail, error) {
				return nil, apperrors.ErrBudgetNotFound
			},
		}
		handler := NewBudgetHandler(budgetSvc)
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "GET", "/budgets/42", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("returns 403 for foreign budget", func(t *testing.T) {
		budgetSvc := &mockBudgetService{
			getBudgetDetailFn: func(uint, uint) (*services.BudgetDetail, error) {
				return nil, apperrors.ErrForbidden
			},
		}
		handler := NewBudgetHandler(budgetSvc)
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "GET", "/budgets/42", "")

		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})

	t.Run("invalid id returns 400", func(t *testing.T) {
		handler := NewBudgetHandler(&mockBudgetService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "GET", "/budgets/abc", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestBudgetHandler_DeleteBudget(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		deleted := false
		budgetSvc := &mockBudgetService{
			deleteBudgetFn: func(userID, budgetID uint) error {
				deleted = true
				if budgetID != 7 {
					t.Errorf("expected budget 7, got %d", budgetID)
				}
				return nil
			},
		}
		handler := NewBudgetHandler(budgetSvc)
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "DELETE", "/budgets/7", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !deleted {
			t.Error("expected delete to run")
		}
	})
}
