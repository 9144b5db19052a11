package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "budgetwise/internal/errors"
	"budgetwise/internal/models"
	"budgetwise/internal/services"
)

// --- mock budget item service ---

type mockBudgetItemService struct {
	createBudgetItemFn func(userID, budgetID, categoryID uint, plannedAmount decimal.Decimal, notes *string) (*models.BudgetItem, error)
	updateBudgetItemFn func(userID, itemID, categoryID uint, plannedAmount decimal.Decimal, notes *string) (*models.BudgetItem, error)
	deleteBudgetItemFn func(userID, itemID uint) error
}

func (m *mockBudgetItemService) CreateBudgetItem(userID, budgetID, categoryID uint, plannedAmount decimal.Decimal, notes *string) (*models.BudgetItem, error) {
	if m.createBudgetItemFn != nil {
		return m.createBudgetItemFn(userID, budgetID, categoryID, plannedAmount, notes)
	}
	return &models.BudgetItem{Base: models.Base{ID: 1}, BudgetID: budgetID, CategoryID: categoryID, PlannedAmount: plannedAmount}, nil
}

func (m *mockBudgetItemService) UpdateBudgetItem(userID, itemID, categoryID uint, plannedAmount decimal.Decimal, notes *string) (*models.BudgetItem, error) {
	if m.updateBudgetItemFn != nil {
		return m.updateBudgetItemFn(userID, itemID, categoryID, plannedAmount, notes)
	}
	return &models.BudgetItem{Base: models.Base{ID: itemID}, CategoryID: categoryID, PlannedAmount: plannedAmount}, nil
}

func (m *mockBudgetItemService) DeleteBudgetItem(userID, itemID uint) error {
	if m.deleteBudgetItemFn != nil {
		return m.deleteBudgetItemFn(userID, itemID)
	}
	return nil
}

var _ services.BudgetItemServicer = (*mockBudgetItemService)(nil)

func setupBudgetItemRouter(handler *BudgetItemHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(1))
	auth.POST("/budgets/:id/items", handler.CreateBudgetItem)
	auth.PATCH("/budget-items/:id", handler.UpdateBudgetItem)
	auth.DELETE("/budget-items/:id", handler.DeleteBudgetItem)
	return r
}

func TestBudgetItemHandler_CreateBudgetItem(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		var gotBudgetID uint
		itemSvc := &mockBudgetItemService{
			createBudgetItemFn: func(_, budgetID, categoryID uint, plannedAmount decimal.Decimal, _ *string) (*models.BudgetItem, error) {
				gotBudgetID = budgetID
				return &models.BudgetItem{Base: models.Base{ID: 7}, BudgetID: budgetID, CategoryID: categoryID, PlannedAmount: plannedAmount}, nil
			},
		}
		handler := NewBudgetItemHandler(itemSvc)
		r := setupBudgetItemRouter(handler)

		rec := doRequest(r, "POST", "/budgets/4/items", `{"category_id":2,"planned_amount":"300.00"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotBudgetID != 4 {
			t.Errorf("expected budget ID 4 from path, got %d", gotBudgetID)
		}
	})

	t.Run("missing planned amount fails validation", func(t *testing.T) {
		handler := NewBudgetItemHandler(&mockBudgetItemService{})
		r := setupBudgetItemRouter(handler)

		rec := doRequest(r, "POST", "/budgets/4/items", `{"category_id":2}`)

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("duplicate category returns 409", func(t *testing.T) {
		itemSvc := &mockBudgetItemService{
			createBudgetItemFn: func(uint, uint, uint, decimal.Decimal, *string) (*models.BudgetItem, error) {
				return nil, apperrors.ErrDuplicateBudgetItem
			},
		}
		handler := NewBudgetItemHandler(itemSvc)
		r := setupBudgetItemRouter(handler)

		rec := doRequest(r, "POST", "/budgets/4/items", `{"category_id":2,"planned_amount":"300.00"}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})
}

func TestBudgetItemHandler_UpdateBudgetItem(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		handler := NewBudgetItemHandler(&mockBudgetItemService{})
		r := setupBudgetItemRouter(handler)

		rec := doRequest(r, "PATCH", "/budget-items/7", `{"category_id":3,"planned_amount":"450.00"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		assertEnvelope(t, parseJSON(t, rec), true)
	})

	t.Run("unknown item returns 404", func(t *testing.T) {
		itemSvc := &mockBudgetItemService{
			updateBudgetItemFn: func(uint, uint, uint, decimal.Decimal, *string) (*models.BudgetItem, error) {
				return nil, apperrors.ErrBudgetItemNotFound
			},
		}
		handler := NewBudgetItemHandler(itemSvc)
		r := setupBudgetItemRouter(handler)

		rec := doRequest(r, "PATCH", "/budget-items/99", `{"category_id":3,"planned_amount":"450.00"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestBudgetItemHandler_DeleteBudgetItem(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		var deletedID uint
		itemSvc := &mockBudgetItemService{
			deleteBudgetItemFn: func(_, itemID uint) error {
				deletedID = itemID
				return nil
			},
		}
		handler := NewBudgetItemHandler(itemSvc)
		r := setupBudgetItemRouter(handler)

		rec := doRequest(r, "DELETE", "/budget-items/7", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if deletedID != 7 {
			t.Errorf("expected item 7 deleted, got %d", deletedID)
		}
	})

	t.Run("invalid id returns 400", func(t *testing.T) {
		handler := NewBudgetItemHandler(&mockBudgetItemService{})
		r := setupBudgetItemRouter(handler)

		rec := doRequest(r, "DELETE", "/budget-items/abc", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
