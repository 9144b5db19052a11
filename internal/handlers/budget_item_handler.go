package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"budgetwise/internal/services"
)

// BudgetItemHandler handles budget item requests.
type BudgetItemHandler struct {
	itemService services.BudgetItemServicer
}

// NewBudgetItemHandler creates a new BudgetItemHandler.
func NewBudgetItemHandler(itemService services.BudgetItemServicer) *BudgetItemHandler {
	return &BudgetItemHandler{itemService: itemService}
}

// BudgetItemRequest represents the budget item create/update payload.
type BudgetItemRequest struct {
	CategoryID    uint            `json:"category_id" binding:"required"`
	PlannedAmount decimal.Decimal `json:"planned_amount" binding:"required"`
	Notes         *string         `json:"notes" binding:"omitempty,max=1000"`
}

// CreateBudgetItem allocates a planned amount to a category in a budget.
// @Summary     Add an item to a budget
// @Tags        budget-items
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Budget ID"
// @Param       request body BudgetItemRequest true "Item data"
// @Success     201 {object} Response{data=models.BudgetItem}
// @Failure     409 {object} Response "Category already budgeted"
// @Router      /budgets/{id}/items [post]
func (h *BudgetItemHandler) CreateBudgetItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req BudgetItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	item, err := h.itemService.CreateBudgetItem(userID, budgetID, req.CategoryID, req.PlannedAmount, req.Notes)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, "Budget item created", item)
}

// UpdateBudgetItem updates an item's category, planned amount, or notes.
// @Summary     Update a budget item
// @Tags        budget-items
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Budget item ID"
// @Param       request body BudgetItemRequest true "Item data"
// @Success     200 {object} Response{data=models.BudgetItem}
// @Failure     409 {object} Response "Category already budgeted"
// @Router      /budget-items/{id} [patch]
func (h *BudgetItemHandler) UpdateBudgetItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	itemID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req BudgetItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	item, err := h.itemService.UpdateBudgetItem(userID, itemID, req.CategoryID, req.PlannedAmount, req.Notes)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Budget item updated", item)
}

// DeleteBudgetItem removes an item and its expenses.
// @Summary     Delete a budget item
// @Tags        budget-items
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Budget item ID"
// @Success     200 {object} Response
// @Failure     404 {object} Response "Not found"
// @Router      /budget-items/{id} [delete]
func (h *BudgetItemHandler) DeleteBudgetItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	itemID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.itemService.DeleteBudgetItem(userID, itemID); err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Budget item deleted", nil)
}
