package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "budgetwise/internal/errors"
	"budgetwise/internal/services"
)

// BudgetHandler handles budget-related requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// BudgetRequest represents the budget create/update payload. Month must be
// the first day of a month.
type BudgetRequest struct {
	Month string  `json:"month" binding:"required,budget_month"`
	Notes *string `json:"notes" binding:"omitempty,max=1000"`
}

// GetBudgets lists the user's budgets. With ?month=YYYY-MM it instead
// returns that month's budget detail, creating an empty budget first when
// none exists.
// @Summary     List budgets or fetch one month
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       month query string false "Month to fetch or create (YYYY-MM)"
// @Success     200 {object} Response
// @Failure     400 {object} Response "Malformed month"
// @Router      /budgets [get]
func (h *BudgetHandler) GetBudgets(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if raw := c.Query("month"); raw != "" {
		month, err := time.Parse("2006-01", raw)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid month: "+raw))
			return
		}

		budget, err := h.budgetService.GetOrCreateBudgetForMonth(userID, month)
		if err != nil {
			respondWithError(c, err)
			return
		}
		detail, err := h.budgetService.GetBudgetDetail(userID, budget.ID)
		if err != nil {
			respondWithError(c, err)
			return
		}
		respondSuccess(c, http.StatusOK, "Budget retrieved", detail)
		return
	}

	list, err := h.budgetService.GetUserBudgets(userID, time.Now().UTC())
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Budgets retrieved", list)
}

// CreateBudget creates a budget for a month.
// @Summary     Create a budget
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body BudgetRequest true "Budget data"
// @Success     201 {object} Response{data=models.Budget}
// @Failure     409 {object} Response "Budget already exists for this month"
// @Router      /budgets [post]
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req BudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	month, err := parseDate(req.Month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.CreateBudget(userID, month, req.Notes)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, "Budget created", budget)
}

// GetBudgetByID returns a budget with its computed health and summary.
// @Summary     Get a budget with health detail
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Budget ID"
// @Success     200 {object} Response{data=services.BudgetDetail}
// @Failure     404 {object} Response "Not found"
// @Router      /budgets/{id} [get]
func (h *BudgetHandler) GetBudgetByID(c *gin.Context) {
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

	detail, err := h.budgetService.GetBudgetDetail(userID, budgetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Budget retrieved", detail)
}

// UpdateBudget updates a budget's month or notes.
// @Summary     Update a budget
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Budget ID"
// @Param       request body BudgetRequest true "Budget data"
// @Success     200 {object} Response{data=models.Budget}
// @Failure     409 {object} Response "Month taken by another budget"
// @Router      /budgets/{id} [put]
func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
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

	var req BudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	month, err := parseDate(req.Month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.UpdateBudget(userID, budgetID, month, req.Notes)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Budget updated", budget)
}

// DeleteBudget deletes a budget and its items, expenses, and incomes.
// @Summary     Delete a budget
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Budget ID"
// @Success     200 {object} Response
// @Failure     404 {object} Response "Not found"
// @Router      /budgets/{id} [delete]
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
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

	if err := h.budgetService.DeleteBudget(userID, budgetID); err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Budget deleted", nil)
}
