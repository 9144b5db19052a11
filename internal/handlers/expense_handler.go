package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"budgetwise/internal/pagination"
	"budgetwise/internal/services"
)

// ExpenseHandler handles expense-related requests.
type ExpenseHandler struct {
	expenseService services.ExpenseServicer
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseService services.ExpenseServicer) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// ExpenseRequest represents the expense create/update payload.
type ExpenseRequest struct {
	BudgetID     uint            `json:"budget_id" binding:"required"`
	BudgetItemID uint            `json:"budget_item_id" binding:"required"`
	CategoryID   uint            `json:"category_id" binding:"required"`
	Date         string          `json:"date" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	Merchant     *string         `json:"merchant" binding:"omitempty,max=255"`
	Note         *string         `json:"note" binding:"omitempty,max=1000"`
}

func (r *ExpenseRequest) toInput() (services.ExpenseInput, error) {
	date, err := parseDate(r.Date)
	if err != nil {
		return services.ExpenseInput{}, err
	}
	return services.ExpenseInput{
		BudgetID:     r.BudgetID,
		BudgetItemID: r.BudgetItemID,
		CategoryID:   r.CategoryID,
		Date:         date,
		Amount:       r.Amount,
		Merchant:     r.Merchant,
		Note:         r.Note,
	}, nil
}

// ListExpenses lists the user's expenses with filters and pagination.
// @Summary     List expenses
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       start_date query string false "Filter from date (YYYY-MM-DD)"
// @Param       end_date query string false "Filter to date (YYYY-MM-DD)"
// @Param       category_id query int false "Filter by category"
// @Param       budget_id query int false "Filter by budget"
// @Param       search query string false "Search merchant and note"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size (max 100)"
// @Success     200 {object} Response
// @Router      /expenses [get]
func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	filter := services.ExpenseFilter{Search: c.Query("search")}
	if filter.StartDate, err = optionalDateQuery(c, "start_date"); err != nil {
		respondWithError(c, err)
		return
	}
	if filter.EndDate, err = optionalDateQuery(c, "end_date"); err != nil {
		respondWithError(c, err)
		return
	}
	if filter.CategoryID, err = optionalUintQuery(c, "category_id"); err != nil {
		respondWithError(c, err)
		return
	}
	if filter.BudgetID, err = optionalUintQuery(c, "budget_id"); err != nil {
		respondWithError(c, err)
		return
	}

	expenses, err := h.expenseService.ListExpenses(userID, filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Expenses retrieved", expenses)
}

// CreateExpense records an expense.
// @Summary     Record an expense
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ExpenseRequest true "Expense data"
// @Success     201 {object} Response{data=models.Expense}
// @Failure     422 {object} Response "Exceeds the item's planned amount"
// @Router      /expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.CreateExpense(userID, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, "Expense recorded", expense)
}

// GetExpenseByID returns one expense.
// @Summary     Get an expense
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Expense ID"
// @Success     200 {object} Response{data=models.Expense}
// @Failure     404 {object} Response "Not found"
// @Router      /expenses/{id} [get]
func (h *ExpenseHandler) GetExpenseByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.GetExpenseByID(userID, expenseID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Expense retrieved", expense)
}

// UpdateExpense rewrites an expense.
// @Summary     Update an expense
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Expense ID"
// @Param       request body ExpenseRequest true "Expense data"
// @Success     200 {object} Response{data=models.Expense}
// @Failure     422 {object} Response "Exceeds the item's planned amount"
// @Router      /expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.UpdateExpense(userID, expenseID, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Expense updated", expense)
}

// DeleteExpense removes an expense.
// @Summary     Delete an expense
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Expense ID"
// @Success     200 {object} Response
// @Failure     404 {object} Response "Not found"
// @Router      /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.expenseService.DeleteExpense(userID, expenseID); err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Expense deleted", nil)
}
