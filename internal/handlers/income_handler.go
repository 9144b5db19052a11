package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "budgetwise/internal/errors"
	"budgetwise/internal/pagination"
	"budgetwise/internal/services"
)

// IncomeHandler handles income-related requests.
type IncomeHandler struct {
	incomeService services.IncomeServicer
}

// NewIncomeHandler creates a new IncomeHandler.
func NewIncomeHandler(incomeService services.IncomeServicer) *IncomeHandler {
	return &IncomeHandler{incomeService: incomeService}
}

// IncomeRequest represents the income create/update payload.
type IncomeRequest struct {
	BudgetID uint            `json:"budget_id" binding:"required"`
	Date     string          `json:"date" binding:"required"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	Source   *string         `json:"source" binding:"omitempty,max=255"`
	Note     *string         `json:"note" binding:"omitempty,max=1000"`
}

func (r *IncomeRequest) toInput() (services.IncomeInput, error) {
	date, err := parseDate(r.Date)
	if err != nil {
		return services.IncomeInput{}, err
	}
	return services.IncomeInput{
		BudgetID: r.BudgetID,
		Date:     date,
		Amount:   r.Amount,
		Source:   r.Source,
		Note:     r.Note,
	}, nil
}

// ListIncomes lists the user's incomes with filters and pagination.
// @Summary     List incomes
// @Tags        incomes
// @Produce     json
// @Security    BearerAuth
// @Param       budget_id query int false "Filter by budget"
// @Param       start_date query string false "Filter from date (YYYY-MM-DD)"
// @Param       end_date query string false "Filter to date (YYYY-MM-DD)"
// @Param       min_amount query number false "Minimum amount"
// @Param       max_amount query number false "Maximum amount"
// @Param       search query string false "Search source and note"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size (max 100)"
// @Success     200 {object} Response
// @Router      /incomes [get]
func (h *IncomeHandler) ListIncomes(c *gin.Context) {
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

	filter := services.IncomeFilter{Search: c.Query("search")}
	if filter.BudgetID, err = optionalUintQuery(c, "budget_id"); err != nil {
		respondWithError(c, err)
		return
	}
	if filter.StartDate, err = optionalDateQuery(c, "start_date"); err != nil {
		respondWithError(c, err)
		return
	}
	if filter.EndDate, err = optionalDateQuery(c, "end_date"); err != nil {
		respondWithError(c, err)
		return
	}
	if filter.MinAmount, err = optionalAmountQuery(c, "min_amount"); err != nil {
		respondWithError(c, err)
		return
	}
	if filter.MaxAmount, err = optionalAmountQuery(c, "max_amount"); err != nil {
		respondWithError(c, err)
		return
	}

	incomes, err := h.incomeService.ListIncomes(userID, filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Incomes retrieved", incomes)
}

// optionalAmountQuery parses an optional decimal query parameter.
func optionalAmountQuery(c *gin.Context, name string) (*decimal.Decimal, error) {
	value := c.Query(name)
	if value == "" {
		return nil, nil
	}
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+name)
	}
	return &amount, nil
}

// CreateIncome records an income.
// @Summary     Record an income
// @Tags        incomes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body IncomeRequest true "Income data"
// @Success     201 {object} Response{data=models.Income}
// @Router      /incomes [post]
func (h *IncomeHandler) CreateIncome(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req IncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondWithError(c, err)
		return
	}

	income, err := h.incomeService.CreateIncome(userID, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, "Income recorded", income)
}

// GetIncomeByID returns one income.
// @Summary     Get an income
// @Tags        incomes
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Income ID"
// @Success     200 {object} Response{data=models.Income}
// @Failure     404 {object} Response "Not found"
// @Router      /incomes/{id} [get]
func (h *IncomeHandler) GetIncomeByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	incomeID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	income, err := h.incomeService.GetIncomeByID(userID, incomeID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Income retrieved", income)
}

// UpdateIncome rewrites an income.
// @Summary     Update an income
// @Tags        incomes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Income ID"
// @Param       request body IncomeRequest true "Income data"
// @Success     200 {object} Response{data=models.Income}
// @Router      /incomes/{id} [put]
func (h *IncomeHandler) UpdateIncome(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	incomeID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req IncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondWithError(c, err)
		return
	}

	income, err := h.incomeService.UpdateIncome(userID, incomeID, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Income updated", income)
}

// DeleteIncome removes an income.
// @Summary     Delete an income
// @Tags        incomes
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Income ID"
// @Success     200 {object} Response
// @Failure     404 {object} Response "Not found"
// @Router      /incomes/{id} [delete]
func (h *IncomeHandler) DeleteIncome(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	incomeID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.incomeService.DeleteIncome(userID, incomeID); err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Income deleted", nil)
}
