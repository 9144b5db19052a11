package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "budgetwise/internal/errors"
	"budgetwise/internal/services"
)

// ReportHandler handles the read-only report endpoints.
type ReportHandler struct {
	reportService services.ReportServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Dashboard returns the home-screen aggregate.
// @Summary     Dashboard aggregate
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} Response{data=services.DashboardReport}
// @Router      /reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.reportService.Dashboard(userID, time.Now().UTC())
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Dashboard retrieved", report)
}

// CurrentMonthBudgetStats returns plan-versus-actual and velocity for the
// running month.
// @Summary     Current month budget statistics
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} Response{data=services.CurrentMonthStats}
// @Router      /reports/current-month-budget-stats [get]
func (h *ReportHandler) CurrentMonthBudgetStats(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	stats, err := h.reportService.CurrentMonthBudgetStats(userID, time.Now().UTC())
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Current month stats retrieved", stats)
}

// MonthlySummary returns one calendar month's totals and breakdowns.
// @Summary     Monthly summary
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       year query int true "Year"
// @Param       month query int true "Month (1-12)"
// @Success     200 {object} Response{data=services.MonthlySummaryReport}
// @Failure     400 {object} Response "Invalid year or month"
// @Router      /reports/monthly-summary [get]
func (h *ReportHandler) MonthlySummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid year"))
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid month"))
		return
	}

	summary, err := h.reportService.MonthlySummary(userID, year, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Monthly summary retrieved", summary)
}

// BudgetVsActual compares a budget's plan to actual spending.
// @Summary     Budget versus actual
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       budget_id query int true "Budget ID"
// @Success     200 {object} Response{data=services.BudgetVsActualReport}
// @Failure     404 {object} Response "Budget not found"
// @Router      /reports/budget-vs-actual [get]
func (h *ReportHandler) BudgetVsActual(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgetID, err := optionalUintQuery(c, "budget_id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	if budgetID == nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "budget_id is required"))
		return
	}

	report, err := h.reportService.BudgetVsActual(userID, *budgetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Budget vs actual retrieved", report)
}

// SpendingTrends returns the monthly spending series for a lookback window.
// @Summary     Spending trends
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       period query string false "6months, 1year, or 2years (default 6months)"
// @Param       category_id query int false "Narrow to one category"
// @Success     200 {object} Response{data=services.SpendingTrendsReport}
// @Router      /reports/spending-trends [get]
func (h *ReportHandler) SpendingTrends(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	period := c.DefaultQuery("period", "6months")
	switch period {
	case "6months", "1year", "2years":
	default:
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid period: "+period))
		return
	}

	categoryID, err := optionalUintQuery(c, "category_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.reportService.SpendingTrends(userID, period, categoryID, time.Now().UTC())
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Spending trends retrieved", report)
}
