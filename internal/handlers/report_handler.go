package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fintrack-ai/fintrack/internal/auth"
)

// Dashboard returns the landing-view summary: total balance, current-month
// income/expense and the five most recent transactions.
func (h *Handler) Dashboard(c *gin.Context) {
	dashboard, err := h.tracker.Dashboard(c.Request.Context(), auth.UserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// Report returns both chart aggregations as JSON.
func (h *Handler) Report(c *gin.Context) {
	report, err := h.tracker.Report(c.Request.Context(), auth.UserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// CategoryChart renders the expense-by-category pie as PNG. 204 when there
// is no expense data yet.
func (h *Handler) CategoryChart(c *gin.Context) {
	report, err := h.tracker.Report(c.Request.Context(), auth.UserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	png, err := h.charts.CategoryPie(report.Categories)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if png == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// CashflowChart renders the 7-day income/expense series as PNG.
func (h *Handler) CashflowChart(c *gin.Context) {
	report, err := h.tracker.Report(c.Request.Context(), auth.UserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	png, err := h.charts.Cashflow(report.Cashflow)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if png == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// Status feeds the persistent mode banner: demo flag and advice
// availability.
func (h *Handler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"demo":             !h.cfg.StoreConfigured(),
		"advice_available": h.advisor.Available(),
	})
}
