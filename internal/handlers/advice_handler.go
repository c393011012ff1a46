package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fintrack-ai/fintrack/internal/auth"
	"github.com/fintrack-ai/fintrack/internal/model"
)

// Advice asks the model for a financial summary of the 10 most recent
// transactions plus the total balance. With zero transactions there is
// nothing to analyze and the request is rejected, matching the disabled
// control in the UI.
func (h *Handler) Advice(c *gin.Context) {
	ctx := c.Request.Context()
	userID := auth.UserID(c)

	transactions, err := h.repo.GetTransactions(ctx, userID, model.TransactionFilter{Limit: 10})
	if err != nil {
		h.respondError(c, err)
		return
	}
	if len(transactions) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "advice requires at least one transaction"})
		return
	}

	accounts, err := h.repo.GetAccounts(ctx, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	// Advise never fails; degraded outcomes come back as fixed strings.
	c.JSON(http.StatusOK, gin.H{"advice": h.advisor.Advise(ctx, accounts, transactions)})
}
