package handlers

import (
	"fmt"
	"math/rand"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/fintrack-ai/fintrack/internal/auth"
	"github.com/fintrack-ai/fintrack/internal/model"
)

type accountRequest struct {
	Name     string          `json:"name" binding:"required"`
	BankName string          `json:"bank_name" binding:"required"`
	Balance  decimal.Decimal `json:"balance"`
	Color    string          `json:"color"`
}

// ListAccounts returns the caller's accounts, newest first.
func (h *Handler) ListAccounts(c *gin.Context) {
	accounts, err := h.repo.GetAccounts(c.Request.Context(), auth.UserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, accounts)
}

// CreateAccount opens a new account with the given opening balance.
func (h *Handler) CreateAccount(c *gin.Context) {
	var req accountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	account := &model.Account{
		UserID:   auth.UserID(c),
		Name:     req.Name,
		BankName: req.BankName,
		Balance:  req.Balance,
		Color:    req.Color,
	}
	if account.Color == "" {
		account.Color = fmt.Sprintf("#%06x", rand.Intn(0x1000000))
	}

	if err := h.repo.CreateAccount(c.Request.Context(), account); err != nil {
		h.respondError(c, err)
		return
	}
	h.mirror.Refresh(c.Request.Context(), account.UserID)
	c.JSON(http.StatusCreated, account)
}

// UpdateAccount edits display fields. The balance field is owned by the
// ledger and cannot be set here.
func (h *Handler) UpdateAccount(c *gin.Context) {
	var req accountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	account := &model.Account{
		ID:       c.Param("id"),
		UserID:   auth.UserID(c),
		Name:     req.Name,
		BankName: req.BankName,
		Color:    req.Color,
	}
	if err := h.repo.UpdateAccount(c.Request.Context(), account); err != nil {
		h.respondError(c, err)
		return
	}
	h.mirror.Refresh(c.Request.Context(), account.UserID)
	c.JSON(http.StatusOK, gin.H{"message": "account updated"})
}

// DeleteAccount removes an account permanently. Transactions that reference
// it are left in place; deleting one of those later skips its balance
// reversal.
func (h *Handler) DeleteAccount(c *gin.Context) {
	userID := auth.UserID(c)
	if err := h.repo.DeleteAccount(c.Request.Context(), c.Param("id"), userID); err != nil {
		h.respondError(c, err)
		return
	}
	h.mirror.Refresh(c.Request.Context(), userID)
	c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
}
