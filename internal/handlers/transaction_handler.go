package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/fintrack-ai/fintrack/internal/auth"
	"github.com/fintrack-ai/fintrack/internal/ledger"
	"github.com/fintrack-ai/fintrack/internal/model"
)

type transactionRequest struct {
	AccountID  string          `json:"account_id" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Type       string          `json:"type" binding:"required"`
	CategoryID string          `json:"category_id" binding:"required"`
	Note       string          `json:"note"`
	Date       string          `json:"date" binding:"required"`
}

// ListTransactions returns the caller's transactions, newest first.
// Supports from/to/type/limit query filters.
func (h *Handler) ListTransactions(c *gin.Context) {
	filter := model.TransactionFilter{
		From: c.Query("from"),
		To:   c.Query("to"),
		Type: model.TransactionType(c.Query("type")),
	}
	if v := c.Query("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		filter.Limit = limit
	}

	transactions, err := h.repo.GetTransactions(c.Request.Context(), auth.UserID(c), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, transactions)
}

// CreateTransaction posts a new income or expense through the ledger: the
// record and the account balance change commit together or not at all.
func (h *Handler) CreateTransaction(c *gin.Context) {
	var req transactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	userID := auth.UserID(c)
	tx, err := h.ledger.Create(c.Request.Context(), userID, req.AccountID,
		req.Amount, model.TransactionType(req.Type), req.CategoryID, req.Note, req.Date)
	if err != nil {
		if isValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.respondError(c, err)
		return
	}
	h.mirror.Refresh(c.Request.Context(), userID)
	c.JSON(http.StatusCreated, tx)
}

// DeleteTransaction removes a record and rolls its balance delta back.
func (h *Handler) DeleteTransaction(c *gin.Context) {
	userID := auth.UserID(c)
	if err := h.ledger.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	h.mirror.Refresh(c.Request.Context(), userID)
	c.JSON(http.StatusOK, gin.H{"message": "transaction deleted"})
}

// ListCategories returns the static category set.
func (h *Handler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, model.DefaultCategories)
}

func isValidationError(err error) bool {
	return errors.Is(err, ledger.ErrInvalidAmount) ||
		errors.Is(err, ledger.ErrInvalidType) ||
		errors.Is(err, ledger.ErrInvalidDate)
}
