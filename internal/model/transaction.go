package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType is either "income" or "expense".
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Valid reports whether t is one of the two known types.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction is a single income or expense record. Amount is always
// positive; the type determines the sign applied to the account balance.
// Transactions are immutable once created; the only mutation path is delete.
type Transaction struct {
	ID         string          `json:"id,omitempty"`
	UserID     string          `json:"user_id"`
	AccountID  string          `json:"account_id"`
	Amount     decimal.Decimal `json:"amount"`
	Type       TransactionType `json:"type"`
	CategoryID string          `json:"category_id"`
	Note       string          `json:"note"`
	Date       string          `json:"date"` // calendar day, YYYY-MM-DD
	CreatedAt  time.Time       `json:"created_at,omitempty"`
}

// GenerateID assigns a new UUID if the transaction has none yet.
func (t *Transaction) GenerateID() {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
}

// Delta is the signed balance change this transaction applies to its
// account: +Amount for income, -Amount for expense.
func (t *Transaction) Delta() decimal.Decimal {
	if t.Type == TypeIncome {
		return t.Amount
	}
	return t.Amount.Neg()
}

// TransactionFilter narrows transaction queries. Date bounds are inclusive
// calendar days in YYYY-MM-DD form; zero values mean unbounded.
type TransactionFilter struct {
	From  string
	To    string
	Type  TransactionType
	Limit int
}
