package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account is a bank account owned by a single user. Balance is a stored
// running total maintained by the ledger, not recomputed from history.
type Account struct {
	ID        string          `json:"id,omitempty"`
	UserID    string          `json:"user_id"`
	Name      string          `json:"name"`
	BankName  string          `json:"bank_name"`
	Balance   decimal.Decimal `json:"balance"`
	Color     string          `json:"color"`
	CreatedAt time.Time       `json:"created_at,omitempty"`
}

// GenerateID assigns a new UUID if the account has none yet.
func (a *Account) GenerateID() {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
}
