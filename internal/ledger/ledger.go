package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack-ai/fintrack/internal/model"
	"github.com/fintrack-ai/fintrack/internal/repository"
)

var (
	// ErrInvalidAmount rejects zero and negative amounts.
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrInvalidType rejects anything but income/expense.
	ErrInvalidType = errors.New("type must be income or expense")
	// ErrInvalidDate rejects dates not in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("date must be YYYY-MM-DD")
)

// Ledger enforces balance-consistent transaction writes: every create or
// delete of a transaction adjusts the owning account's balance in the same
// atomic store commit. Nothing here retries; a failed commit leaves no trace
// and the caller decides whether to try again.
type Ledger struct {
	repo repository.Repository
}

func NewLedger(repo repository.Repository) *Ledger {
	return &Ledger{repo: repo}
}

// Create validates the input, builds the transaction record and posts it
// together with its balance delta (+amount for income, -amount for expense).
func (l *Ledger) Create(ctx context.Context, userID, accountID string, amount decimal.Decimal, txType model.TransactionType, categoryID, note, date string) (*model.Transaction, error) {
	if amount.Cmp(decimal.Zero) <= 0 {
		return nil, ErrInvalidAmount
	}
	if !txType.Valid() {
		return nil, ErrInvalidType
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, ErrInvalidDate
	}

	tx := &model.Transaction{
		UserID:     userID,
		AccountID:  accountID,
		Amount:     amount,
		Type:       txType,
		CategoryID: categoryID,
		Note:       note,
		Date:       date,
		CreatedAt:  time.Now(),
	}
	tx.GenerateID()

	if err := l.repo.PostTransaction(ctx, tx, tx.Delta()); err != nil {
		return nil, fmt.Errorf("failed to post transaction: %w", err)
	}
	return tx, nil
}

// Delete removes a transaction and applies the exact reversing delta to the
// owning account. If the account has since been deleted the record is still
// removed and only the balance adjustment is skipped.
func (l *Ledger) Delete(ctx context.Context, userID, transactionID string) error {
	tx, err := l.repo.GetTransaction(ctx, transactionID, userID)
	if err != nil {
		return err
	}

	if err := l.repo.ReverseTransaction(ctx, tx, tx.Delta().Neg()); err != nil {
		return fmt.Errorf("failed to reverse transaction: %w", err)
	}
	return nil
}
