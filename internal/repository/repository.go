package repository

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/fintrack-ai/fintrack/internal/model"
)

var (
	// ErrNotFound is returned when a record does not exist or belongs to a
	// different user.
	ErrNotFound = errors.New("record not found")
	// ErrReadOnly is returned by every mutation in demo/offline mode.
	ErrReadOnly = errors.New("demo mode is read-only")
)

// Repository is the store boundary. All queries are scoped to a single owner.
//
// PostTransaction and ReverseTransaction are the atomic batch-commit
// primitives: each one writes a transaction record and the owning account's
// balance together, all-or-nothing. The delta is applied relative to the
// stored balance at commit time, never to a value the caller read earlier.
type Repository interface {
	GetAccounts(ctx context.Context, userID string) ([]model.Account, error)
	GetAccount(ctx context.Context, id, userID string) (*model.Account, error)
	CreateAccount(ctx context.Context, account *model.Account) error
	UpdateAccount(ctx context.Context, account *model.Account) error
	DeleteAccount(ctx context.Context, id, userID string) error

	GetTransactions(ctx context.Context, userID string, filter model.TransactionFilter) ([]model.Transaction, error)
	GetTransaction(ctx context.Context, id, userID string) (*model.Transaction, error)

	// PostTransaction inserts tx and applies delta to its account's balance.
	// Fails with ErrNotFound when the account does not exist; on any failure
	// neither write survives.
	PostTransaction(ctx context.Context, tx *model.Transaction, delta decimal.Decimal) error

	// ReverseTransaction deletes tx and applies the reversing delta to its
	// account's balance. A missing account skips the balance adjustment but
	// the delete still commits (orphan cleanup, logged by the caller's store).
	ReverseTransaction(ctx context.Context, tx *model.Transaction, delta decimal.Decimal) error
}
