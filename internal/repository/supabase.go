package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/supabase-community/supabase-go"

	"github.com/fintrack-ai/fintrack/internal/model"
)

// SupabaseRepository backs the app with a Supabase project. Owner-scoped
// reads and single-record account writes go through PostgREST; the two
// ledger primitives need a multi-record atomic commit, which PostgREST
// cannot express, so they run as SQL transactions on a direct connection
// to the same database.
type SupabaseRepository struct {
	client *supabase.Client
	db     *sql.DB
	log    zerolog.Logger
}

func NewSupabaseRepository(url, key, databaseURL string) (*SupabaseRepository, error) {
	client, err := supabase.NewClient(url, key, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}

	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SupabaseRepository{
		client: client,
		db:     db,
		log:    zerolog.New(os.Stdout).With().Timestamp().Str("component", "repository").Logger(),
	}, nil
}

// Close releases the direct database connection.
func (r *SupabaseRepository) Close() error {
	return r.db.Close()
}

func (r *SupabaseRepository) GetAccounts(ctx context.Context, userID string) ([]model.Account, error) {
	data, _, err := r.client.From("accounts").
		Select("*", "", false).
		Eq("user_id", userID).
		Order("created_at.desc", nil).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get accounts: %w", err)
	}

	var accounts []model.Account
	if err := json.Unmarshal(data, &accounts); err != nil {
		return nil, fmt.Errorf("failed to parse accounts: %w", err)
	}
	return accounts, nil
}

func (r *SupabaseRepository) GetAccount(ctx context.Context, id, userID string) (*model.Account, error) {
	data, _, err := r.client.From("accounts").
		Select("*", "", false).
		Eq("id", id).
		Eq("user_id", userID).
		Limit(1, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	var accounts []model.Account
	if err := json.Unmarshal(data, &accounts); err != nil {
		return nil, fmt.Errorf("failed to parse account: %w", err)
	}
	if len(accounts) == 0 {
		return nil, ErrNotFound
	}
	return &accounts[0], nil
}

func (r *SupabaseRepository) CreateAccount(ctx context.Context, account *model.Account) error {
	account.GenerateID()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now()
	}
	data, _, err := r.client.From("accounts").Insert(account, false, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	var created []model.Account
	if err := json.Unmarshal(data, &created); err != nil {
		return fmt.Errorf("failed to parse created account: %w", err)
	}
	if len(created) > 0 {
		account.CreatedAt = created[0].CreatedAt
	}
	return nil
}

// UpdateAccount edits display fields only. Balance changes go through the
// ledger primitives exclusively.
func (r *SupabaseRepository) UpdateAccount(ctx context.Context, account *model.Account) error {
	patch := map[string]any{
		"name":      account.Name,
		"bank_name": account.BankName,
		"color":     account.Color,
	}
	_, _, err := r.client.From("accounts").
		Update(patch, "", "").
		Eq("id", account.ID).
		Eq("user_id", account.UserID).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	return nil
}

func (r *SupabaseRepository) DeleteAccount(ctx context.Context, id, userID string) error {
	_, _, err := r.client.From("accounts").
		Delete("", "").
		Eq("id", id).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return nil
}

func (r *SupabaseRepository) GetTransactions(ctx context.Context, userID string, filter model.TransactionFilter) ([]model.Transaction, error) {
	query := r.client.From("transactions").
		Select("*", "", false).
		Eq("user_id", userID)

	if filter.From != "" {
		query = query.Gte("date", filter.From)
	}
	if filter.To != "" {
		query = query.Lte("date", filter.To)
	}
	if filter.Type != "" {
		query = query.Eq("type", string(filter.Type))
	}

	// Newest first, matching the mirrored collection order.
	query = query.Order("created_at.desc", nil)

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit, "")
	}

	data, _, err := query.Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}

	var transactions []model.Transaction
	if err := json.Unmarshal(data, &transactions); err != nil {
		return nil, fmt.Errorf("failed to parse transactions: %w", err)
	}
	return transactions, nil
}

func (r *SupabaseRepository) GetTransaction(ctx context.Context, id, userID string) (*model.Transaction, error) {
	data, _, err := r.client.From("transactions").
		Select("*", "", false).
		Eq("id", id).
		Eq("user_id", userID).
		Limit(1, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	var transactions []model.Transaction
	if err := json.Unmarshal(data, &transactions); err != nil {
		return nil, fmt.Errorf("failed to parse transaction: %w", err)
	}
	if len(transactions) == 0 {
		return nil, ErrNotFound
	}
	return &transactions[0], nil
}

// PostTransaction inserts the transaction and adjusts the account balance in
// one database transaction. The delta is applied relative to the stored
// balance, so concurrent sessions cannot lose each other's writes.
func (r *SupabaseRepository) PostTransaction(ctx context.Context, tx *model.Transaction, delta decimal.Decimal) (err error) {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			dbTx.Rollback()
		}
	}()

	const insert = `INSERT INTO transactions (id, user_id, account_id, amount, type, category_id, note, date, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = dbTx.ExecContext(ctx, insert,
		tx.ID, tx.UserID, tx.AccountID, tx.Amount, string(tx.Type),
		tx.CategoryID, tx.Note, tx.Date, tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	const update = `UPDATE accounts SET balance = balance + $1 WHERE id = $2 AND user_id = $3`
	res, err := dbTx.ExecContext(ctx, update, delta, tx.AccountID, tx.UserID)
	if err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		err = ErrNotFound
		return err
	}

	if err = dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ReverseTransaction deletes the transaction and rolls the balance back in
// one database transaction. If the account row is already gone the delete
// still commits; only the balance adjustment is skipped.
func (r *SupabaseRepository) ReverseTransaction(ctx context.Context, tx *model.Transaction, delta decimal.Decimal) (err error) {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			dbTx.Rollback()
		}
	}()

	const del = `DELETE FROM transactions WHERE id = $1 AND user_id = $2`
	res, err := dbTx.ExecContext(ctx, del, tx.ID, tx.UserID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		err = ErrNotFound
		return err
	}

	const update = `UPDATE accounts SET balance = balance + $1 WHERE id = $2 AND user_id = $3`
	res, err = dbTx.ExecContext(ctx, update, delta, tx.AccountID, tx.UserID)
	if err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
	}
	if affected, err = res.RowsAffected(); err != nil {
		return err
	}
	if affected == 0 {
		// The account was deleted out from under this transaction. Keep the
		// delete, skip the reversal.
		r.log.Warn().
			Str("transaction_id", tx.ID).
			Str("account_id", tx.AccountID).
			Str("delta", delta.String()).
			Msg("balance reversal skipped, account no longer exists")
	}

	if err = dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

var _ Repository = (*SupabaseRepository)(nil)
