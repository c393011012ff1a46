package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack-ai/fintrack/internal/model"
)

// DemoUserID is the fixed identity assumed in demo/offline mode.
const DemoUserID = "demo-user"

// MemoryRepository is an in-memory Repository. In read-only form it backs
// demo/offline mode with a fixed dataset that never survives a restart; the
// writable form exists for tests.
type MemoryRepository struct {
	mu           sync.Mutex
	readOnly     bool
	accounts     map[string]model.Account
	transactions map[string]model.Transaction
}

// NewMemoryRepository returns an empty, writable in-memory store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		accounts:     make(map[string]model.Account),
		transactions: make(map[string]model.Transaction),
	}
}

// NewDemoRepository returns the read-only demo dataset: two accounts and two
// transactions. Every mutation fails with ErrReadOnly.
func NewDemoRepository() *MemoryRepository {
	r := NewMemoryRepository()
	now := time.Now()
	today := now.Format("2006-01-02")

	r.accounts["m1"] = model.Account{
		ID: "m1", UserID: DemoUserID, Name: "Demo Cash", BankName: "My Wallet",
		Balance: decimal.NewFromInt(5000), Color: "#6366f1", CreatedAt: now,
	}
	r.accounts["m2"] = model.Account{
		ID: "m2", UserID: DemoUserID, Name: "Demo Bank", BankName: "First National",
		Balance: decimal.NewFromInt(120000), Color: "#10b981", CreatedAt: now,
	}
	r.transactions["t1"] = model.Transaction{
		ID: "t1", UserID: DemoUserID, AccountID: "m1",
		Amount: decimal.NewFromInt(150), Type: model.TypeExpense,
		CategoryID: "cat-1", Note: "Sample: lunch", Date: today, CreatedAt: now,
	}
	r.transactions["t2"] = model.Transaction{
		ID: "t2", UserID: DemoUserID, AccountID: "m2",
		Amount: decimal.NewFromInt(35000), Type: model.TypeIncome,
		CategoryID: "cat-3", Note: "Sample: monthly salary", Date: today,
		CreatedAt: now.Add(-time.Second),
	}
	r.readOnly = true
	return r
}

func (r *MemoryRepository) GetAccounts(ctx context.Context, userID string) ([]model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var accounts []model.Account
	for _, a := range r.accounts {
		if a.UserID == userID {
			accounts = append(accounts, a)
		}
	}
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].CreatedAt.After(accounts[j].CreatedAt)
	})
	return accounts, nil
}

func (r *MemoryRepository) GetAccount(ctx context.Context, id, userID string) (*model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[id]
	if !ok || a.UserID != userID {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (r *MemoryRepository) CreateAccount(ctx context.Context, account *model.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.readOnly {
		return ErrReadOnly
	}
	account.GenerateID()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now()
	}
	r.accounts[account.ID] = *account
	return nil
}

func (r *MemoryRepository) UpdateAccount(ctx context.Context, account *model.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.readOnly {
		return ErrReadOnly
	}
	existing, ok := r.accounts[account.ID]
	if !ok || existing.UserID != account.UserID {
		return ErrNotFound
	}
	existing.Name = account.Name
	existing.BankName = account.BankName
	existing.Color = account.Color
	r.accounts[account.ID] = existing
	return nil
}

func (r *MemoryRepository) DeleteAccount(ctx context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.readOnly {
		return ErrReadOnly
	}
	a, ok := r.accounts[id]
	if !ok || a.UserID != userID {
		return ErrNotFound
	}
	delete(r.accounts, id)
	return nil
}

func (r *MemoryRepository) GetTransactions(ctx context.Context, userID string, filter model.TransactionFilter) ([]model.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var transactions []model.Transaction
	for _, t := range r.transactions {
		if t.UserID != userID {
			continue
		}
		if filter.From != "" && t.Date < filter.From {
			continue
		}
		if filter.To != "" && t.Date > filter.To {
			continue
		}
		if filter.Type != "" && t.Type != filter.Type {
			continue
		}
		transactions = append(transactions, t)
	}
	sort.Slice(transactions, func(i, j int) bool {
		return transactions[i].CreatedAt.After(transactions[j].CreatedAt)
	})
	if filter.Limit > 0 && len(transactions) > filter.Limit {
		transactions = transactions[:filter.Limit]
	}
	return transactions, nil
}

func (r *MemoryRepository) GetTransaction(ctx context.Context, id, userID string) (*model.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.transactions[id]
	if !ok || t.UserID != userID {
		return nil, ErrNotFound
	}
	return &t, nil
}

func (r *MemoryRepository) PostTransaction(ctx context.Context, tx *model.Transaction, delta decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.readOnly {
		return ErrReadOnly
	}
	account, ok := r.accounts[tx.AccountID]
	if !ok || account.UserID != tx.UserID {
		return ErrNotFound
	}

	// Both writes happen under the same lock: no reader observes one
	// without the other.
	r.transactions[tx.ID] = *tx
	account.Balance = account.Balance.Add(delta)
	r.accounts[tx.AccountID] = account
	return nil
}

func (r *MemoryRepository) ReverseTransaction(ctx context.Context, tx *model.Transaction, delta decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.readOnly {
		return ErrReadOnly
	}
	if _, ok := r.transactions[tx.ID]; !ok {
		return ErrNotFound
	}
	delete(r.transactions, tx.ID)

	// Account already gone: keep the delete, skip the reversal.
	if account, ok := r.accounts[tx.AccountID]; ok && account.UserID == tx.UserID {
		account.Balance = account.Balance.Add(delta)
		r.accounts[tx.AccountID] = account
	}
	return nil
}

var _ Repository = (*MemoryRepository)(nil)
