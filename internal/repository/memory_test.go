package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fintrack-ai/fintrack/internal/model"
)

func TestDemoRepositoryDataset(t *testing.T) {
	repo := NewDemoRepository()
	ctx := context.Background()

	accounts, err := repo.GetAccounts(ctx, DemoUserID)
	if err != nil {
		t.Fatalf("get accounts: %v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("got %d accounts, want 2", len(accounts))
	}

	byName := make(map[string]model.Account)
	for _, a := range accounts {
		byName[a.Name] = a
	}
	if got := byName["Demo Cash"].Balance; !got.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("Demo Cash balance = %s, want 5000", got)
	}
	if got := byName["Demo Bank"].Balance; !got.Equal(decimal.NewFromInt(120000)) {
		t.Errorf("Demo Bank balance = %s, want 120000", got)
	}

	transactions, err := repo.GetTransactions(ctx, DemoUserID, model.TransactionFilter{})
	if err != nil {
		t.Fatalf("get transactions: %v", err)
	}
	if len(transactions) != 2 {
		t.Fatalf("got %d transactions, want 2", len(transactions))
	}
	// Newest first: the sample expense was seeded after the salary.
	if transactions[0].Type != model.TypeExpense {
		t.Errorf("first transaction type = %s, want expense", transactions[0].Type)
	}
}

func TestDemoRepositoryRejectsMutations(t *testing.T) {
	repo := NewDemoRepository()
	ctx := context.Background()

	account := &model.Account{UserID: DemoUserID, Name: "New", BankName: "Bank"}
	if err := repo.CreateAccount(ctx, account); !errors.Is(err, ErrReadOnly) {
		t.Errorf("CreateAccount err = %v, want ErrReadOnly", err)
	}
	if err := repo.UpdateAccount(ctx, &model.Account{ID: "m1", UserID: DemoUserID}); !errors.Is(err, ErrReadOnly) {
		t.Errorf("UpdateAccount err = %v, want ErrReadOnly", err)
	}
	if err := repo.DeleteAccount(ctx, "m1", DemoUserID); !errors.Is(err, ErrReadOnly) {
		t.Errorf("DeleteAccount err = %v, want ErrReadOnly", err)
	}

	tx := &model.Transaction{ID: "tx", UserID: DemoUserID, AccountID: "m1", Amount: decimal.NewFromInt(1), Type: model.TypeExpense}
	if err := repo.PostTransaction(ctx, tx, decimal.NewFromInt(-1)); !errors.Is(err, ErrReadOnly) {
		t.Errorf("PostTransaction err = %v, want ErrReadOnly", err)
	}
	if err := repo.ReverseTransaction(ctx, tx, decimal.NewFromInt(1)); !errors.Is(err, ErrReadOnly) {
		t.Errorf("ReverseTransaction err = %v, want ErrReadOnly", err)
	}

	// A fresh demo store always starts from the same dataset.
	again, err := NewDemoRepository().GetAccount(ctx, "m1", DemoUserID)
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if !again.Balance.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("reloaded balance = %s, want 5000", again.Balance)
	}
}

func TestMemoryOwnerScoping(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	mine := &model.Account{UserID: "u1", Name: "Mine", BankName: "Bank"}
	theirs := &model.Account{UserID: "u2", Name: "Theirs", BankName: "Bank"}
	if err := repo.CreateAccount(ctx, mine); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.CreateAccount(ctx, theirs); err != nil {
		t.Fatalf("create: %v", err)
	}

	accounts, err := repo.GetAccounts(ctx, "u1")
	if err != nil {
		t.Fatalf("get accounts: %v", err)
	}
	if len(accounts) != 1 || accounts[0].Name != "Mine" {
		t.Errorf("accounts = %+v, want only Mine", accounts)
	}

	if _, err := repo.GetAccount(ctx, theirs.ID, "u1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("cross-user read err = %v, want ErrNotFound", err)
	}
	if err := repo.DeleteAccount(ctx, theirs.ID, "u1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("cross-user delete err = %v, want ErrNotFound", err)
	}
}

func TestMemoryTransactionFilter(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	account := &model.Account{UserID: "u1", Name: "A", BankName: "B", Balance: decimal.NewFromInt(1000)}
	if err := repo.CreateAccount(ctx, account); err != nil {
		t.Fatalf("create account: %v", err)
	}

	seed := []struct {
		id     string
		txType model.TransactionType
		date   string
	}{
		{"a", model.TypeExpense, "2025-08-01"},
		{"b", model.TypeIncome, "2025-08-15"},
		{"c", model.TypeExpense, "2025-08-20"},
		{"d", model.TypeExpense, "2025-09-01"},
	}
	for _, s := range seed {
		tx := &model.Transaction{
			ID: s.id, UserID: "u1", AccountID: account.ID,
			Amount: decimal.NewFromInt(10), Type: s.txType,
			CategoryID: "cat-1", Date: s.date,
		}
		if err := repo.PostTransaction(ctx, tx, tx.Delta()); err != nil {
			t.Fatalf("post %s: %v", s.id, err)
		}
	}

	got, err := repo.GetTransactions(ctx, "u1", model.TransactionFilter{
		From: "2025-08-10", To: "2025-08-31", Type: model.TypeExpense,
	})
	if err != nil {
		t.Fatalf("get transactions: %v", err)
	}
	if len(got) != 1 || got[0].ID != "c" {
		t.Errorf("filtered = %+v, want only c", got)
	}

	limited, err := repo.GetTransactions(ctx, "u1", model.TransactionFilter{Limit: 2})
	if err != nil {
		t.Fatalf("get transactions: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("limited len = %d, want 2", len(limited))
	}
}

func TestMemoryPostAndReverse(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	account := &model.Account{UserID: "u1", Name: "A", BankName: "B", Balance: decimal.NewFromInt(100)}
	if err := repo.CreateAccount(ctx, account); err != nil {
		t.Fatalf("create account: %v", err)
	}

	tx := &model.Transaction{
		ID: "tx1", UserID: "u1", AccountID: account.ID,
		Amount: decimal.NewFromInt(40), Type: model.TypeExpense,
		CategoryID: "cat-1", Date: "2025-08-30",
	}
	if err := repo.PostTransaction(ctx, tx, tx.Delta()); err != nil {
		t.Fatalf("post: %v", err)
	}
	updated, err := repo.GetAccount(ctx, account.ID, "u1")
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if !updated.Balance.Equal(decimal.NewFromInt(60)) {
		t.Errorf("balance = %s, want 60", updated.Balance)
	}

	if err := repo.ReverseTransaction(ctx, tx, tx.Delta().Neg()); err != nil {
		t.Fatalf("reverse: %v", err)
	}
	restored, err := repo.GetAccount(ctx, account.ID, "u1")
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if !restored.Balance.Equal(decimal.NewFromInt(100)) {
		t.Errorf("balance = %s, want 100", restored.Balance)
	}
	if _, err := repo.GetTransaction(ctx, "tx1", "u1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("transaction still present, err = %v", err)
	}
}
