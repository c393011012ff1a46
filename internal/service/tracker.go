package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack-ai/fintrack/internal/model"
	"github.com/fintrack-ai/fintrack/internal/repository"
)

// Tracker computes the derived views: dashboard summary and the two report
// aggregations. Everything is recomputed from the owner's collections on
// every call; no view state is persisted.
type Tracker struct {
	repo repository.Repository
}

func NewTracker(repo repository.Repository) *Tracker {
	return &Tracker{repo: repo}
}

// Dashboard is the landing view: total balance across all accounts, the
// current month's income/expense totals and the five most recent records.
type Dashboard struct {
	TotalBalance decimal.Decimal     `json:"total_balance"`
	MonthIncome  decimal.Decimal     `json:"month_income"`
	MonthExpense decimal.Decimal     `json:"month_expense"`
	Accounts     []model.Account     `json:"accounts"`
	Recent       []model.Transaction `json:"recent_transactions"`
}

// CategorySlice is one wedge of the expense-by-category pie.
type CategorySlice struct {
	CategoryID string          `json:"category_id"`
	Name       string          `json:"name"`
	Color      string          `json:"color"`
	Total      decimal.Decimal `json:"total"`
}

// DayFlow is one day of the 7-day cashflow bars.
type DayFlow struct {
	Date    string          `json:"date"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// Report bundles both chart aggregations.
type Report struct {
	Categories []CategorySlice `json:"categories"`
	Cashflow   []DayFlow       `json:"cashflow"`
}

func (s *Tracker) Dashboard(ctx context.Context, userID string) (*Dashboard, error) {
	accounts, err := s.repo.GetAccounts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get accounts: %w", err)
	}
	transactions, err := s.repo.GetTransactions(ctx, userID, model.TransactionFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}

	d := &Dashboard{
		TotalBalance: decimal.Zero,
		MonthIncome:  decimal.Zero,
		MonthExpense: decimal.Zero,
		Accounts:     accounts,
	}
	// The header total is the exact sum of the mirrored account balances.
	for _, a := range accounts {
		d.TotalBalance = d.TotalBalance.Add(a.Balance)
	}

	month := time.Now().Format("2006-01")
	for _, t := range transactions {
		if !strings.HasPrefix(t.Date, month) {
			continue
		}
		if t.Type == model.TypeIncome {
			d.MonthIncome = d.MonthIncome.Add(t.Amount)
		} else {
			d.MonthExpense = d.MonthExpense.Add(t.Amount)
		}
	}

	if len(transactions) > 5 {
		transactions = transactions[:5]
	}
	d.Recent = transactions
	return d, nil
}

func (s *Tracker) Report(ctx context.Context, userID string) (*Report, error) {
	transactions, err := s.repo.GetTransactions(ctx, userID, model.TransactionFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	return &Report{
		Categories: CategoryBreakdown(transactions),
		Cashflow:   Cashflow(transactions, time.Now(), 7),
	}, nil
}

// CategoryBreakdown sums expenses per category, dropping empty categories.
// Slices come back sorted by total, largest first.
func CategoryBreakdown(transactions []model.Transaction) []CategorySlice {
	totals := make(map[string]decimal.Decimal)
	for _, t := range transactions {
		if t.Type != model.TypeExpense {
			continue
		}
		totals[t.CategoryID] = totals[t.CategoryID].Add(t.Amount)
	}

	slices := make([]CategorySlice, 0, len(totals))
	for _, cat := range model.DefaultCategories {
		total, ok := totals[cat.ID]
		if !ok || total.IsZero() {
			continue
		}
		slices = append(slices, CategorySlice{
			CategoryID: cat.ID,
			Name:       cat.Name,
			Color:      cat.Color,
			Total:      total,
		})
	}
	sort.Slice(slices, func(i, j int) bool {
		return slices[i].Total.GreaterThan(slices[j].Total)
	})
	return slices
}

// Cashflow buckets income and expense by calendar day for the trailing
// window ending at "now", oldest day first.
func Cashflow(transactions []model.Transaction, now time.Time, days int) []DayFlow {
	flow := make([]DayFlow, days)
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		date := now.AddDate(0, 0, i-days+1).Format("2006-01-02")
		flow[i] = DayFlow{Date: date, Income: decimal.Zero, Expense: decimal.Zero}
		index[date] = i
	}

	for _, t := range transactions {
		i, ok := index[t.Date]
		if !ok {
			continue
		}
		if t.Type == model.TypeIncome {
			flow[i].Income = flow[i].Income.Add(t.Amount)
		} else {
			flow[i].Expense = flow[i].Expense.Add(t.Amount)
		}
	}
	return flow
}
