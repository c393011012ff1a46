package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fintrack-ai/fintrack/internal/model"
)

type fakeGenerator struct {
	reply  string
	err    error
	prompt string
}

func (g *fakeGenerator) generate(ctx context.Context, prompt string) (string, error) {
	g.prompt = prompt
	return g.reply, g.err
}

func TestAdviseWithoutCredential(t *testing.T) {
	a, err := New(context.Background(), "")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if a.Available() {
		t.Error("advisor reports available without an API key")
	}
	if got := a.Advise(context.Background(), nil, nil); got != MsgUnavailable {
		t.Errorf("advice = %q, want MsgUnavailable", got)
	}
}

func TestAdviseFallbacks(t *testing.T) {
	tests := []struct {
		name string
		gen  *fakeGenerator
		want string
	}{
		{"generation error", &fakeGenerator{err: errors.New("quota exceeded")}, MsgFailed},
		{"empty reply", &fakeGenerator{reply: ""}, MsgEmpty},
		{"normal reply", &fakeGenerator{reply: "Spend less on dining."}, "Spend less on dining."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Advisor{gen: tt.gen}
			if got := a.Advise(context.Background(), nil, nil); got != tt.want {
				t.Errorf("advice = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPromptContents(t *testing.T) {
	accounts := []model.Account{
		{Balance: decimal.NewFromInt(5000)},
		{Balance: decimal.NewFromInt(120000)},
	}
	transactions := []model.Transaction{
		{Type: model.TypeExpense, Amount: decimal.NewFromInt(150), CategoryID: "cat-1", Note: "lunch", Date: "2025-08-30"},
	}

	gen := &fakeGenerator{reply: "ok"}
	a := &Advisor{gen: gen}
	a.Advise(context.Background(), accounts, transactions)

	for _, want := range []string{"$125000", "Dining", "lunch", "2025-08-30"} {
		if !strings.Contains(gen.prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, gen.prompt)
		}
	}
}

func TestPromptBoundedToTenTransactions(t *testing.T) {
	var transactions []model.Transaction
	for i := 0; i < 15; i++ {
		transactions = append(transactions, model.Transaction{
			Type: model.TypeExpense, Amount: decimal.NewFromInt(1),
			CategoryID: "cat-1", Note: fmt.Sprintf("note-%d", i), Date: "2025-08-30",
		})
	}

	gen := &fakeGenerator{reply: "ok"}
	a := &Advisor{gen: gen}
	a.Advise(context.Background(), nil, transactions)

	if !strings.Contains(gen.prompt, "note-9") {
		t.Error("prompt missing the tenth transaction")
	}
	if strings.Contains(gen.prompt, "note-10") {
		t.Error("prompt includes more than ten transactions")
	}
}

func TestPromptUnknownCategory(t *testing.T) {
	gen := &fakeGenerator{reply: "ok"}
	a := &Advisor{gen: gen}
	a.Advise(context.Background(), nil, []model.Transaction{
		{Type: model.TypeExpense, Amount: decimal.NewFromInt(5), CategoryID: "missing", Date: "2025-08-30"},
	})

	if !strings.Contains(gen.prompt, "unknown") {
		t.Errorf("prompt should label unknown categories:\n%s", gen.prompt)
	}
}
