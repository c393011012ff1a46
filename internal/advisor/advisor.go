package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"google.golang.org/api/option"

	"github.com/fintrack-ai/fintrack/internal/model"
)

// Fixed fallback strings. Advice never surfaces an error to the caller.
const (
	MsgUnavailable = "AI advice is currently unavailable. Make sure an API key is configured."
	MsgFailed      = "Something went wrong while fetching AI advice. Please try again later."
	MsgEmpty       = "The AI produced no advice this time. Please try again later."
)

// recentLimit bounds the transaction summary sent to the model.
const recentLimit = 10

// Advisor turns the 10 most recent transactions plus the total balance into
// a natural-language summary via Gemini. Failures collapse into fixed
// fallback strings; nothing from the response is persisted.
type Advisor struct {
	gen generator
	log zerolog.Logger
}

type generator interface {
	generate(ctx context.Context, prompt string) (string, error)
}

// New builds an Advisor. With an empty API key it stays in the degraded mode
// where every request answers with MsgUnavailable.
func New(ctx context.Context, apiKey string) (*Advisor, error) {
	a := &Advisor{
		log: zerolog.New(os.Stdout).With().Timestamp().Str("component", "advisor").Logger(),
	}
	if apiKey == "" {
		return a, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("unable to create Gemini client: %w", err)
	}
	a.gen = &geminiGenerator{model: client.GenerativeModel("gemini-1.5-flash")}
	return a, nil
}

// Available reports whether a text-generation credential is configured.
func (a *Advisor) Available() bool {
	return a.gen != nil
}

// Advise produces advice text for the given financial state. It always
// returns a usable string.
func (a *Advisor) Advise(ctx context.Context, accounts []model.Account, transactions []model.Transaction) string {
	if a.gen == nil {
		return MsgUnavailable
	}

	prompt := buildPrompt(accounts, transactions)
	text, err := a.gen.generate(ctx, prompt)
	if err != nil {
		a.log.Error().Err(err).Msg("advice generation failed")
		return MsgFailed
	}
	if text == "" {
		return MsgEmpty
	}
	return text
}

type transactionSummary struct {
	Type     model.TransactionType `json:"type"`
	Amount   decimal.Decimal       `json:"amount"`
	Category string                `json:"category"`
	Note     string                `json:"note"`
	Date     string                `json:"date"`
}

func buildPrompt(accounts []model.Account, transactions []model.Transaction) string {
	totalBalance := decimal.Zero
	for _, acc := range accounts {
		totalBalance = totalBalance.Add(acc.Balance)
	}

	if len(transactions) > recentLimit {
		transactions = transactions[:recentLimit]
	}
	recent := make([]transactionSummary, 0, len(transactions))
	for _, t := range transactions {
		category := "unknown"
		if cat := model.CategoryByID(t.CategoryID); cat != nil {
			category = cat.Name
		}
		recent = append(recent, transactionSummary{
			Type:     t.Type,
			Amount:   t.Amount,
			Category: category,
			Note:     t.Note,
			Date:     t.Date,
		})
	}
	summary, _ := json.MarshalIndent(recent, "", "  ")

	return fmt.Sprintf(
		"As a professional financial adviser, analyze this user's finances and give 3 concrete suggestions.\n"+
			"Total balance across accounts: $%s\n"+
			"The %d most recent transactions:\n%s\n\n"+
			"Reply in a professional but friendly tone. Include observations about spending and advice for the future.",
		totalBalance.String(), len(recent), summary)
}

type geminiGenerator struct {
	model *genai.GenerativeModel
}

func (g *geminiGenerator) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	var text string
	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if t, ok := part.(genai.Text); ok {
				text += string(t)
			}
		}
	}
	return text, nil
}
