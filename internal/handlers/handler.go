package handlers

import (
	"errors"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/fintrack-ai/fintrack/internal/advisor"
	"github.com/fintrack-ai/fintrack/internal/auth"
	"github.com/fintrack-ai/fintrack/internal/charts"
	"github.com/fintrack-ai/fintrack/internal/config"
	"github.com/fintrack-ai/fintrack/internal/ledger"
	"github.com/fintrack-ai/fintrack/internal/mirror"
	"github.com/fintrack-ai/fintrack/internal/repository"
	"github.com/fintrack-ai/fintrack/internal/service"
)

// demoAlert is the user-facing message for any mutation attempted in
// demo/offline mode.
const demoAlert = "Demo mode: changes are not saved. Configure store credentials to enable cloud sync."

// Handler carries every dependency the HTTP layer needs. It is built once in
// main and passed around explicitly; there are no package-level singletons.
type Handler struct {
	cfg     *config.Config
	repo    repository.Repository
	ledger  *ledger.Ledger
	tracker *service.Tracker
	advisor *advisor.Advisor
	mirror  *mirror.Mirror
	auth    *auth.Service // nil in demo mode
	charts  *charts.ChartGenerator
	log     zerolog.Logger
}

func New(cfg *config.Config, repo repository.Repository, l *ledger.Ledger, tracker *service.Tracker, adv *advisor.Advisor, m *mirror.Mirror, authSvc *auth.Service) *Handler {
	return &Handler{
		cfg:     cfg,
		repo:    repo,
		ledger:  l,
		tracker: tracker,
		advisor: adv,
		mirror:  m,
		auth:    authSvc,
		charts:  charts.NewChartGenerator(),
		log:     zerolog.New(os.Stdout).With().Timestamp().Str("component", "http").Logger(),
	}
}

// respondError maps store errors onto HTTP responses. Detail beyond the
// generic messages stays in the log.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrReadOnly):
		c.JSON(http.StatusForbidden, gin.H{"error": demoAlert})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed"})
	}
}
