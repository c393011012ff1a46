package mirror

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/fintrack-ai/fintrack/internal/model"
	"github.com/fintrack-ai/fintrack/internal/repository"
)

// Snapshot is one full state of a user's mirrored collections. Transactions
// are ordered by creation time, newest first. A snapshot always replaces the
// previous one wholesale; nothing is patched incrementally.
type Snapshot struct {
	Accounts     []model.Account     `json:"accounts"`
	Transactions []model.Transaction `json:"transactions"`
}

// Mirror keeps per-user snapshots of the accounts and transactions
// collections current and pushes every change to subscribers. One poll loop
// runs per user with at least one live subscription; it stops when the last
// subscriber leaves.
type Mirror struct {
	repo     repository.Repository
	interval time.Duration
	log      zerolog.Logger

	mu    sync.Mutex
	feeds map[string]*feed
}

type feed struct {
	cancel context.CancelFunc
	subs   map[*Subscription]struct{}
	last   string // fingerprint of the last published snapshot
}

// Subscription yields full-snapshot events until closed. Slow consumers only
// ever miss intermediate states, never the latest one.
type Subscription struct {
	mirror *Mirror
	userID string
	ch     chan Snapshot
	once   sync.Once
}

func New(repo repository.Repository, interval time.Duration) *Mirror {
	if interval <= 0 {
		interval = 3 * time.Second
	}
	return &Mirror{
		repo:     repo,
		interval: interval,
		log:      zerolog.New(os.Stdout).With().Timestamp().Str("component", "mirror").Logger(),
		feeds:    make(map[string]*feed),
	}
}

// Subscribe registers for snapshot events for one user, starting the poll
// loop if this is the user's first subscriber. The current snapshot is
// delivered as the first event.
func (m *Mirror) Subscribe(userID string) *Subscription {
	sub := &Subscription{
		mirror: m,
		userID: userID,
		ch:     make(chan Snapshot, 1),
	}

	m.mu.Lock()
	f, ok := m.feeds[userID]
	if !ok {
		ctx, cancel := context.WithCancel(context.Background())
		f = &feed{cancel: cancel, subs: make(map[*Subscription]struct{})}
		m.feeds[userID] = f
		go m.poll(ctx, userID)
	}
	f.subs[sub] = struct{}{}
	m.mu.Unlock()

	// Seed the subscriber with the current snapshot even when nothing
	// changed since the feed's last publication.
	if snap, err := m.fetch(context.Background(), userID); err == nil {
		m.publish(userID, snap)
		select {
		case sub.ch <- snap:
		default:
		}
	}
	return sub
}

// Events is the snapshot stream. The channel closes when the subscription is
// closed.
func (s *Subscription) Events() <-chan Snapshot {
	return s.ch
}

// Close tears the subscription down deterministically; safe to call twice.
func (s *Subscription) Close() {
	s.once.Do(func() {
		m := s.mirror
		m.mu.Lock()
		if f, ok := m.feeds[s.userID]; ok {
			delete(f.subs, s)
			if len(f.subs) == 0 {
				f.cancel()
				delete(m.feeds, s.userID)
			}
		}
		m.mu.Unlock()
		close(s.ch)
	})
}

// Refresh fetches the collections immediately and publishes the snapshot if
// it changed. Handlers call this after each mutation so subscribers are not
// left waiting for the next poll tick.
func (m *Mirror) Refresh(ctx context.Context, userID string) {
	snap, err := m.fetch(ctx, userID)
	if err != nil {
		m.log.Error().Err(err).Str("user_id", userID).Msg("mirror refresh failed")
		return
	}
	m.publish(userID, snap)
}

func (m *Mirror) poll(ctx context.Context, userID string) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Refresh(ctx, userID)
		}
	}
}

func (m *Mirror) fetch(ctx context.Context, userID string) (Snapshot, error) {
	accounts, err := m.repo.GetAccounts(ctx, userID)
	if err != nil {
		return Snapshot{}, err
	}
	// Already newest-first from the store; the mirror relies on that order.
	transactions, err := m.repo.GetTransactions(ctx, userID, model.TransactionFilter{})
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Accounts: accounts, Transactions: transactions}, nil
}

func (m *Mirror) publish(userID string, snap Snapshot) {
	print := fingerprint(snap)

	m.mu.Lock()
	defer m.mu.Unlock()

	f, ok := m.feeds[userID]
	if !ok || f.last == print {
		return
	}
	f.last = print

	for sub := range f.subs {
		// Replace a pending undelivered snapshot rather than blocking:
		// consumers only ever need the latest state.
		select {
		case sub.ch <- snap:
		default:
			select {
			case <-sub.ch:
			default:
			}
			sub.ch <- snap
		}
	}
}

func fingerprint(snap Snapshot) string {
	data, err := json.Marshal(snap)
	if err != nil {
		return ""
	}
	return string(data)
}
