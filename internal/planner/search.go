package planner

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/dhruvjain/wayfarer/internal/core/domain"
)

const defaultSearchDebounce = 300 * time.Millisecond

// SearchFunc resolves a query to candidate locations.
type SearchFunc func(ctx context.Context, query string) ([]domain.Location, error)

// Searcher debounces free-text input so only the last keystroke in a
// burst issues a request. Responses from superseded queries are
// discarded: only results matching the latest input are delivered.
type Searcher struct {
	search    SearchFunc
	onResults func(query string, locs []domain.Location)
	delay     time.Duration
	log       *slog.Logger

	mu    sync.Mutex
	gen   uint64
	timer *time.Timer
}

// NewSearcher creates a searcher delivering results through onResults.
// A non-positive delay uses the default debounce. logger may be nil.
func NewSearcher(search SearchFunc, onResults func(string, []domain.Location), delay time.Duration, logger *slog.Logger) *Searcher {
	if delay <= 0 {
		delay = defaultSearchDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Searcher{search: search, onResults: onResults, delay: delay, log: logger}
}

// Input feeds one keystroke's worth of query text. An empty query clears
// results immediately without a request; anything else restarts the
// debounce timer.
func (s *Searcher) Input(ctx context.Context, query string) {
	query = strings.TrimSpace(query)

	s.mu.Lock()
	s.gen++
	gen := s.gen
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if query == "" {
		s.mu.Unlock()
		s.onResults("", nil)
		return
	}
	s.timer = time.AfterFunc(s.delay, func() { s.run(ctx, gen, query) })
	s.mu.Unlock()
}

// Close cancels any pending request.
func (s *Searcher) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Searcher) run(ctx context.Context, gen uint64, query string) {
	locs, err := s.search(ctx, query)

	s.mu.Lock()
	stale := gen != s.gen
	s.mu.Unlock()
	if stale {
		return
	}
	if err != nil {
		s.log.Warn("search failed", "query", query, "error", err)
		return
	}
	s.onResults(query, locs)
}
