package location

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jobast/bokkal/internal/domain/model"
)

// DefaultDebounce is the quiet period after the last keystroke before the
// external geocoder is consulted.
const DefaultDebounce = 400 * time.Millisecond

// Session tracks one interactive location field. Every input change bumps a
// generation; local suggestions are delivered immediately and the external
// lookup fires only after the debounce window elapses with no further edits.
// A response whose generation is no longer current is discarded, so a slow
// response to an old query can never overwrite a newer query's results.
type Session struct {
	service  *Service
	debounce time.Duration
	ctx      context.Context

	mu         sync.Mutex
	generation uint64
	query      string
	local      []model.PlaceCandidate
	timer      *time.Timer
	cancel     context.CancelFunc

	// deliver serializes onResults invocations. The generation is re-checked
	// while it is held, so a delivery that passed its check can never land
	// after a newer query's delivery.
	deliver sync.Mutex

	onResults func(suggestions []model.PlaceCandidate, searching bool)
}

// NewSession creates a session delivering suggestion updates through
// onResults. The searching flag is true while an external lookup is pending.
// ctx bounds every external call the session makes.
func NewSession(ctx context.Context, service *Service, debounce time.Duration, onResults func([]model.PlaceCandidate, bool)) *Session {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if onResults == nil {
		onResults = func([]model.PlaceCandidate, bool) {}
	}

	return &Session{
		service:   service,
		debounce:  debounce,
		ctx:       ctx,
		onResults: onResults,
	}
}

// Update feeds the current input value. Unchanged input is a no-op; any
// change cancels the pending debounce timer and in-flight request before the
// new query is considered.
func (s *Session) Update(query string) {
	s.mu.Lock()

	trimmed := strings.TrimSpace(query)
	if trimmed == s.query {
		s.mu.Unlock()
		return
	}

	s.query = trimmed
	s.generation++
	generation := s.generation
	s.cancelPendingLocked()

	if len([]rune(trimmed)) < minQueryLen {
		s.local = nil
		s.mu.Unlock()
		s.deliverIfCurrent(generation, nil, false)
		return
	}

	local := s.service.LocalSuggestions(trimmed)
	s.local = local

	searching := NeedsExternal(trimmed, len(local))
	if searching {
		s.timer = time.AfterFunc(s.debounce, func() {
			s.fireExternal(generation, trimmed, local)
		})
	}
	s.mu.Unlock()

	s.deliverIfCurrent(generation, local, searching)
}

// Select is terminal: it cancels any pending lookup and returns the
// definitive selection for the candidate.
func (s *Session) Select(candidate model.PlaceCandidate) model.PlaceSelection {
	s.mu.Lock()
	s.cancelPendingLocked()
	s.query = candidate.Name
	s.generation++
	s.mu.Unlock()

	return candidate.Selection()
}

// Close cancels any pending work.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelPendingLocked()
}

func (s *Session) fireExternal(generation uint64, query string, local []model.PlaceCandidate) {
	s.mu.Lock()
	if generation != s.generation {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(s.ctx)
	s.cancel = cancel
	s.mu.Unlock()

	external := s.service.externalSuggestions(ctx, query, local)
	cancel()

	s.mu.Lock()
	// A newer Update replaces s.cancel with its own flight's; only clear it
	// while it is still ours.
	if generation == s.generation {
		s.cancel = nil
	}
	s.mu.Unlock()

	merged := append(append([]model.PlaceCandidate(nil), local...), external...)
	s.deliverIfCurrent(generation, merged, false)
}

// deliverIfCurrent invokes onResults only while the generation is still the
// latest one. Holding deliver across the check and the callback keeps
// deliveries ordered: once a newer query's results go out, a superseded
// in-flight response can no longer follow them.
func (s *Session) deliverIfCurrent(generation uint64, suggestions []model.PlaceCandidate, searching bool) {
	s.deliver.Lock()
	defer s.deliver.Unlock()

	s.mu.Lock()
	current := generation == s.generation
	s.mu.Unlock()
	if !current {
		return
	}

	s.onResults(suggestions, searching)
}

// cancelPendingLocked stops the debounce timer and aborts the in-flight
// external request, if any. Callers must hold s.mu.
func (s *Session) cancelPendingLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
