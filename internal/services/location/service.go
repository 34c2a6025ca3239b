package location

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/jobast/bokkal/internal/domain/enums"
	"github.com/jobast/bokkal/internal/domain/gazetteer"
	"github.com/jobast/bokkal/internal/domain/model"
)

const (
	// minQueryLen is the threshold below which no suggestions are produced.
	minQueryLen = 2
	// externalQueryLen is the threshold for consulting the external geocoder.
	externalQueryLen = 3
	// localShortCircuit: with this many local matches the external call is
	// skipped entirely.
	localShortCircuit = 3
	// maxSuggestions caps each source independently.
	maxSuggestions = 5
)

// Geocoder is the external place-search provider.
type Geocoder interface {
	Search(ctx context.Context, query string) ([]model.PlaceCandidate, error)
}

// Service resolves free-text input into ranked place suggestions by blending
// the local gazetteer with an external geocoder. Local entries always come
// first and win name collisions.
type Service struct {
	geocoder Geocoder
	logger   *zap.Logger
}

func NewService(geocoder Geocoder, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		geocoder: geocoder,
		logger:   logger,
	}
}

// LocalSuggestions returns gazetteer matches only, in gazetteer order,
// capped at maxSuggestions. Queries under two characters match nothing.
func (s *Service) LocalSuggestions(query string) []model.PlaceCandidate {
	matches := gazetteer.Search(query)
	if len(matches) > maxSuggestions {
		matches = matches[:maxSuggestions]
	}

	candidates := make([]model.PlaceCandidate, 0, len(matches))
	for _, entry := range matches {
		lat, lon := entry.Lat, entry.Lon
		candidates = append(candidates, model.PlaceCandidate{
			Name:     entry.Name,
			Subtitle: string(entry.City),
			City:     entry.City,
			Lat:      &lat,
			Lon:      &lon,
			Kind:     entry.Kind,
			Origin:   enums.PlaceOriginLocal,
		})
	}

	return candidates
}

// NeedsExternal reports whether a query with the given local matches should
// consult the external geocoder.
func NeedsExternal(query string, localCount int) bool {
	trimmed := strings.TrimSpace(query)
	return len([]rune(trimmed)) >= externalQueryLen && localCount < localShortCircuit
}

// Suggest produces the full merged suggestion list for a query: local
// matches first, then deduplicated external results. An external failure
// degrades silently to local-only results.
func (s *Service) Suggest(ctx context.Context, query string) []model.PlaceCandidate {
	trimmed := strings.TrimSpace(query)
	if len([]rune(trimmed)) < minQueryLen {
		return nil
	}

	local := s.LocalSuggestions(trimmed)
	if !NeedsExternal(trimmed, len(local)) {
		return local
	}

	external := s.externalSuggestions(ctx, trimmed, local)
	return append(local, external...)
}

func (s *Service) externalSuggestions(ctx context.Context, query string, local []model.PlaceCandidate) []model.PlaceCandidate {
	if s.geocoder == nil {
		return nil
	}

	results, err := s.geocoder.Search(ctx, query)
	if err != nil {
		s.logger.Debug("external place search degraded to local-only",
			zap.String("query", query),
			zap.Error(err),
		)
		return nil
	}

	return dedupeExternal(local, results)
}

// dedupeExternal drops external candidates whose name matches a local one
// case-insensitively, preserving provider order and capping the survivors.
func dedupeExternal(local, external []model.PlaceCandidate) []model.PlaceCandidate {
	localNames := make(map[string]struct{}, len(local))
	for _, candidate := range local {
		localNames[strings.ToLower(candidate.Name)] = struct{}{}
	}

	var survivors []model.PlaceCandidate
	for _, candidate := range external {
		if _, dup := localNames[strings.ToLower(candidate.Name)]; dup {
			continue
		}
		candidate.Origin = enums.PlaceOriginExternal
		survivors = append(survivors, candidate)
		if len(survivors) == maxSuggestions {
			break
		}
	}

	return survivors
}
