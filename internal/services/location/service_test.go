package location

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/jobast/bokkal/internal/domain/enums"
	"github.com/jobast/bokkal/internal/domain/model"
)

type fakeGeocoder struct {
	mu      sync.Mutex
	results map[string][]model.PlaceCandidate
	err     error
	calls   []string
}

func newFakeGeocoder() *fakeGeocoder {
	return &fakeGeocoder{results: make(map[string][]model.PlaceCandidate)}
}

func (g *fakeGeocoder) Search(_ context.Context, query string) ([]model.PlaceCandidate, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, query)
	if g.err != nil {
		return nil, g.err
	}
	return g.results[query], nil
}

func (g *fakeGeocoder) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

func externalCandidate(name string) model.PlaceCandidate {
	return model.PlaceCandidate{Name: name, Origin: enums.PlaceOriginExternal}
}

func TestSuggestShortQueriesYieldNothing(t *testing.T) {
	geocoder := newFakeGeocoder()
	service := NewService(geocoder, nil)

	for _, query := range []string{"", "   ", "l", " p "} {
		if got := service.Suggest(context.Background(), query); got != nil {
			t.Fatalf("expected no suggestions for %q, got %d", query, len(got))
		}
	}
	if geocoder.callCount() != 0 {
		t.Fatalf("expected no external calls, got %d", geocoder.callCount())
	}
}

func TestSuggestLocalShortCircuitSkipsExternal(t *testing.T) {
	geocoder := newFakeGeocoder()
	service := NewService(geocoder, nil)

	suggestions := service.Suggest(context.Background(), "plage")
	if len(suggestions) < 3 {
		t.Fatalf("expected at least 3 local matches for plage, got %d", len(suggestions))
	}
	if len(suggestions) > 5 {
		t.Fatalf("local suggestions not capped at 5: %d", len(suggestions))
	}
	for _, suggestion := range suggestions {
		if suggestion.Origin != enums.PlaceOriginLocal {
			t.Fatalf("unexpected origin for %s: %s", suggestion.Name, suggestion.Origin)
		}
	}
	if geocoder.callCount() != 0 {
		t.Fatalf("external call issued despite local short-circuit: %d", geocoder.callCount())
	}
}

func TestSuggestMergesLocalFirstThenExternal(t *testing.T) {
	geocoder := newFakeGeocoder()
	lat, lon := 14.45, -17.02
	geocoder.results["lama"] = []model.PlaceCandidate{
		{Name: "Lamantin Beach Resort", City: enums.CitySaly, Lat: &lat, Lon: &lon},
	}
	service := NewService(geocoder, nil)

	suggestions := service.Suggest(context.Background(), "lama")
	if len(suggestions) != 2 {
		t.Fatalf("unexpected suggestion count: got %d want 2", len(suggestions))
	}
	if suggestions[0].Name != "Hôtel Lamantin Beach" || suggestions[0].Origin != enums.PlaceOriginLocal {
		t.Fatalf("local result must come first, got %s (%s)", suggestions[0].Name, suggestions[0].Origin)
	}
	if suggestions[1].Name != "Lamantin Beach Resort" || suggestions[1].Origin != enums.PlaceOriginExternal {
		t.Fatalf("external result must come second, got %s (%s)", suggestions[1].Name, suggestions[1].Origin)
	}
}

func TestSuggestDropsExternalDuplicatesCaseInsensitively(t *testing.T) {
	geocoder := newFakeGeocoder()
	geocoder.results["lama"] = []model.PlaceCandidate{
		externalCandidate("hôtel lamantin beach"),
		externalCandidate("Lamantin Beach Resort"),
	}
	service := NewService(geocoder, nil)

	suggestions := service.Suggest(context.Background(), "lama")
	if len(suggestions) != 2 {
		t.Fatalf("unexpected suggestion count: got %d want 2", len(suggestions))
	}
	for _, suggestion := range suggestions {
		if suggestion.Origin == enums.PlaceOriginExternal && suggestion.Name != "Lamantin Beach Resort" {
			t.Fatalf("duplicate external suggestion survived: %s", suggestion.Name)
		}
	}
}

func TestSuggestCapsExternalResults(t *testing.T) {
	geocoder := newFakeGeocoder()
	var many []model.PlaceCandidate
	for i := 0; i < 8; i++ {
		many = append(many, externalCandidate(fmt.Sprintf("Résidence %d", i)))
	}
	geocoder.results["rés"] = many
	service := NewService(geocoder, nil)

	suggestions := service.Suggest(context.Background(), "rés")
	var external int
	for _, suggestion := range suggestions {
		if suggestion.Origin == enums.PlaceOriginExternal {
			external++
		}
	}
	if external != 5 {
		t.Fatalf("external suggestions not capped at 5: %d", external)
	}
}

func TestSuggestDegradesSilentlyOnExternalFailure(t *testing.T) {
	geocoder := newFakeGeocoder()
	geocoder.err = fmt.Errorf("provider down")
	service := NewService(geocoder, nil)

	suggestions := service.Suggest(context.Background(), "lama")
	if len(suggestions) != 1 {
		t.Fatalf("expected local-only fallback, got %d suggestions", len(suggestions))
	}
	if suggestions[0].Origin != enums.PlaceOriginLocal {
		t.Fatalf("unexpected origin: %s", suggestions[0].Origin)
	}
}

func TestNeedsExternal(t *testing.T) {
	tests := []struct {
		query      string
		localCount int
		want       bool
	}{
		{query: "ab", localCount: 0, want: false},
		{query: "abc", localCount: 0, want: true},
		{query: "abc", localCount: 2, want: true},
		{query: "abc", localCount: 3, want: false},
		{query: "abcd", localCount: 5, want: false},
	}

	for _, tt := range tests {
		if got := NeedsExternal(tt.query, tt.localCount); got != tt.want {
			t.Fatalf("NeedsExternal(%q, %d) = %v want %v", tt.query, tt.localCount, got, tt.want)
		}
	}
}
