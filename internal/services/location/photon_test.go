package location

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/jobast/bokkal/internal/domain/enums"
	redisrepo "github.com/jobast/bokkal/internal/repo/redis"
)

const photonFixture = `{
	"features": [
		{
			"geometry": {"coordinates": [-17.0211, 14.4483]},
			"properties": {
				"name": "Lamantin Beach Resort",
				"city": "Saly Portudal",
				"country": "Sénégal",
				"osm_key": "tourism",
				"osm_value": "hotel"
			}
		},
		{
			"geometry": {"coordinates": [-16.9651, 14.4139]},
			"properties": {
				"street": "Route de la Corniche",
				"housenumber": "12",
				"city": "M'bour",
				"country": "Sénégal",
				"osm_key": "amenity",
				"osm_value": "restaurant"
			}
		},
		{
			"geometry": {"coordinates": [-17.1123, 14.5489]},
			"properties": {
				"state": "Popenguin",
				"country": "France",
				"osm_key": "natural",
				"osm_value": "beach"
			}
		}
	]
}`

func TestParsePhotonBody(t *testing.T) {
	candidates, err := parsePhotonBody([]byte(photonFixture))
	if err != nil {
		t.Fatalf("parse photon body: %v", err)
	}
	if len(candidates) != 3 {
		t.Fatalf("unexpected candidate count: %d", len(candidates))
	}

	named := candidates[0]
	if named.Name != "Lamantin Beach Resort" {
		t.Fatalf("unexpected name: %s", named.Name)
	}
	if named.City != enums.CitySaly {
		t.Fatalf("city label not resolved: %s", named.City)
	}
	if named.Kind != enums.PlaceKindHotel {
		t.Fatalf("unexpected kind: %s", named.Kind)
	}
	if named.Subtitle != "Saly Portudal" {
		t.Fatalf("unexpected subtitle: %s", named.Subtitle)
	}
	if named.Origin != enums.PlaceOriginExternal {
		t.Fatalf("unexpected origin: %s", named.Origin)
	}
	if named.Lat == nil || named.Lon == nil {
		t.Fatalf("coordinates not set")
	}
	if *named.Lat != 14.4483 || *named.Lon != -17.0211 {
		t.Fatalf("coordinate order swapped: lat=%v lon=%v", *named.Lat, *named.Lon)
	}

	street := candidates[1]
	if street.Name != "12 Route de la Corniche" {
		t.Fatalf("street fallback name wrong: %s", street.Name)
	}
	if street.City != enums.CityMbour {
		t.Fatalf("M'bour alias not resolved: %s", street.City)
	}
	if street.Kind != enums.PlaceKindRestaurant {
		t.Fatalf("unexpected kind: %s", street.Kind)
	}

	unnamed := candidates[2]
	if unnamed.Name != unnamedPlace {
		t.Fatalf("unnamed fallback missing: %s", unnamed.Name)
	}
	if unnamed.City != enums.CityPopenguine {
		t.Fatalf("Popenguin alias not resolved: %s", unnamed.City)
	}
	if unnamed.Kind != enums.PlaceKindBeach {
		t.Fatalf("unexpected kind: %s", unnamed.Kind)
	}
	if unnamed.Subtitle != "Popenguin, France" {
		t.Fatalf("foreign country dropped from subtitle: %s", unnamed.Subtitle)
	}
}

func TestParsePhotonBodyRejectsGarbage(t *testing.T) {
	if _, err := parsePhotonBody([]byte("not json")); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestPhotonSubtitleDefaultsToSenegal(t *testing.T) {
	if got := photonSubtitle(photonProperties{Country: "Sénégal"}); got != "Sénégal" {
		t.Fatalf("unexpected subtitle: %s", got)
	}
}

func TestPhotonKindMapping(t *testing.T) {
	tests := []struct {
		key, value string
		want       enums.PlaceKind
	}{
		{"tourism", "hotel", enums.PlaceKindHotel},
		{"tourism", "guest_house", enums.PlaceKindHotel},
		{"amenity", "restaurant", enums.PlaceKindRestaurant},
		{"amenity", "cafe", enums.PlaceKindRestaurant},
		{"amenity", "bar", enums.PlaceKindBar},
		{"amenity", "nightclub", enums.PlaceKindBar},
		{"natural", "beach", enums.PlaceKindBeach},
		{"leisure", "beach_resort", enums.PlaceKindBeach},
		{"amenity", "theatre", enums.PlaceKindHall},
		{"building", "yes", enums.PlaceKindOther},
		{"", "", enums.PlaceKindOther},
	}

	for _, tt := range tests {
		got := photonKind(photonProperties{OSMKey: tt.key, OSMValue: tt.value})
		if got != tt.want {
			t.Fatalf("photonKind(%s=%s) = %s want %s", tt.key, tt.value, got, tt.want)
		}
	}
}

func TestPhotonClientSearchBuildsScopedRequest(t *testing.T) {
	var gotQuery, gotBBox, gotLang, gotLimit string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotBBox = r.URL.Query().Get("bbox")
		gotLang = r.URL.Query().Get("lang")
		gotLimit = r.URL.Query().Get("limit")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(photonFixture))
	}))
	defer server.Close()

	client := NewPhotonClient(server.Client(), PhotonConfig{
		BaseURL:   server.URL,
		Lang:      "fr",
		BBox:      "-17.15,14.05,-16.70,14.60",
		CenterLat: 14.45,
		CenterLon: -17.0,
		Limit:     5,
	})

	candidates, err := client.Search(context.Background(), "lamantin")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(candidates) != 3 {
		t.Fatalf("unexpected candidate count: %d", len(candidates))
	}
	if gotQuery != "lamantin" || gotLang != "fr" || gotLimit != "5" {
		t.Fatalf("unexpected request params: q=%s lang=%s limit=%s", gotQuery, gotLang, gotLimit)
	}
	if gotBBox != "-17.15,14.05,-16.70,14.60" {
		t.Fatalf("bbox not forwarded: %s", gotBBox)
	}
}

func TestPhotonClientSearchFailsOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewPhotonClient(server.Client(), PhotonConfig{BaseURL: server.URL})
	if _, err := client.Search(context.Background(), "lamantin"); err == nil {
		t.Fatalf("expected error for 502 response")
	}
}

func TestPhotonClientCacheShortCircuitsRepeatLookups(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redisrepo.NewGeocacheRepo(redisrepo.NewClient(mr.Addr(), "", 0))

	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(photonFixture))
	}))
	defer server.Close()

	client := NewPhotonClient(server.Client(), PhotonConfig{
		BaseURL:  server.URL,
		CacheTTL: time.Minute,
	})
	client.AttachCache(cache)

	for i := 0; i < 3; i++ {
		candidates, err := client.Search(context.Background(), "lamantin")
		if err != nil {
			t.Fatalf("search %d: %v", i, err)
		}
		if len(candidates) != 3 {
			t.Fatalf("search %d: unexpected candidate count %d", i, len(candidates))
		}
	}

	if hits.Load() != 1 {
		t.Fatalf("expected a single upstream hit, got %d", hits.Load())
	}
}
