package location

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jobast/bokkal/internal/domain/enums"
	"github.com/jobast/bokkal/internal/domain/model"
)

const unnamedPlace = "Lieu sans nom"

// ResponseCache stores raw provider responses keyed by query.
type ResponseCache interface {
	Get(ctx context.Context, query string) ([]byte, bool, error)
	Set(ctx context.Context, query string, body []byte, ttl time.Duration) error
}

// PhotonConfig scopes the search to the Petite Côte.
type PhotonConfig struct {
	BaseURL   string
	Lang      string
	BBox      string
	CenterLat float64
	CenterLon float64
	Limit     int
	CacheTTL  time.Duration
}

// PhotonClient queries the Photon geocoding API and normalizes its feature
// collection into place candidates tagged origin=external.
type PhotonClient struct {
	httpClient *http.Client
	cfg        PhotonConfig
	cache      ResponseCache
}

func NewPhotonClient(httpClient *http.Client, cfg PhotonConfig) *PhotonClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	if cfg.Limit <= 0 {
		cfg.Limit = 5
	}

	return &PhotonClient{
		httpClient: httpClient,
		cfg:        cfg,
	}
}

// AttachCache enables response caching. A cache failure never fails a search.
func (c *PhotonClient) AttachCache(cache ResponseCache) {
	c.cache = cache
}

type photonProperties struct {
	Name        string `json:"name"`
	Street      string `json:"street"`
	HouseNumber string `json:"housenumber"`
	City        string `json:"city"`
	State       string `json:"state"`
	Country     string `json:"country"`
	OSMKey      string `json:"osm_key"`
	OSMValue    string `json:"osm_value"`
}

type photonFeature struct {
	Geometry struct {
		// Photon returns [lon, lat].
		Coordinates []float64 `json:"coordinates"`
	} `json:"geometry"`
	Properties photonProperties `json:"properties"`
}

type photonResponse struct {
	Features []photonFeature `json:"features"`
}

func (c *PhotonClient) Search(ctx context.Context, query string) ([]model.PlaceCandidate, error) {
	body, err := c.fetch(ctx, query)
	if err != nil {
		return nil, err
	}
	return parsePhotonBody(body)
}

func (c *PhotonClient) fetch(ctx context.Context, query string) ([]byte, error) {
	if c.cache != nil {
		if body, ok, err := c.cache.Get(ctx, query); err == nil && ok {
			return body, nil
		}
	}

	endpoint, err := c.buildURL(query)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build geocoder request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoder request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read geocoder response: %w", err)
	}

	if c.cache != nil && c.cfg.CacheTTL > 0 {
		_ = c.cache.Set(ctx, query, body, c.cfg.CacheTTL)
	}

	return body, nil
}

func (c *PhotonClient) buildURL(query string) (string, error) {
	base, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parse geocoder base url: %w", err)
	}

	values := url.Values{}
	values.Set("q", query)
	values.Set("limit", fmt.Sprintf("%d", c.cfg.Limit))
	if c.cfg.Lang != "" {
		values.Set("lang", c.cfg.Lang)
	}
	if c.cfg.BBox != "" {
		values.Set("bbox", c.cfg.BBox)
	}
	if c.cfg.CenterLat != 0 || c.cfg.CenterLon != 0 {
		values.Set("lat", fmt.Sprintf("%g", c.cfg.CenterLat))
		values.Set("lon", fmt.Sprintf("%g", c.cfg.CenterLon))
	}
	base.RawQuery = values.Encode()

	return base.String(), nil
}

func parsePhotonBody(body []byte) ([]model.PlaceCandidate, error) {
	var decoded photonResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("decode geocoder response: %w", err)
	}

	candidates := make([]model.PlaceCandidate, 0, len(decoded.Features))
	for _, feature := range decoded.Features {
		candidate := model.PlaceCandidate{
			Name:     photonName(feature.Properties),
			Subtitle: photonSubtitle(feature.Properties),
			Kind:     photonKind(feature.Properties),
			Origin:   enums.PlaceOriginExternal,
		}

		if city, ok := enums.CityFromLabel(photonCityLabel(feature.Properties)); ok {
			candidate.City = city
		}

		if coords := feature.Geometry.Coordinates; len(coords) == 2 {
			lon, lat := coords[0], coords[1]
			candidate.Lat = &lat
			candidate.Lon = &lon
		}

		candidates = append(candidates, candidate)
	}

	return candidates, nil
}

func photonName(props photonProperties) string {
	if props.Name != "" {
		return props.Name
	}
	if props.Street != "" {
		if props.HouseNumber != "" {
			return props.HouseNumber + " " + props.Street
		}
		return props.Street
	}
	return unnamedPlace
}

func photonSubtitle(props photonProperties) string {
	var parts []string
	if props.City != "" {
		parts = append(parts, props.City)
	} else if props.State != "" {
		parts = append(parts, props.State)
	}
	if props.Country != "" && props.Country != "Sénégal" {
		parts = append(parts, props.Country)
	}
	if len(parts) == 0 {
		return "Sénégal"
	}
	return strings.Join(parts, ", ")
}

func photonCityLabel(props photonProperties) string {
	if props.City != "" {
		return props.City
	}
	return props.State
}

func photonKind(props photonProperties) enums.PlaceKind {
	key := strings.ToLower(props.OSMKey)
	value := strings.ToLower(props.OSMValue)

	switch {
	case key == "tourism" && (value == "hotel" || value == "guest_house"):
		return enums.PlaceKindHotel
	case key == "amenity" && (value == "restaurant" || value == "cafe"):
		return enums.PlaceKindRestaurant
	case key == "amenity" && (value == "bar" || value == "pub" || value == "nightclub"):
		return enums.PlaceKindBar
	case key == "natural" && value == "beach":
		return enums.PlaceKindBeach
	case key == "leisure" && value == "beach_resort":
		return enums.PlaceKindBeach
	case key == "amenity" && (value == "theatre" || value == "cinema" || value == "community_centre"):
		return enums.PlaceKindHall
	}

	return enums.PlaceKindOther
}
