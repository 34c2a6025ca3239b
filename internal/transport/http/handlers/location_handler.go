package handlers

import (
	"net"
	"net/http"
	"strconv"

	locationsvc "github.com/jobast/bokkal/internal/services/location"
	ratesvc "github.com/jobast/bokkal/internal/services/rate"
	"github.com/jobast/bokkal/internal/transport/http/dto"
	httperrors "github.com/jobast/bokkal/internal/transport/http/errors"
)

type LocationHandler struct {
	service *locationsvc.Service
	limiter *ratesvc.Limiter
}

func NewLocationHandler(service *locationsvc.Service, limiter *ratesvc.Limiter) *LocationHandler {
	return &LocationHandler{
		service: service,
		limiter: limiter,
	}
}

// Suggest resolves the q parameter into place suggestions. The endpoint is
// rate limited per client address since each miss may cost an external
// geocoder call.
func (h *LocationHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "LOCATION_SERVICE_UNAVAILABLE", "location service is unavailable")
		return
	}

	if h.limiter != nil {
		retryAfter, allowed, err := h.limiter.AllowSuggest(r.Context(), clientKey(r))
		if err == nil && !allowed {
			w.Header().Set("Retry-After", strconv.FormatInt(retryAfter, 10))
			httperrors.Write(w, http.StatusTooManyRequests, httperrors.RateLimitError{
				Code:          "RATE_LIMITED",
				Message:       "too many suggestion lookups",
				RetryAfterSec: retryAfter,
			})
			return
		}
		// A limiter error never blocks the lookup.
	}

	query := r.URL.Query().Get("q")
	suggestions := h.service.Suggest(r.Context(), query)

	response := dto.SuggestResponse{
		Query:       query,
		Suggestions: make([]dto.PlaceSuggestionResponse, 0, len(suggestions)),
	}
	for _, suggestion := range suggestions {
		response.Suggestions = append(response.Suggestions, dto.PlaceSuggestionResponse{
			Name:     suggestion.Name,
			Subtitle: suggestion.Subtitle,
			City:     string(suggestion.City),
			Lat:      suggestion.Lat,
			Lng:      suggestion.Lon,
			Kind:     string(suggestion.Kind),
			Origin:   string(suggestion.Origin),
		})
	}

	httperrors.Write(w, http.StatusOK, response)
}

// clientKey identifies the caller for rate limiting. RemoteAddr carries
// ip:port on direct connections; the port is stripped so every connection
// from one client shares a single budget. Behind a proxy the RealIP
// middleware has already rewritten RemoteAddr to the bare client IP.
func clientKey(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
