package httpclient

import (
	"net/http"
	"time"
)

// New returns the outbound HTTP client used for Photon geocoder calls. The
// timeout comes from the geocoder config section and bounds a whole lookup,
// which matters because a suggest request may be waiting on it.
func New(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
