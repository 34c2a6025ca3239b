package dto

type PlaceSuggestionResponse struct {
	Name     string   `json:"name"`
	Subtitle string   `json:"subtitle,omitempty"`
	City     string   `json:"city,omitempty"`
	Lat      *float64 `json:"lat,omitempty"`
	Lng      *float64 `json:"lng,omitempty"`
	Kind     string   `json:"kind"`
	Origin   string   `json:"origin"`
}

type SuggestResponse struct {
	Query       string                    `json:"query"`
	Suggestions []PlaceSuggestionResponse `json:"suggestions"`
}
