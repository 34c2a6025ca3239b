package enums

import "strings"

// City is one of the Petite Côte municipalities Bokkal covers.
type City string

const (
	CitySaly         City = "saly"
	CityMbour        City = "mbour"
	CitySomone       City = "somone"
	CityNgaparou     City = "ngaparou"
	CityWarang       City = "warang"
	CityNianing      City = "nianing"
	CityPopenguine   City = "popenguine"
	CityToubabDialao City = "toubab_dialao"
)

func Cities() []City {
	return []City{
		CitySaly,
		CityMbour,
		CitySomone,
		CityNgaparou,
		CityWarang,
		CityNianing,
		CityPopenguine,
		CityToubabDialao,
	}
}

func (c City) Valid() bool {
	for _, city := range Cities() {
		if c == city {
			return true
		}
	}
	return false
}

// CityFromLabel maps free-form city/region text from a geocoder onto the
// closed city set. Matching is substring-based against the canonical id with
// underscores read as spaces; colloquial spellings that diverge from the
// canonical id are special-cased.
func CityFromLabel(label string) (City, bool) {
	normalized := strings.ToLower(strings.TrimSpace(label))
	if normalized == "" {
		return "", false
	}

	for _, city := range Cities() {
		if strings.Contains(normalized, strings.ReplaceAll(string(city), "_", " ")) {
			return city, true
		}
	}

	switch {
	case strings.Contains(normalized, "mbour"), strings.Contains(normalized, "m'bour"):
		return CityMbour, true
	case strings.Contains(normalized, "popenguin"):
		return CityPopenguine, true
	case strings.Contains(normalized, "dialao"), strings.Contains(normalized, "dialaw"):
		return CityToubabDialao, true
	}

	return "", false
}
