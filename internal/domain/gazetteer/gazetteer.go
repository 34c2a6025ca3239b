package gazetteer

import (
	"strings"

	"github.com/jobast/bokkal/internal/domain/enums"
)

// Entry is one well-known venue of the Petite Côte. The list is fixed at
// build time and shared read-only.
type Entry struct {
	ID   string
	Name string
	City enums.City
	Lat  float64
	Lon  float64
	Kind enums.PlaceKind
}

var entries = []Entry{
	// Saly
	{ID: "lamantin", Name: "Hôtel Lamantin Beach", City: enums.CitySaly, Lat: 14.4483, Lon: -17.0211, Kind: enums.PlaceKindHotel},
	{ID: "royam", Name: "Hôtel Royam", City: enums.CitySaly, Lat: 14.4456, Lon: -17.0178, Kind: enums.PlaceKindHotel},
	{ID: "neptune", Name: "Hôtel Neptune", City: enums.CitySaly, Lat: 14.4512, Lon: -17.0198, Kind: enums.PlaceKindHotel},
	{ID: "teranga", Name: "Hôtel Téranga", City: enums.CitySaly, Lat: 14.4478, Lon: -17.0156, Kind: enums.PlaceKindHotel},
	{ID: "espadon", Name: "Hôtel Espadon", City: enums.CitySaly, Lat: 14.4445, Lon: -17.0189, Kind: enums.PlaceKindHotel},
	{ID: "filaos", Name: "Hôtel Les Filaos", City: enums.CitySaly, Lat: 14.4521, Lon: -17.0234, Kind: enums.PlaceKindHotel},
	{ID: "palm_beach", Name: "Palm Beach Hotel", City: enums.CitySaly, Lat: 14.4498, Lon: -17.0201, Kind: enums.PlaceKindHotel},
	{ID: "bougainvillees", Name: "Hôtel Les Bougainvillées", City: enums.CitySaly, Lat: 14.4467, Lon: -17.0145, Kind: enums.PlaceKindHotel},
	{ID: "copacabana", Name: "Copacabana", City: enums.CitySaly, Lat: 14.4472, Lon: -17.0223, Kind: enums.PlaceKindRestaurant},
	{ID: "poisson_dor", Name: "Le Poisson d'Or", City: enums.CitySaly, Lat: 14.4489, Lon: -17.0187, Kind: enums.PlaceKindRestaurant},
	{ID: "casa_saly", Name: "Casa Saly", City: enums.CitySaly, Lat: 14.4501, Lon: -17.0176, Kind: enums.PlaceKindRestaurant},
	{ID: "le_phare", Name: "Le Phare", City: enums.CitySaly, Lat: 14.4534, Lon: -17.0245, Kind: enums.PlaceKindBar},
	{ID: "nirvana", Name: "Nirvana Beach", City: enums.CitySaly, Lat: 14.4456, Lon: -17.0234, Kind: enums.PlaceKindBar},
	{ID: "plage_saly", Name: "Plage de Saly", City: enums.CitySaly, Lat: 14.4467, Lon: -17.0256, Kind: enums.PlaceKindBeach},
	{ID: "plage_saly_nord", Name: "Plage de Saly Nord", City: enums.CitySaly, Lat: 14.4567, Lon: -17.0278, Kind: enums.PlaceKindBeach},

	// Mbour
	{ID: "marche_mbour", Name: "Marché aux poissons de Mbour", City: enums.CityMbour, Lat: 14.4167, Lon: -16.9667, Kind: enums.PlaceKindOther},
	{ID: "port_mbour", Name: "Port de Mbour", City: enums.CityMbour, Lat: 14.4134, Lon: -16.9623, Kind: enums.PlaceKindOther},
	{ID: "plage_mbour", Name: "Plage de Mbour", City: enums.CityMbour, Lat: 14.4156, Lon: -16.9712, Kind: enums.PlaceKindBeach},
	{ID: "tama_lodge", Name: "Tama Lodge", City: enums.CityMbour, Lat: 14.4189, Lon: -16.9734, Kind: enums.PlaceKindHotel},

	// Somone
	{ID: "lagune_somone", Name: "Lagune de Somone", City: enums.CitySomone, Lat: 14.4833, Lon: -17.0833, Kind: enums.PlaceKindOther},
	{ID: "royal_horizon", Name: "Royal Horizon", City: enums.CitySomone, Lat: 14.4812, Lon: -17.0856, Kind: enums.PlaceKindHotel},
	{ID: "domaine_somone", Name: "Domaine de Somone", City: enums.CitySomone, Lat: 14.4798, Lon: -17.0812, Kind: enums.PlaceKindHotel},
	{ID: "plage_somone", Name: "Plage de Somone", City: enums.CitySomone, Lat: 14.4856, Lon: -17.0889, Kind: enums.PlaceKindBeach},

	// Ngaparou
	{ID: "plage_ngaparou", Name: "Plage de Ngaparou", City: enums.CityNgaparou, Lat: 14.4333, Lon: -17.0456, Kind: enums.PlaceKindBeach},
	{ID: "chez_salim", Name: "Chez Salim", City: enums.CityNgaparou, Lat: 14.4312, Lon: -17.0423, Kind: enums.PlaceKindRestaurant},
	{ID: "auberge_ngaparou", Name: "Auberge de Ngaparou", City: enums.CityNgaparou, Lat: 14.4345, Lon: -17.0412, Kind: enums.PlaceKindHotel},

	// Warang
	{ID: "plage_warang", Name: "Plage de Warang", City: enums.CityWarang, Lat: 14.4000, Lon: -16.9623, Kind: enums.PlaceKindBeach},

	// Nianing
	{ID: "club_aldiana", Name: "Club Aldiana", City: enums.CityNianing, Lat: 14.3312, Lon: -16.9456, Kind: enums.PlaceKindHotel},
	{ID: "plage_nianing", Name: "Plage de Nianing", City: enums.CityNianing, Lat: 14.3333, Lon: -16.9512, Kind: enums.PlaceKindBeach},

	// Popenguine
	{ID: "sanctuaire_popenguine", Name: "Sanctuaire Marial de Popenguine", City: enums.CityPopenguine, Lat: 14.5489, Lon: -17.1123, Kind: enums.PlaceKindOther},
	{ID: "reserve_popenguine", Name: "Réserve naturelle de Popenguine", City: enums.CityPopenguine, Lat: 14.5512, Lon: -17.1089, Kind: enums.PlaceKindOther},
	{ID: "plage_popenguine", Name: "Plage de Popenguine", City: enums.CityPopenguine, Lat: 14.5467, Lon: -17.1178, Kind: enums.PlaceKindBeach},

	// Toubab Dialao
	{ID: "sobo_bade", Name: "Sobo Badé", City: enums.CityToubabDialao, Lat: 14.5834, Lon: -17.1345, Kind: enums.PlaceKindOther},
	{ID: "plage_toubab", Name: "Plage de Toubab Dialao", City: enums.CityToubabDialao, Lat: 14.5812, Lon: -17.1378, Kind: enums.PlaceKindBeach},
}

// Entries returns the full venue list in insertion order.
func Entries() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Search returns entries whose name contains the query, case-insensitively,
// in insertion order. Queries shorter than two characters match nothing.
func Search(query string) []Entry {
	normalized := strings.ToLower(strings.TrimSpace(query))
	if len([]rune(normalized)) < 2 {
		return nil
	}

	var matches []Entry
	for _, entry := range entries {
		if strings.Contains(strings.ToLower(entry.Name), normalized) {
			matches = append(matches, entry)
		}
	}
	return matches
}
