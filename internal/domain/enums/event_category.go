package enums

type EventCategory string

const (
	CategoryMusiqueFete       EventCategory = "musique_fete"
	CategoryCultureArts       EventCategory = "culture_arts"
	CategorySportBienetre     EventCategory = "sport_bienetre"
	CategoryMarchesFood       EventCategory = "marches_food"
	CategoryAteliersRencontre EventCategory = "ateliers_rencontres"
	CategoryCommunaute        EventCategory = "communaute"
)

func EventCategories() []EventCategory {
	return []EventCategory{
		CategoryMusiqueFete,
		CategoryCultureArts,
		CategorySportBienetre,
		CategoryMarchesFood,
		CategoryAteliersRencontre,
		CategoryCommunaute,
	}
}

func (c EventCategory) Valid() bool {
	for _, category := range EventCategories() {
		if c == category {
			return true
		}
	}
	return false
}

var categorySubcategories = map[EventCategory][]string{
	CategoryMusiqueFete:       {"concert_live", "soiree_dj", "beach_party", "bar_lounge", "autres"},
	CategoryCultureArts:       {"exposition", "spectacle_theatre", "cinema", "festival", "autres"},
	CategorySportBienetre:     {"lutte_traditionnelle", "sports_nautiques", "yoga_meditation", "tournoi_match", "autres"},
	CategoryMarchesFood:       {"marche_local", "restaurant_food", "degustation", "marche_artisanal", "autres"},
	CategoryAteliersRencontre: {"atelier_creatif", "conference_talk", "formation", "networking", "autres"},
	CategoryCommunaute:        {"nettoyage_plage", "action_solidaire", "sensibilisation", "evenement_associatif", "autres"},
}

func (c EventCategory) HasSubcategory(sub string) bool {
	for _, known := range categorySubcategories[c] {
		if known == sub {
			return true
		}
	}
	return false
}
