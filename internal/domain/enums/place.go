package enums

// PlaceKind categorizes a venue. It only drives icon choice on the client.
type PlaceKind string

const (
	PlaceKindHotel      PlaceKind = "hotel"
	PlaceKindRestaurant PlaceKind = "restaurant"
	PlaceKindBeach      PlaceKind = "beach"
	PlaceKindBar        PlaceKind = "bar"
	PlaceKindHall       PlaceKind = "hall"
	PlaceKindOther      PlaceKind = "other"
)

// PlaceOrigin tags where a suggestion came from. Local entries win over
// external ones during deduplication.
type PlaceOrigin string

const (
	PlaceOriginLocal    PlaceOrigin = "local"
	PlaceOriginExternal PlaceOrigin = "external"
)
