package structs

type NearbyRequest struct {
	Latitude  float64 `json:"latitude" binding:"required"`
	Longitude float64 `json:"longitude" binding:"required"`
	RadiusM   int64   `json:"radius"`
}

// NearbyShop is a stub shop sourced from the places lookup, before it is
// upserted into the shops collection.
type NearbyShop struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Category    string   `json:"category"`
	ImgUrl      string   `json:"img_url"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	PlaceID     string   `json:"place_id"`
}

type NearbyResponse struct {
	Shops []NearbyShop `json:"shops"`
}
