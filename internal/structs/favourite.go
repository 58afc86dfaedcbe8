package structs

import "time"

type Favourite struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ShopID    string    `json:"shop_id"`
	CreatedAt time.Time `json:"created_at"`
}

type ToggleFavourite struct {
	ShopID string `json:"shop_id"`
}

type ToggleFavouriteResult struct {
	ShopID      string `json:"shop_id"`
	IsFavourite bool   `json:"is_favourite"`
}

type GetListFavouriteResponse struct {
	Count int64        `json:"count"`
	Shops []RankedShop `json:"shops"`
}
