package structs

import "time"

type Product struct {
	ID          string    `json:"id"`
	ShopID      string    `json:"shop_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ImgUrl      string    `json:"img_url"`
	Price       int64     `json:"price"`
	Stock       int64     `json:"stock"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateProduct struct {
	ShopID      string `json:"shop_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImgUrl      string `json:"img_url"`
	Price       int64  `json:"price"`
	Stock       int64  `json:"stock"`
	IsActive    bool   `json:"is_active"`
}

type PatchProduct struct {
	ID          string  `json:"id"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ImgUrl      *string `json:"img_url"`
	Price       *int64  `json:"price"`
	Stock       *int64  `json:"stock"`
	IsActive    *bool   `json:"is_active"`
}

type GetListProductRequest struct {
	ShopID string `json:"shop_id"`
	Offset int64  `json:"offset"`
	Limit  int64  `json:"limit"`
	Search string `json:"search"`
}

type GetListProductResponse struct {
	Count    int64     `json:"count"`
	Products []Product `json:"products"`
}
