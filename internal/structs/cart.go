package structs

// CartLine is one product entry in a cart. Name, price and image are a
// snapshot taken when the line was added; later product edits do not
// rewrite carts.
type CartLine struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	ImgUrl    string `json:"img_url,omitempty"`
	Quantity  int64  `json:"quantity"`
	ShopID    string `json:"shop_id"`
	ShopName  string `json:"shop_name"`
}

// CartDocument is the persisted form of a cart: the exact JSON written to
// the cart key-value store.
type CartDocument struct {
	Lines  []CartLine `json:"lines"`
	ShopID string     `json:"shop_id"`
}

type AddCartItem struct {
	ProductID string `json:"product_id"`
	// Replace grants the cross-shop confirmation: when the cart already
	// holds another shop's items, true discards them first, false aborts.
	Replace bool `json:"replace"`
}

type PatchCartItem struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

type CartInfo struct {
	Lines       []CartLine `json:"lines"`
	ShopID      string     `json:"shop_id,omitempty"`
	ShopName    string     `json:"shop_name,omitempty"`
	TotalItems  int64      `json:"total_items"`
	TotalAmount int64      `json:"total_amount"`
}
