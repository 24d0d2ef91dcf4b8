package dto

// CartItemRequest adds units of a product to the cart
type CartItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

// CartQuantityRequest sets a line's quantity; zero removes the line
type CartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartCountResponse is the badge counter of the storefront
type CartCountResponse struct {
	Count int `json:"count"`
}
