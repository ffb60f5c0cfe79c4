package models

// CartItem est une ligne de panier stockée dans Redis. Price est le prix
// unitaire en centimes, snapshot au moment de l'ajout — il est relu depuis
// le produit au moment du checkout.
type CartItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	ImageURL  string `json:"image_url,omitempty"`
}

type Cart struct {
	UserID string     `json:"user_id"`
	Items  []CartItem `json:"items"`
}
