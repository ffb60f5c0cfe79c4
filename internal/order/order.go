package order

import (
	"time"

	"github.com/gocql/gocql"
)

// Item fige un produit au moment de la commande. Price est le prix unitaire
// en centimes, snapshot durable : un changement de prix produit ultérieur
// ne touche jamais une commande existante.
type Item struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// Order est une commande. Tous les montants sont en centimes.
// Après création, seuls Status et UpdatedAt changent ; Items et les
// montants sont immuables.
type Order struct {
	ID              gocql.UUID `json:"id"`
	UserID          string     `json:"user_id"`
	AddressID       string     `json:"address_id"`
	PaymentIntentID string     `json:"payment_intent_id"`
	Items           []Item     `json:"items"`
	Subtotal        int64      `json:"subtotal"`
	TaxAmount       int64      `json:"tax_amount"`
	ShippingAmount  int64      `json:"shipping_amount"`
	Total           int64      `json:"total"`
	Status          Status     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}
