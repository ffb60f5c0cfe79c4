package pricing

import "math"

// LineItem est une ligne de panier au moment du calcul :
// prix unitaire actuel du produit (en centimes) × quantité.
type LineItem struct {
	UnitPrice int64 `json:"unit_price"`
	Quantity  int   `json:"quantity"`
}

// Totals est le détail d'une commande, tout en centimes.
// TaxAmount est purement informatif (prix TTC) : il n'est jamais
// ajouté au montant facturé.
type Totals struct {
	Subtotal       int64 `json:"subtotal"`
	TaxAmount      int64 `json:"tax_amount"`
	ShippingAmount int64 `json:"shipping_amount"`
	Total          int64 `json:"total"`
}

// ComputeTotals calcule le détail d'un panier. Fonction pure : pas d'I/O,
// pas de mutation des entrées, résultat identique pour des entrées identiques.
//
// Règles :
//   - subtotal = Σ prix_unitaire × quantité (arithmétique entière uniquement)
//   - taxAmount = arrondi(subtotal × taxPercent / 100), arrondi au centime
//     le plus proche, demi-centime arrondi en s'éloignant de zéro
//   - shippingAmount = 0 si subtotal ≥ seuil de livraison gratuite
//     (borne inclusive), sinon le forfait de livraison
//   - total = subtotal + shippingAmount — les prix sont TTC, la TVA ne
//     s'ajoute donc jamais au total facturé
//
// Un seuil à 0 signifie livraison gratuite pour tout panier (0 ≥ 0) : c'est
// voulu, un admin qui veut toujours facturer la livraison met un seuil
// inatteignable. Le moteur ne rejette pas les valeurs négatives de la
// configuration : cette validation appartient à la frontière de mise à jour.
func ComputeTotals(items []LineItem, cfg PaymentConfig) Totals {
	var subtotal int64
	for _, item := range items {
		subtotal += item.UnitPrice * int64(item.Quantity)
	}

	taxAmount := int64(math.Round(float64(subtotal) * cfg.TaxPercent / 100))

	var shippingAmount int64
	if subtotal < cfg.FreeShippingThreshold {
		shippingAmount = cfg.ShippingFee
	}

	return Totals{
		Subtotal:       subtotal,
		TaxAmount:      taxAmount,
		ShippingAmount: shippingAmount,
		Total:          subtotal + shippingAmount,
	}
}
