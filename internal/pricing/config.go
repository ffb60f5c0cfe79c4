package pricing

import (
	"context"
	"errors"
)

// PaymentConfig est la configuration de tarification éditable par un admin.
// TaxPercent est en points de pourcentage (8 = 8%), les deux autres champs
// en centimes. Il n'existe qu'un seul enregistrement logique à la fois.
type PaymentConfig struct {
	TaxPercent            float64 `json:"taxPercent"`
	ShippingFee           int64   `json:"shippingFee"`
	FreeShippingThreshold int64   `json:"freeShippingThreshold"`
}

// DefaultConfig est la configuration implicite tant qu'aucun admin n'a rien
// configuré : TVA 0%, pas de forfait, seuil 0 donc livraison toujours gratuite.
func DefaultConfig() PaymentConfig {
	return PaymentConfig{}
}

var (
	ErrNegativeTaxPercent   = errors.New("taxPercent négatif")
	ErrNegativeShippingFee  = errors.New("shippingFee négatif")
	ErrNegativeFreeShipping = errors.New("freeShippingThreshold négatif")
)

// Validate rejette les valeurs négatives. Le moteur de calcul reste permissif,
// c'est la frontière de mise à jour qui applique ces bornes.
func (c PaymentConfig) Validate() error {
	if c.TaxPercent < 0 {
		return ErrNegativeTaxPercent
	}
	if c.ShippingFee < 0 {
		return ErrNegativeShippingFee
	}
	if c.FreeShippingThreshold < 0 {
		return ErrNegativeFreeShipping
	}
	return nil
}

// ConfigStore est le contrat du stockage de la configuration singleton.
// Get crée (atomiquement) l'enregistrement par défaut s'il n'existe pas.
// Update remplace les trois champs d'un bloc — jamais de patch partiel.
type ConfigStore interface {
	Get(ctx context.Context) (PaymentConfig, error)
	Update(ctx context.Context, cfg PaymentConfig) (PaymentConfig, error)
}
