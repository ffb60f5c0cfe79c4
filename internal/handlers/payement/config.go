package payement

import (
	"errors"
	"net/http"

	"aurelia_back_end/internal/pricing"

	"github.com/gin-gonic/gin"
)

// GetPaymentConfig retourne la configuration de tarification courante.
// Si aucune n'existe encore, le store crée les valeurs par défaut.
func GetPaymentConfig(c *gin.Context) {
	cfg, err := configStore.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture configuration"})
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// UpdatePaymentConfig remplace la configuration d'un bloc (admin uniquement).
// Les trois champs sont obligatoires : pas de patch partiel.
func UpdatePaymentConfig(c *gin.Context) {
	var req struct {
		TaxPercent            *float64 `json:"taxPercent" binding:"required"`
		ShippingFee           *int64   `json:"shippingFee" binding:"required"`
		FreeShippingThreshold *int64   `json:"freeShippingThreshold" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	cfg, err := configStore.Update(c.Request.Context(), pricing.PaymentConfig{
		TaxPercent:            *req.TaxPercent,
		ShippingFee:           *req.ShippingFee,
		FreeShippingThreshold: *req.FreeShippingThreshold,
	})
	if err != nil {
		if errors.Is(err, pricing.ErrNegativeTaxPercent) ||
			errors.Is(err, pricing.ErrNegativeShippingFee) ||
			errors.Is(err, pricing.ErrNegativeFreeShipping) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Valeurs négatives refusées", "details": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour configuration"})
		return
	}

	c.JSON(http.StatusOK, cfg)
}
