package payement

import (
	"errors"
	"log"
	"net/http"

	"aurelia_back_end/internal/database"
	"aurelia_back_end/internal/order"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// Checkout transforme le panier en commande pending : validation adresse,
// stock et produits, calcul des totaux serveur, PaymentIntent Stripe du
// montant exact, écriture de la commande, vidage du panier.
func Checkout(c *gin.Context) {
	var req struct {
		AddressID string `json:"address_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	userID := c.GetString("user_id")
	email := c.GetString("email")
	if userID == "" || email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	// L'adresse doit exister et appartenir à l'utilisateur.
	addressUUID, err := uuid.Parse(req.AddressID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID adresse invalide"})
		return
	}

	usersSession, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var addressUserID string
	err = usersSession.Query("SELECT user_id FROM addresses WHERE address_id = ?", gocql.UUID(addressUUID)).
		WithContext(c.Request.Context()).Scan(&addressUserID)
	if err != nil || addressUserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Adresse introuvable ou non autorisée"})
		return
	}

	res, err := orderService.Checkout(c.Request.Context(), userID, email, req.AddressID)
	if err != nil {
		var unavailable *order.ProductUnavailableError
		var stock *order.InsufficientStockError

		switch {
		case errors.Is(err, order.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Panier vide"})
		case errors.As(err, &unavailable):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Produit indisponible",
				"product": unavailable.Name,
			})
		case errors.As(err, &stock):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Stock insuffisant",
				"product":   stock.Name,
				"available": stock.Available,
				"requested": stock.Requested,
			})
		default:
			log.Printf("❌ Erreur checkout pour %s: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création commande"})
		}
		return
	}

	log.Printf("💳 Checkout créé: commande %s (%d centimes) pour %s", res.Order.ID, res.Totals.Total, email)

	c.JSON(http.StatusOK, gin.H{
		"order_id":        res.Order.ID.String(),
		"client_secret":   res.ClientSecret,
		"subtotal":        res.Totals.Subtotal,
		"tax_amount":      res.Totals.TaxAmount,
		"shipping_amount": res.Totals.ShippingAmount,
		"total":           res.Totals.Total,
		"currency":        "eur",
		"items_count":     len(res.Order.Items),
	})
}
