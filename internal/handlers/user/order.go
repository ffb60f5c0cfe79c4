package user

import (
	"log"
	"net/http"
	"time"

	"aurelia_back_end/internal/database"
	"aurelia_back_end/internal/order"
	"aurelia_back_end/internal/store"
	"aurelia_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

var orders = store.NewScyllaOrders()

// 🟢 GET /api/orders/mine
func GetMyOrders(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	type orderSummary struct {
		ID        gocql.UUID `json:"id"`
		Total     int64      `json:"total"`
		Status    string     `json:"status"`
		CreatedAt time.Time  `json:"created_at"`
	}

	results := []orderSummary{}
	iter := session.Query(
		`SELECT order_id, total, status, created_at FROM orders_by_user WHERE user_id = ?`, userID,
	).WithContext(c.Request.Context()).Iter()

	var s orderSummary
	for iter.Scan(&s.ID, &s.Total, &s.Status, &s.CreatedAt) {
		results = append(results, s)
	}
	if err := iter.Close(); err != nil {
		log.Printf("⚠️ Erreur listing commandes: %v", err)
	}

	c.JSON(http.StatusOK, results)
}

// 🟢 GET /api/orders/:id
func GetOrderByID(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	o, err := orders.OrderByID(c.Request.Context(), c.Param("id"))
	if err != nil || o.UserID != userID {
		// même réponse pour inexistant et non-propriétaire
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	c.JSON(http.StatusOK, o)
}

// 📄 GET /api/orders/:id/invoice — facture PDF
func DownloadInvoice(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	o, err := orders.OrderByID(c.Request.Context(), c.Param("id"))
	if err != nil || o.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	// Pas de facture tant que le paiement n'est pas passé
	if o.Status == order.StatusPending || o.Status == order.StatusCancelled {
		c.JSON(http.StatusConflict, gin.H{"error": "Commande non payée"})
		return
	}

	pdf, err := utils.GenerateInvoicePDF(o)
	if err != nil {
		log.Printf("❌ Erreur génération facture %s: %v", o.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération facture"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="facture_`+o.ID.String()+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
