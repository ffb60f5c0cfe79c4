package admin

import (
	"errors"
	"log"
	"net/http"
	"time"

	"aurelia_back_end/internal/database"
	"aurelia_back_end/internal/order"
	"aurelia_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

var orderService *order.Service

func Init(svc *order.Service) {
	orderService = svc
}

// UpdateOrderStatus permet à un admin de mettre à jour le statut d'une
// commande. Les transitions passent par la machine à états : une transition
// interdite renvoie 409 au lieu d'être appliquée silencieusement.
func UpdateOrderStatus(c *gin.Context) {
	orderID := c.Param("id")

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	status, err := order.ParseStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":          "Statut invalide",
			"valid_statuses": order.ValidStatuses(),
		})
		return
	}

	o, err := orderService.SetStatus(c.Request.Context(), orderID, status)
	if err != nil {
		var invalid *order.InvalidTransitionError
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		case errors.As(err, &invalid):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Transition de statut interdite",
				"from":  string(invalid.From),
				"to":    string(invalid.To),
			})
		default:
			log.Printf("❌ Erreur mise à jour commande %s: %v", orderID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour commande"})
		}
		return
	}

	log.Printf("✅ Commande %s mise à jour: %s", orderID, o.Status)

	notifyStatusChange(o)

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"order_id": orderID,
		"status":   string(o.Status),
	})
}

// notifyStatusChange envoie l'e-mail de notification à l'utilisateur (async).
func notifyStatusChange(o *order.Order) {
	usersSession, err := database.GetUsersSession()
	if err != nil {
		return
	}

	var userEmail string
	if err := usersSession.Query("SELECT email FROM users WHERE user_id = ?", o.UserID).Scan(&userEmail); err != nil || userEmail == "" {
		return
	}

	go func() {
		if err := utils.SendOrderStatusEmail(o, userEmail); err != nil {
			log.Printf("⚠️ Erreur envoi email notification: %v", err)
		}
	}()
}

// GetAllOrders récupère toutes les commandes (attention: peut être lourd en production).
func GetAllOrders(c *gin.Context) {
	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(
		`SELECT order_id, user_id, payment_intent_id, items, subtotal, tax_amount, shipping_amount, total, status, created_at, updated_at FROM orders`,
	).WithContext(c.Request.Context()).Iter()

	type OrderResponse struct {
		ID              string     `json:"id"`
		UserID          string     `json:"user_id"`
		PaymentIntentID string     `json:"payment_intent_id"`
		Items           string     `json:"items"`
		Subtotal        int64      `json:"subtotal"`
		TaxAmount       int64      `json:"tax_amount"`
		ShippingAmount  int64      `json:"shipping_amount"`
		Total           int64      `json:"total"`
		Status          string     `json:"status"`
		CreatedAt       time.Time  `json:"created_at"`
		UpdatedAt       *time.Time `json:"updated_at,omitempty"`
	}

	var orders []OrderResponse
	var o OrderResponse
	var orderID gocql.UUID

	for iter.Scan(&orderID, &o.UserID, &o.PaymentIntentID, &o.Items, &o.Subtotal, &o.TaxAmount, &o.ShippingAmount, &o.Total, &o.Status, &o.CreatedAt, &o.UpdatedAt) {
		o.ID = orderID.String()
		orders = append(orders, o)
	}

	if err := iter.Close(); err != nil {
		log.Printf("❌ Erreur lecture commandes: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture commandes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// GetOrderStats retourne des statistiques sur les commandes. Les montants
// restent en centimes, l'addition est entière.
func GetOrderStats(c *gin.Context) {
	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	stats := make(map[string]int)
	var totalRevenue int64
	var totalOrders int

	iter := session.Query(`SELECT status, total FROM orders`).WithContext(c.Request.Context()).Iter()

	var status string
	var total int64
	for iter.Scan(&status, &total) {
		stats[status]++
		totalOrders++
		// seules les commandes réellement payées comptent dans le CA
		if s := order.Status(status); s == order.StatusPaid || s == order.StatusShipped || s == order.StatusDelivered {
			totalRevenue += total
		}
	}

	if err := iter.Close(); err != nil {
		log.Printf("❌ Erreur lecture stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture statistiques"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_orders":  totalOrders,
		"total_revenue": totalRevenue,
		"by_status":     stats,
	})
}
