package payement

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"

	"aurelia_back_end/internal/order"
	"aurelia_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/webhook"
)

// StripeWebhook reçoit les événements Stripe. La vérification de signature
// est active dès que STRIPE_WEBHOOK_SECRET est configuré.
func StripeWebhook(c *gin.Context) {
	const MaxBodyBytes = int64(65536)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)

	payload, err := c.GetRawData()
	if err != nil {
		log.Println("❌ Lecture payload échouée:", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Échec lecture body"})
		return
	}

	secret := os.Getenv("STRIPE_WEBHOOK_SECRET")
	var event stripe.Event

	if secret == "" {
		log.Println("⚠️ Pas de STRIPE_WEBHOOK_SECRET — mode test")
		if err := json.Unmarshal(payload, &event); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "JSON invalide"})
			return
		}
	} else {
		event, err = webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), secret)
		if err != nil {
			log.Println("❌ Signature Stripe invalide:", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Signature invalide"})
			return
		}
	}

	log.Printf("📥 Événement Stripe reçu : %s", event.Type)
	handleStripeEvent(c.Request.Context(), event)

	c.Status(http.StatusOK)
}

// handleStripeEvent traite « paiement réussi » : la commande passe en paid.
// Idempotent — Stripe rejoue les webhooks, un replay ne change rien.
func handleStripeEvent(ctx context.Context, event stripe.Event) {
	if event.Type != "payment_intent.succeeded" {
		log.Printf("ℹ️ Événement ignoré : %s", event.Type)
		return
	}

	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		log.Println("❌ Erreur décodage PaymentIntent:", err)
		return
	}

	o, err := orderService.ConfirmPayment(ctx, pi.ID)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			log.Printf("⚠️ Aucune commande pour le PaymentIntent %s", pi.ID)
		} else {
			log.Printf("❌ Erreur confirmation paiement %s: %v", pi.ID, err)
		}
		return
	}

	log.Printf("✅ Commande %s confirmée payée (%d centimes)", o.ID, o.Total)

	userEmail := pi.Metadata["email"]
	if userEmail == "" {
		log.Println("⚠️ Email absent des métadonnées, pas de confirmation envoyée")
		return
	}

	html := utils.GenerateOrderConfirmationHTML(o)

	pdf, err := utils.GenerateInvoicePDF(o)
	if err != nil {
		log.Println("❌ Erreur génération PDF :", err)
		pdf = nil
	}

	go func() {
		if err := utils.SendConfirmationEmail(userEmail, "Confirmation de votre commande Aurelia", html, pdf); err != nil {
			log.Println("❌ Erreur envoi e-mail confirmation :", err)
		} else {
			log.Println("📧 E-mail de confirmation envoyé à", userEmail)
		}
	}()
}
