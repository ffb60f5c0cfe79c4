package services

import (
	"context"
	"log"

	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"
)

// StripePayments implémente order.Payments. Le montant est déjà en centimes,
// l'unité attendue par Stripe : aucune conversion flottante nulle part.
type StripePayments struct{}

func NewStripePayments() *StripePayments {
	return &StripePayments{}
}

func (StripePayments) CreateIntent(ctx context.Context, amount int64, metadata map[string]string) (string, string, error) {
	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(amount),
		Currency: stripe.String("eur"),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Metadata: metadata,
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		return "", "", err
	}

	log.Printf("💳 PaymentIntent créé : %s (%d centimes)", intent.ID, amount)
	return intent.ID, intent.ClientSecret, nil
}
