package order

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"aurelia_back_end/internal/models"
	"aurelia_back_end/internal/pricing"

	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

var (
	ErrEmptyCart       = errors.New("panier vide")
	ErrOrderNotFound   = errors.New("commande introuvable")
	ErrProductNotFound = errors.New("produit introuvable")
)

// ProductUnavailableError : le produit n'existe pas ou n'est plus actif.
type ProductUnavailableError struct {
	ProductID string
	Name      string
}

func (e *ProductUnavailableError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("produit indisponible: %s", e.Name)
	}
	return fmt.Sprintf("produit indisponible: %s", e.ProductID)
}

// InsufficientStockError : stock insuffisant pour la quantité demandée.
type InsufficientStockError struct {
	ProductID string
	Name      string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuffisant pour %s: %d demandé, %d disponible",
		e.Name, e.Requested, e.Available)
}

// ProductInfo est l'état actuel d'un produit, lu au moment du checkout.
// Price est en centimes.
type ProductInfo struct {
	ID       string
	Name     string
	Price    int64
	Stock    int
	IsActive bool
}

// Catalog fournit l'état produit et la réservation de stock.
// Product renvoie ErrProductNotFound pour un produit inconnu ; toute autre
// erreur est un échec d'infrastructure. Reserve échoue si le stock est
// insuffisant ; Release compense une réservation quand la création de
// commande échoue ensuite.
type Catalog interface {
	Product(ctx context.Context, productID string) (ProductInfo, error)
	Reserve(ctx context.Context, productID string, qty int) error
	Release(ctx context.Context, productID string, qty int) error
}

// CartStore est le panier côté service : lecture et vidage atomique.
type CartStore interface {
	Items(ctx context.Context, userID string) ([]models.CartItem, error)
	Clear(ctx context.Context, userID string) error
}

// Repository persiste les commandes. InsertPending écrit la commande et ses
// lignes d'un bloc (tout ou rien). OrderByID et OrderByPaymentIntent
// renvoient ErrOrderNotFound si rien ne correspond.
type Repository interface {
	InsertPending(ctx context.Context, o *Order) error
	OrderByID(ctx context.Context, orderID string) (*Order, error)
	OrderByPaymentIntent(ctx context.Context, intentID string) (*Order, error)
	UpdateStatus(ctx context.Context, o *Order, to Status) error
}

// Payments crée l'intention de paiement chez le prestataire externe pour
// exactement le montant calculé (centimes).
type Payments interface {
	CreateIntent(ctx context.Context, amount int64, metadata map[string]string) (intentID, clientSecret string, err error)
}

// Service orchestre le cycle de vie des commandes : checkout, confirmation
// de paiement, mise à jour de statut admin.
type Service struct {
	carts    CartStore
	catalog  Catalog
	config   pricing.ConfigStore
	orders   Repository
	payments Payments
}

func NewService(carts CartStore, catalog Catalog, config pricing.ConfigStore, orders Repository, payments Payments) *Service {
	return &Service{
		carts:    carts,
		catalog:  catalog,
		config:   config,
		orders:   orders,
		payments: payments,
	}
}

// CheckoutResult est renvoyé au front : la commande en pending et le
// client_secret Stripe pour finaliser le paiement.
type CheckoutResult struct {
	Order        *Order
	Totals       pricing.Totals
	ClientSecret string
}

// Checkout transforme le panier de l'utilisateur en commande pending.
// Validation stock/produit, calcul des totaux avec les prix produits et la
// configuration de tarification actuels, écriture de la commande avec
// snapshots de prix figés, puis vidage du panier. En cas d'échec à n'importe
// quelle étape, le panier reste intact et aucune commande n'est créée.
func (s *Service) Checkout(ctx context.Context, userID, email, addressID string) (*CheckoutResult, error) {
	cartItems, err := s.carts.Items(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, ErrEmptyCart
	}

	cfg, err := s.config.Get(ctx)
	if err != nil {
		return nil, err
	}

	// Relecture des produits : prix actuels, produit actif, stock suffisant.
	lines := make([]pricing.LineItem, 0, len(cartItems))
	orderItems := make([]Item, 0, len(cartItems))
	for _, ci := range cartItems {
		p, err := s.catalog.Product(ctx, ci.ProductID)
		if errors.Is(err, ErrProductNotFound) {
			return nil, &ProductUnavailableError{ProductID: ci.ProductID, Name: ci.Name}
		}
		if err != nil {
			// panne de stockage, pas une règle métier : on la propage telle quelle
			return nil, err
		}
		if !p.IsActive {
			return nil, &ProductUnavailableError{ProductID: p.ID, Name: p.Name}
		}
		if p.Stock < ci.Quantity {
			return nil, &InsufficientStockError{
				ProductID: p.ID,
				Name:      p.Name,
				Available: p.Stock,
				Requested: ci.Quantity,
			}
		}
		lines = append(lines, pricing.LineItem{UnitPrice: p.Price, Quantity: ci.Quantity})
		orderItems = append(orderItems, Item{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  ci.Quantity,
		})
	}

	totals := pricing.ComputeTotals(lines, cfg)

	orderID := gocql.UUID(uuid.New())
	intentID, clientSecret, err := s.payments.CreateIntent(ctx, totals.Total, map[string]string{
		"order_id":   orderID.String(),
		"user_id":    userID,
		"email":      email,
		"address_id": addressID,
	})
	if err != nil {
		return nil, err
	}

	o := &Order{
		ID:              orderID,
		UserID:          userID,
		AddressID:       addressID,
		PaymentIntentID: intentID,
		Items:           orderItems,
		Subtotal:        totals.Subtotal,
		TaxAmount:       totals.TaxAmount,
		ShippingAmount:  totals.ShippingAmount,
		Total:           totals.Total,
		Status:          StatusPending,
		CreatedAt:       time.Now(),
	}

	// Réservation du stock, compensée si la persistance échoue.
	reserved := make([]Item, 0, len(orderItems))
	release := func() {
		for _, it := range reserved {
			if err := s.catalog.Release(ctx, it.ProductID, it.Quantity); err != nil {
				log.Printf("⚠️ Échec restauration stock %s (+%d): %v", it.ProductID, it.Quantity, err)
			}
		}
	}
	for _, it := range orderItems {
		if err := s.catalog.Reserve(ctx, it.ProductID, it.Quantity); err != nil {
			release()
			return nil, err
		}
		reserved = append(reserved, it)
	}

	if err := s.orders.InsertPending(ctx, o); err != nil {
		release()
		return nil, err
	}

	// Le panier n'est vidé qu'une fois la commande écrite : un checkout
	// concurrent sur le même panier ne consomme les articles qu'une fois.
	if err := s.carts.Clear(ctx, userID); err != nil {
		log.Printf("⚠️ Commande %s créée mais panier non vidé: %v", o.ID, err)
	}

	return &CheckoutResult{Order: o, Totals: totals, ClientSecret: clientSecret}, nil
}

// ConfirmPayment traite l'événement externe « paiement réussi » pour une
// intention de paiement. Idempotent : rejouer le même événement ne change
// rien et ne renvoie pas d'erreur.
func (s *Service) ConfirmPayment(ctx context.Context, intentID string) (*Order, error) {
	o, err := s.orders.OrderByPaymentIntent(ctx, intentID)
	if err != nil {
		return nil, err
	}

	if !o.Status.CanTransitionTo(StatusPaid) {
		// Déjà payée (ou plus loin dans le cycle) : replay sans effet.
		log.Printf("🔁 Confirmation paiement rejouée pour %s (statut %s), ignorée", o.ID, o.Status)
		return o, nil
	}

	if err := s.orders.UpdateStatus(ctx, o, StatusPaid); err != nil {
		return nil, err
	}
	o.Status = StatusPaid
	return o, nil
}

// SetStatus applique une mise à jour de statut admin en passant par la table
// de transitions. Une transition interdite renvoie InvalidTransitionError ;
// reposer le statut courant est sans effet.
func (s *Service) SetStatus(ctx context.Context, orderID string, to Status) (*Order, error) {
	o, err := s.orders.OrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if o.Status == to {
		return o, nil
	}
	if !o.Status.CanTransitionTo(to) {
		return nil, &InvalidTransitionError{From: o.Status, To: to}
	}

	if err := s.orders.UpdateStatus(ctx, o, to); err != nil {
		return nil, err
	}
	o.Status = to
	return o, nil
}
