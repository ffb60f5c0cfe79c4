package order

import (
	"context"
	"errors"
	"testing"

	"aurelia_back_end/internal/models"
	"aurelia_back_end/internal/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCheckoutFixture() (*Service, *MockCart, *MockCatalog, *MockRepo, *MockPayments, *stubConfig) {
	cart := &MockCart{
		ItemsResult: []models.CartItem{
			{ProductID: "p1", Name: "Lampe", Price: 2500, Quantity: 2},
		},
	}
	catalog := NewMockCatalog()
	catalog.Products["p1"] = ProductInfo{ID: "p1", Name: "Lampe", Price: 2500, Stock: 10, IsActive: true}

	cfg := &stubConfig{cfg: pricing.PaymentConfig{TaxPercent: 8, ShippingFee: 500, FreeShippingThreshold: 10000}}
	repo := NewMockRepo()
	payments := &MockPayments{IntentID: "pi_123", ClientSecret: "secret_123"}

	return NewService(cart, catalog, cfg, repo, payments), cart, catalog, repo, payments, cfg
}

func TestCheckout_CreatesPendingOrderAndClearsCart(t *testing.T) {
	svc, cart, catalog, repo, payments, _ := newCheckoutFixture()

	res, err := svc.Checkout(context.Background(), "user-1", "a@b.c", "addr-1")
	require.NoError(t, err)

	// totaux : 5000 + livraison 500 (5000 < 10000), TVA informative 400
	assert.Equal(t, int64(5000), res.Totals.Subtotal)
	assert.Equal(t, int64(400), res.Totals.TaxAmount)
	assert.Equal(t, int64(500), res.Totals.ShippingAmount)
	assert.Equal(t, int64(5500), res.Totals.Total)

	// le montant envoyé à Stripe est exactement le total calculé
	assert.Equal(t, int64(5500), payments.GotAmount)
	assert.Equal(t, "secret_123", res.ClientSecret)

	require.NotNil(t, repo.Inserted)
	assert.Equal(t, StatusPending, repo.Inserted.Status)
	assert.Equal(t, "pi_123", repo.Inserted.PaymentIntentID)
	assert.Equal(t, int64(5500), repo.Inserted.Total)
	require.Len(t, repo.Inserted.Items, 1)
	// snapshot de prix figé sur la ligne de commande
	assert.Equal(t, int64(2500), repo.Inserted.Items[0].Price)
	assert.Equal(t, 2, repo.Inserted.Items[0].Quantity)

	assert.Equal(t, 2, catalog.Reserved["p1"])
	assert.True(t, cart.Cleared)
}

func TestCheckout_UsesCurrentProductPriceNotCartSnapshot(t *testing.T) {
	svc, cart, catalog, repo, _, _ := newCheckoutFixture()

	// le prix en base a changé depuis l'ajout au panier
	cart.ItemsResult[0].Price = 1999
	catalog.Products["p1"] = ProductInfo{ID: "p1", Name: "Lampe", Price: 2600, Stock: 10, IsActive: true}

	res, err := svc.Checkout(context.Background(), "user-1", "a@b.c", "addr-1")
	require.NoError(t, err)

	assert.Equal(t, int64(5200), res.Totals.Subtotal)
	assert.Equal(t, int64(2600), repo.Inserted.Items[0].Price)
}

func TestCheckout_EmptyCart(t *testing.T) {
	svc, cart, _, repo, _, _ := newCheckoutFixture()
	cart.ItemsResult = nil

	res, err := svc.Checkout(context.Background(), "user-1", "a@b.c", "addr-1")

	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Nil(t, res)
	assert.Nil(t, repo.Inserted)
}

func TestCheckout_InactiveProduct(t *testing.T) {
	svc, cart, catalog, repo, _, _ := newCheckoutFixture()
	catalog.Products["p1"] = ProductInfo{ID: "p1", Name: "Lampe", Price: 2500, Stock: 10, IsActive: false}

	res, err := svc.Checkout(context.Background(), "user-1", "a@b.c", "addr-1")

	var unavailable *ProductUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, "Lampe", unavailable.Name)
	assert.Nil(t, res)
	assert.Nil(t, repo.Inserted)
	assert.False(t, cart.Cleared)
}

func TestCheckout_UnknownProduct(t *testing.T) {
	svc, cart, catalog, repo, _, _ := newCheckoutFixture()
	delete(catalog.Products, "p1")

	res, err := svc.Checkout(context.Background(), "user-1", "a@b.c", "addr-1")

	var unavailable *ProductUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, "p1", unavailable.ProductID)
	assert.Nil(t, res)
	assert.Nil(t, repo.Inserted)
	assert.False(t, cart.Cleared)
}

func TestCheckout_CatalogFailureIsNotABusinessError(t *testing.T) {
	svc, cart, catalog, repo, _, _ := newCheckoutFixture()
	catalog.ProductErr = errors.New("scylla injoignable")

	res, err := svc.Checkout(context.Background(), "user-1", "a@b.c", "addr-1")

	// une panne de stockage remonte telle quelle, jamais déguisée en
	// produit indisponible
	require.Error(t, err)
	var unavailable *ProductUnavailableError
	assert.False(t, errors.As(err, &unavailable))
	assert.ErrorIs(t, err, catalog.ProductErr)

	assert.Nil(t, res)
	assert.Nil(t, repo.Inserted)
	assert.False(t, cart.Cleared)
	assert.Len(t, cart.ItemsResult, 1)
}

func TestCheckout_InsufficientStockNamesProduct(t *testing.T) {
	svc, cart, catalog, repo, _, _ := newCheckoutFixture()
	catalog.Products["p1"] = ProductInfo{ID: "p1", Name: "Lampe", Price: 2500, Stock: 1, IsActive: true}

	res, err := svc.Checkout(context.Background(), "user-1", "a@b.c", "addr-1")

	var stock *InsufficientStockError
	require.ErrorAs(t, err, &stock)
	assert.Equal(t, "Lampe", stock.Name)
	assert.Equal(t, 1, stock.Available)
	assert.Equal(t, 2, stock.Requested)

	// le panier reste intact, aucune commande créée
	assert.Nil(t, res)
	assert.Nil(t, repo.Inserted)
	assert.False(t, cart.Cleared)
	assert.Len(t, cart.ItemsResult, 1)
}

func TestCheckout_PersistFailureReleasesStockAndKeepsCart(t *testing.T) {
	svc, cart, catalog, repo, _, _ := newCheckoutFixture()
	repo.InsertErr = errors.New("écriture échouée")

	res, err := svc.Checkout(context.Background(), "user-1", "a@b.c", "addr-1")

	assert.Error(t, err)
	assert.Nil(t, res)
	// compensation : le stock réservé est restauré
	assert.Equal(t, 2, catalog.Reserved["p1"])
	assert.Equal(t, 2, catalog.Released["p1"])
	// le panier n'a pas été touché
	assert.False(t, cart.Cleared)
	assert.Len(t, cart.ItemsResult, 1)
}

func TestCheckout_ReserveFailureReleasesPriorReservations(t *testing.T) {
	svc, cart, catalog, repo, _, _ := newCheckoutFixture()
	cart.ItemsResult = append(cart.ItemsResult, models.CartItem{ProductID: "p2", Name: "Tapis", Price: 1000, Quantity: 1})
	catalog.Products["p2"] = ProductInfo{ID: "p2", Name: "Tapis", Price: 1000, Stock: 5, IsActive: true}
	catalog.ReserveErr = map[string]error{"p2": errors.New("contention stock")}

	_, err := svc.Checkout(context.Background(), "user-1", "a@b.c", "addr-1")

	assert.Error(t, err)
	assert.Nil(t, repo.Inserted)
	assert.Equal(t, 2, catalog.Released["p1"])
	assert.False(t, cart.Cleared)
}

func TestCheckout_PaymentIntentFailure(t *testing.T) {
	svc, cart, catalog, repo, payments, _ := newCheckoutFixture()
	payments.Err = errors.New("stripe indisponible")

	res, err := svc.Checkout(context.Background(), "user-1", "a@b.c", "addr-1")

	assert.Error(t, err)
	assert.Nil(t, res)
	assert.Nil(t, repo.Inserted)
	assert.Equal(t, 0, catalog.Reserved["p1"])
	assert.False(t, cart.Cleared)
}

func TestCheckout_FreeShippingAtThreshold(t *testing.T) {
	svc, _, _, _, payments, cfg := newCheckoutFixture()
	cfg.cfg.FreeShippingThreshold = 5000

	res, err := svc.Checkout(context.Background(), "user-1", "a@b.c", "addr-1")
	require.NoError(t, err)

	assert.Equal(t, int64(0), res.Totals.ShippingAmount)
	assert.Equal(t, int64(5000), res.Totals.Total)
	assert.Equal(t, int64(5000), payments.GotAmount)
}

func TestConfirmPayment_TransitionsPendingToPaid(t *testing.T) {
	svc, _, _, repo, _, _ := newCheckoutFixture()

	res, err := svc.Checkout(context.Background(), "user-1", "a@b.c", "addr-1")
	require.NoError(t, err)

	o, err := svc.ConfirmPayment(context.Background(), "pi_123")
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, o.Status)
	assert.Equal(t, []Status{StatusPaid}, repo.StatusUpdates)
	assert.Equal(t, res.Order.ID, o.ID)
}

func TestConfirmPayment_IsIdempotent(t *testing.T) {
	svc, _, _, repo, _, _ := newCheckoutFixture()

	_, err := svc.Checkout(context.Background(), "user-1", "a@b.c", "addr-1")
	require.NoError(t, err)

	_, err = svc.ConfirmPayment(context.Background(), "pi_123")
	require.NoError(t, err)

	// replay du même événement : pas d'erreur, pas de second effet
	o, err := svc.ConfirmPayment(context.Background(), "pi_123")
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, o.Status)
	assert.Equal(t, []Status{StatusPaid}, repo.StatusUpdates)
}

func TestConfirmPayment_UnknownIntent(t *testing.T) {
	svc, _, _, _, _, _ := newCheckoutFixture()

	_, err := svc.ConfirmPayment(context.Background(), "pi_inconnu")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestSetStatus_FollowsTransitionTable(t *testing.T) {
	svc, _, _, _, _, _ := newCheckoutFixture()

	res, err := svc.Checkout(context.Background(), "user-1", "a@b.c", "addr-1")
	require.NoError(t, err)
	orderID := res.Order.ID.String()

	_, err = svc.ConfirmPayment(context.Background(), "pi_123")
	require.NoError(t, err)

	o, err := svc.SetStatus(context.Background(), orderID, StatusShipped)
	require.NoError(t, err)
	assert.Equal(t, StatusShipped, o.Status)

	o, err = svc.SetStatus(context.Background(), orderID, StatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, StatusDelivered, o.Status)
}

func TestSetStatus_RejectsIllegalTransition(t *testing.T) {
	svc, _, _, _, _, _ := newCheckoutFixture()

	res, err := svc.Checkout(context.Background(), "user-1", "a@b.c", "addr-1")
	require.NoError(t, err)
	orderID := res.Order.ID.String()

	// pending → delivered saute deux états
	_, err = svc.SetStatus(context.Background(), orderID, StatusDelivered)
	var invalid *InvalidTransitionError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, StatusPending, invalid.From)
	assert.Equal(t, StatusDelivered, invalid.To)
}

func TestSetStatus_SameStatusIsNoOp(t *testing.T) {
	svc, _, _, repo, _, _ := newCheckoutFixture()

	res, err := svc.Checkout(context.Background(), "user-1", "a@b.c", "addr-1")
	require.NoError(t, err)

	o, err := svc.SetStatus(context.Background(), res.Order.ID.String(), StatusPending)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, o.Status)
	assert.Empty(t, repo.StatusUpdates)
}

func TestSetStatus_CancelFromPending(t *testing.T) {
	svc, _, _, _, _, _ := newCheckoutFixture()

	res, err := svc.Checkout(context.Background(), "user-1", "a@b.c", "addr-1")
	require.NoError(t, err)

	o, err := svc.SetStatus(context.Background(), res.Order.ID.String(), StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, o.Status)

	// cancelled est terminal
	_, err = svc.SetStatus(context.Background(), res.Order.ID.String(), StatusPaid)
	var invalid *InvalidTransitionError
	assert.ErrorAs(t, err, &invalid)
}
