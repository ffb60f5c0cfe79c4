package order

import (
	"context"

	"aurelia_back_end/internal/models"
	"aurelia_back_end/internal/pricing"
)

// MockCart implements CartStore for testing
type MockCart struct {
	ItemsResult []models.CartItem
	ItemsErr    error
	Cleared     bool
	ClearErr    error
}

func (m *MockCart) Items(_ context.Context, _ string) ([]models.CartItem, error) {
	return m.ItemsResult, m.ItemsErr
}

func (m *MockCart) Clear(_ context.Context, _ string) error {
	if m.ClearErr != nil {
		return m.ClearErr
	}
	m.Cleared = true
	m.ItemsResult = nil
	return nil
}

// MockCatalog implements Catalog for testing
type MockCatalog struct {
	Products   map[string]ProductInfo
	ProductErr error            // panne d'infrastructure simulée
	ReserveErr map[string]error // par produit
	Reserved   map[string]int
	Released   map[string]int
}

func NewMockCatalog() *MockCatalog {
	return &MockCatalog{
		Products: make(map[string]ProductInfo),
		Reserved: make(map[string]int),
		Released: make(map[string]int),
	}
}

func (m *MockCatalog) Product(_ context.Context, productID string) (ProductInfo, error) {
	if m.ProductErr != nil {
		return ProductInfo{}, m.ProductErr
	}
	p, ok := m.Products[productID]
	if !ok {
		return ProductInfo{}, ErrProductNotFound
	}
	return p, nil
}

func (m *MockCatalog) Reserve(_ context.Context, productID string, qty int) error {
	if err := m.ReserveErr[productID]; err != nil {
		return err
	}
	m.Reserved[productID] += qty
	return nil
}

func (m *MockCatalog) Release(_ context.Context, productID string, qty int) error {
	m.Released[productID] += qty
	return nil
}

// MockRepo implements Repository for testing
type MockRepo struct {
	Inserted  *Order // capture la commande passée à InsertPending
	InsertErr error

	ByID     map[string]*Order
	ByIntent map[string]*Order

	StatusUpdates []Status
	UpdateErr     error
}

func NewMockRepo() *MockRepo {
	return &MockRepo{
		ByID:     make(map[string]*Order),
		ByIntent: make(map[string]*Order),
	}
}

func (m *MockRepo) InsertPending(_ context.Context, o *Order) error {
	if m.InsertErr != nil {
		return m.InsertErr
	}
	m.Inserted = o
	m.ByID[o.ID.String()] = o
	m.ByIntent[o.PaymentIntentID] = o
	return nil
}

func (m *MockRepo) OrderByID(_ context.Context, orderID string) (*Order, error) {
	o, ok := m.ByID[orderID]
	if !ok {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

func (m *MockRepo) OrderByPaymentIntent(_ context.Context, intentID string) (*Order, error) {
	o, ok := m.ByIntent[intentID]
	if !ok {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

func (m *MockRepo) UpdateStatus(_ context.Context, o *Order, to Status) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.StatusUpdates = append(m.StatusUpdates, to)
	o.Status = to
	return nil
}

// MockPayments implements Payments for testing
type MockPayments struct {
	IntentID     string
	ClientSecret string
	Err          error

	GotAmount   int64
	GotMetadata map[string]string
}

func (m *MockPayments) CreateIntent(_ context.Context, amount int64, metadata map[string]string) (string, string, error) {
	if m.Err != nil {
		return "", "", m.Err
	}
	m.GotAmount = amount
	m.GotMetadata = metadata
	return m.IntentID, m.ClientSecret, nil
}

// stubConfig implements pricing.ConfigStore with a fixed configuration
type stubConfig struct {
	cfg pricing.PaymentConfig
	err error
}

func (s *stubConfig) Get(_ context.Context) (pricing.PaymentConfig, error) {
	return s.cfg, s.err
}

func (s *stubConfig) Update(_ context.Context, cfg pricing.PaymentConfig) (pricing.PaymentConfig, error) {
	s.cfg = cfg
	return s.cfg, nil
}
