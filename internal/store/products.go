package store

import (
	"context"
	"errors"
	"fmt"

	"aurelia_back_end/internal/database"
	"aurelia_back_end/internal/order"

	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// ScyllaCatalog implémente order.Catalog sur le keyspace products.
// La réservation de stock passe par un compare-and-set : on relit le stock
// et on décrémente avec IF stock = ?, pour que deux checkouts concurrents
// ne consomment jamais deux fois les mêmes unités.
type ScyllaCatalog struct{}

func NewScyllaCatalog() *ScyllaCatalog {
	return &ScyllaCatalog{}
}

const casRetries = 5

func (s *ScyllaCatalog) Product(ctx context.Context, productID string) (order.ProductInfo, error) {
	var info order.ProductInfo

	// Un ID mal formé ne matchera jamais une ligne : produit inconnu.
	productUUID, err := uuid.Parse(productID)
	if err != nil {
		return info, order.ErrProductNotFound
	}

	session, err := database.GetProductsSession()
	if err != nil {
		return info, err
	}

	err = session.Query(
		`SELECT name, price, stock, is_active FROM products WHERE product_id = ?`,
		gocql.UUID(productUUID),
	).WithContext(ctx).Scan(&info.Name, &info.Price, &info.Stock, &info.IsActive)
	if errors.Is(err, gocql.ErrNotFound) {
		return info, order.ErrProductNotFound
	}
	if err != nil {
		return info, err
	}

	info.ID = productID
	return info, nil
}

func (s *ScyllaCatalog) Reserve(ctx context.Context, productID string, qty int) error {
	return s.adjustStock(ctx, productID, -qty)
}

func (s *ScyllaCatalog) Release(ctx context.Context, productID string, qty int) error {
	return s.adjustStock(ctx, productID, qty)
}

func (s *ScyllaCatalog) adjustStock(ctx context.Context, productID string, delta int) error {
	productUUID, err := uuid.Parse(productID)
	if err != nil {
		return fmt.Errorf("ID produit invalide: %s", productID)
	}

	session, err := database.GetProductsSession()
	if err != nil {
		return err
	}

	id := gocql.UUID(productUUID)
	for attempt := 0; attempt < casRetries; attempt++ {
		var name string
		var current int
		if err := session.Query(
			`SELECT name, stock FROM products WHERE product_id = ?`, id,
		).WithContext(ctx).Scan(&name, &current); err != nil {
			return err
		}

		next := current + delta
		if next < 0 {
			return &order.InsufficientStockError{
				ProductID: productID,
				Name:      name,
				Available: current,
				Requested: -delta,
			}
		}

		applied, err := session.Query(
			`UPDATE products SET stock = ? WHERE product_id = ? IF stock = ?`,
			next, id, current,
		).WithContext(ctx).MapScanCAS(map[string]interface{}{})
		if err != nil {
			return err
		}
		if applied {
			return nil
		}
		// le stock a bougé entre la lecture et le CAS, on réessaie
	}
	return fmt.Errorf("contention stock sur produit %s, abandon après %d essais", productID, casRetries)
}
