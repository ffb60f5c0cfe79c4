package cache

import (
	"context"
	"encoding/json"
	"time"

	"aurelia_back_end/internal/database"
	"aurelia_back_end/internal/models"

	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

const ProductCacheTTL = 10 * time.Minute

// GetProductFromCache récupère un produit depuis Redis, ou ScyllaDB en cas
// de cache miss (avec remplissage du cache).
func GetProductFromCache(ctx context.Context, productID string) (*models.Product, error) {
	key := "product:" + productID

	// 1. Essayer le cache Redis
	if data, err := database.Redis.Get(ctx, key).Result(); err == nil {
		var p models.Product
		if json.Unmarshal([]byte(data), &p) == nil {
			return &p, nil
		}
	}

	// 2. Récupérer de ScyllaDB
	productUUID, err := uuid.Parse(productID)
	if err != nil {
		return nil, err
	}

	session, err := database.GetProductsSession()
	if err != nil {
		return nil, err
	}

	var p models.Product
	err = session.Query(
		`SELECT product_id, name, description, price, stock, low_stock_threshold, sku, image_urls, tags, is_active, created_at, updated_at
		 FROM products WHERE product_id = ?`, gocql.UUID(productUUID),
	).WithContext(ctx).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.LowStockThreshold,
		&p.SKU, &p.ImageURLs, &p.Tags, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	// 3. Remplir le cache
	if data, err := json.Marshal(p); err == nil {
		database.Redis.Set(ctx, key, data, ProductCacheTTL)
	}

	return &p, nil
}

// InvalidateProduct purge le cache d'un produit après modification.
func InvalidateProduct(ctx context.Context, productID string) {
	database.Redis.Del(ctx, "product:"+productID)
}
