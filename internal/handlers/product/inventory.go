package product

import (
	"log"
	"net/http"
	"time"

	"aurelia_back_end/internal/cache"
	"aurelia_back_end/internal/database"
	"aurelia_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// UpdateStock fixe le stock d'un produit (admin). Valeur absolue, pas de
// delta : le réassort saisit le nouveau comptage.
func UpdateStock(c *gin.Context) {
	productUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	var req struct {
		Stock *int `json:"stock" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if *req.Stock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Stock négatif refusé"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	id := gocql.UUID(productUUID)
	var name string
	if err := session.Query(`SELECT name FROM products WHERE product_id = ?`, id).
		WithContext(c.Request.Context()).Scan(&name); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	if err := session.Query(
		`UPDATE products SET stock = ?, updated_at = ? WHERE product_id = ?`,
		*req.Stock, time.Now(), id,
	).WithContext(c.Request.Context()).Exec(); err != nil {
		log.Printf("❌ Erreur mise à jour stock: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour stock"})
		return
	}

	cache.InvalidateProduct(c.Request.Context(), id.String())

	log.Printf("📦 Stock de %s mis à jour: %d", name, *req.Stock)
	c.JSON(http.StatusOK, gin.H{"success": true, "product_id": id.String(), "stock": *req.Stock})
}

// GetLowStock liste les produits sous leur seuil d'alerte (admin).
func GetLowStock(c *gin.Context) {
	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(
		`SELECT product_id, name, price, stock, low_stock_threshold, is_active FROM products`,
	).WithContext(c.Request.Context()).Iter()

	type lowStockProduct struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		Price     int64  `json:"price"`
		Stock     int    `json:"stock"`
		Threshold int    `json:"low_stock_threshold"`
	}

	var results []lowStockProduct
	var p models.Product
	var id gocql.UUID
	for iter.Scan(&id, &p.Name, &p.Price, &p.Stock, &p.LowStockThreshold, &p.IsActive) {
		if p.IsActive && p.LowStockThreshold > 0 && p.Stock <= p.LowStockThreshold {
			results = append(results, lowStockProduct{
				ID:        id.String(),
				Name:      p.Name,
				Price:     p.Price,
				Stock:     p.Stock,
				Threshold: p.LowStockThreshold,
			})
		}
	}

	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture stocks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": results, "count": len(results)})
}
