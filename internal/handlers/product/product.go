package product

import (
	"log"
	"net/http"
	"time"

	"aurelia_back_end/internal/cache"
	"aurelia_back_end/internal/database"
	"aurelia_back_end/internal/models"
	"aurelia_back_end/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// CreateProduct crée un produit du catalogue (admin). Le prix arrive en
// centimes — un prix flottant est refusé par le binding.
func CreateProduct(c *gin.Context) {
	var req struct {
		Name              string   `json:"name" binding:"required"`
		Description       string   `json:"description"`
		Price             *int64   `json:"price" binding:"required"`
		Stock             int      `json:"stock"`
		LowStockThreshold int      `json:"low_stock_threshold"`
		SKU               string   `json:"sku"`
		Tags              []string `json:"tags"`
		IsActive          *bool    `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}
	if *req.Price < 0 || req.Stock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prix et stock doivent être positifs"})
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	p := models.Product{
		ID:                gocql.UUID(uuid.New()),
		Name:              req.Name,
		Description:       req.Description,
		Price:             *req.Price,
		Stock:             req.Stock,
		LowStockThreshold: req.LowStockThreshold,
		SKU:               req.SKU,
		Tags:              req.Tags,
		IsActive:          isActive,
		CreatedAt:         time.Now(),
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query(
		`INSERT INTO products (product_id, name, description, price, stock, low_stock_threshold, sku, image_urls, tags, is_active, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.Price, p.Stock, p.LowStockThreshold, p.SKU,
		p.ImageURLs, p.Tags, p.IsActive, p.CreatedAt,
	).WithContext(c.Request.Context()).Exec(); err != nil {
		log.Printf("❌ Erreur insertion produit: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création produit"})
		return
	}

	services.IndexProduct(p)

	log.Printf("✅ Produit créé: %s (%d centimes)", p.Name, p.Price)
	c.JSON(http.StatusCreated, p)
}

// GetProducts liste les produits actifs du catalogue.
func GetProducts(c *gin.Context) {
	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(
		`SELECT product_id, name, description, price, stock, low_stock_threshold, sku, image_urls, tags, is_active, created_at, updated_at FROM products`,
	).WithContext(c.Request.Context()).Iter()

	var products []models.Product
	var p models.Product
	for iter.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.LowStockThreshold,
		&p.SKU, &p.ImageURLs, &p.Tags, &p.IsActive, &p.CreatedAt, &p.UpdatedAt) {
		if p.IsActive {
			products = append(products, p)
		}
	}

	if err := iter.Close(); err != nil {
		log.Printf("❌ Erreur lecture produits: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}

// GetProductByID retourne un produit (cache Redis puis ScyllaDB).
func GetProductByID(c *gin.Context) {
	p, err := cache.GetProductFromCache(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdateProduct modifie un produit (admin). Patch partiel : seuls les champs
// fournis changent.
func UpdateProduct(c *gin.Context) {
	productUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	var req struct {
		Name        *string   `json:"name"`
		Description *string   `json:"description"`
		Price       *int64    `json:"price"`
		Tags        *[]string `json:"tags"`
		IsActive    *bool     `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if req.Price != nil && *req.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prix négatif refusé"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	id := gocql.UUID(productUUID)
	var p models.Product
	if err := session.Query(
		`SELECT product_id, name, description, price, stock, low_stock_threshold, sku, image_urls, tags, is_active, created_at FROM products WHERE product_id = ?`, id,
	).WithContext(c.Request.Context()).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.LowStockThreshold,
		&p.SKU, &p.ImageURLs, &p.Tags, &p.IsActive, &p.CreatedAt,
	); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Tags != nil {
		p.Tags = *req.Tags
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	now := time.Now()
	if err := session.Query(
		`UPDATE products SET name = ?, description = ?, price = ?, tags = ?, is_active = ?, updated_at = ? WHERE product_id = ?`,
		p.Name, p.Description, p.Price, p.Tags, p.IsActive, now, id,
	).WithContext(c.Request.Context()).Exec(); err != nil {
		log.Printf("❌ Erreur mise à jour produit: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour produit"})
		return
	}
	p.UpdatedAt = &now

	cache.InvalidateProduct(c.Request.Context(), p.ID.String())
	if p.IsActive {
		services.IndexProduct(p)
	} else {
		services.RemoveProductFromIndex(p.ID.String())
	}

	c.JSON(http.StatusOK, p)
}

// DeleteProduct désactive un produit (soft delete) pour ne pas casser les
// snapshots des commandes existantes.
func DeleteProduct(c *gin.Context) {
	productUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	id := gocql.UUID(productUUID)
	if err := session.Query(
		`UPDATE products SET is_active = ?, updated_at = ? WHERE product_id = ?`,
		false, time.Now(), id,
	).WithContext(c.Request.Context()).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression produit"})
		return
	}

	cache.InvalidateProduct(c.Request.Context(), id.String())
	services.RemoveProductFromIndex(id.String())

	log.Printf("🗑️ Produit désactivé: %s", id)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
