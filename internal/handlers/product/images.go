package product

import (
	"log"
	"net/http"

	"aurelia_back_end/internal/cache"
	"aurelia_back_end/internal/database"
	"aurelia_back_end/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// UploadProductImage ajoute une image MinIO à un produit (admin).
func UploadProductImage(c *gin.Context) {
	productUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image requise"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	id := gocql.UUID(productUUID)
	var imageURLs []string
	if err := session.Query(`SELECT image_urls FROM products WHERE product_id = ?`, id).
		WithContext(c.Request.Context()).Scan(&imageURLs); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	url, err := services.UploadImage(c.Request.Context(), "products", file)
	if err != nil {
		log.Printf("❌ Erreur upload image produit: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur upload image"})
		return
	}

	imageURLs = append(imageURLs, url)
	if err := session.Query(`UPDATE products SET image_urls = ? WHERE product_id = ?`, imageURLs, id).
		WithContext(c.Request.Context()).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour produit"})
		return
	}

	cache.InvalidateProduct(c.Request.Context(), id.String())

	c.JSON(http.StatusOK, gin.H{"image_url": url, "image_urls": imageURLs})
}
