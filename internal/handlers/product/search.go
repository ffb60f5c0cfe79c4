package product

import (
	"log"
	"net/http"

	"aurelia_back_end/internal/services"

	"github.com/gin-gonic/gin"
)

// SearchProducts cherche dans l'index Elasticsearch (nom, description, tags).
func SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Paramètre q requis"})
		return
	}

	results, err := services.SearchProducts(query)
	if err != nil {
		log.Printf("❌ Erreur recherche Elastic: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur recherche"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results, "count": len(results)})
}
