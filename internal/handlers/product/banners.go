package product

import (
	"net/http"
	"sort"

	"aurelia_back_end/internal/database"
	"aurelia_back_end/internal/models"

	"github.com/gin-gonic/gin"
)

// GetBanners retourne les bannières actives du carrousel, triées par position.
func GetBanners(c *gin.Context) {
	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(
		`SELECT banner_id, title, subtitle, image_url, link_url, position, is_active, created_at FROM banners`,
	).WithContext(c.Request.Context()).Iter()

	var banners []models.Banner
	var b models.Banner
	for iter.Scan(&b.ID, &b.Title, &b.Subtitle, &b.ImageURL, &b.LinkURL, &b.Position, &b.IsActive, &b.CreatedAt) {
		if b.IsActive {
			banners = append(banners, b)
		}
	}

	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture bannières"})
		return
	}

	sort.Slice(banners, func(i, j int) bool { return banners[i].Position < banners[j].Position })

	c.JSON(http.StatusOK, gin.H{"banners": banners})
}
