package admin

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"aurelia_back_end/internal/database"
	"aurelia_back_end/internal/models"
	"aurelia_back_end/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// CreateBanner crée une bannière du carrousel avec son image (multipart).
func CreateBanner(c *gin.Context) {
	title := c.PostForm("title")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Titre requis"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image requise"})
		return
	}

	imageURL, err := services.UploadImage(c.Request.Context(), "banners", file)
	if err != nil {
		log.Printf("❌ Erreur upload image bannière: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur upload image"})
		return
	}

	position, _ := strconv.Atoi(c.PostForm("position"))
	banner := models.Banner{
		ID:        gocql.UUID(uuid.New()),
		Title:     title,
		Subtitle:  c.PostForm("subtitle"),
		ImageURL:  imageURL,
		LinkURL:   c.PostForm("link_url"),
		Position:  position,
		IsActive:  c.PostForm("is_active") != "false",
		CreatedAt: time.Now(),
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query(
		`INSERT INTO banners (banner_id, title, subtitle, image_url, link_url, position, is_active, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		banner.ID, banner.Title, banner.Subtitle, banner.ImageURL, banner.LinkURL,
		banner.Position, banner.IsActive, banner.CreatedAt,
	).WithContext(c.Request.Context()).Exec(); err != nil {
		log.Printf("❌ Erreur insertion bannière: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création bannière"})
		return
	}

	log.Printf("✅ Bannière créée: %s", banner.Title)
	c.JSON(http.StatusCreated, banner)
}

// UpdateBanner modifie les champs texte/position/actif d'une bannière.
func UpdateBanner(c *gin.Context) {
	bannerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID bannière invalide"})
		return
	}

	var req struct {
		Title    *string `json:"title"`
		Subtitle *string `json:"subtitle"`
		LinkURL  *string `json:"link_url"`
		Position *int    `json:"position"`
		IsActive *bool   `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	id := gocql.UUID(bannerUUID)
	var banner models.Banner
	if err := session.Query(
		`SELECT banner_id, title, subtitle, image_url, link_url, position, is_active, created_at FROM banners WHERE banner_id = ?`, id,
	).WithContext(c.Request.Context()).Scan(
		&banner.ID, &banner.Title, &banner.Subtitle, &banner.ImageURL, &banner.LinkURL,
		&banner.Position, &banner.IsActive, &banner.CreatedAt,
	); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Bannière introuvable"})
		return
	}

	if req.Title != nil {
		banner.Title = *req.Title
	}
	if req.Subtitle != nil {
		banner.Subtitle = *req.Subtitle
	}
	if req.LinkURL != nil {
		banner.LinkURL = *req.LinkURL
	}
	if req.Position != nil {
		banner.Position = *req.Position
	}
	if req.IsActive != nil {
		banner.IsActive = *req.IsActive
	}

	if err := session.Query(
		`UPDATE banners SET title = ?, subtitle = ?, link_url = ?, position = ?, is_active = ? WHERE banner_id = ?`,
		banner.Title, banner.Subtitle, banner.LinkURL, banner.Position, banner.IsActive, id,
	).WithContext(c.Request.Context()).Exec(); err != nil {
		log.Printf("❌ Erreur mise à jour bannière: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour bannière"})
		return
	}

	c.JSON(http.StatusOK, banner)
}

// DeleteBanner supprime une bannière du carrousel.
func DeleteBanner(c *gin.Context) {
	bannerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID bannière invalide"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query(`DELETE FROM banners WHERE banner_id = ?`, gocql.UUID(bannerUUID)).
		WithContext(c.Request.Context()).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression bannière"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
