package admin

import (
	"log"
	"net/http"

	"aurelia_back_end/internal/database"
	"aurelia_back_end/internal/models"

	"github.com/gin-gonic/gin"
)

// GetAllUsers liste les comptes pour le panneau admin.
func GetAllUsers(c *gin.Context) {
	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT user_id, name, email, role, provider FROM users`).
		WithContext(c.Request.Context()).Iter()

	var users []models.User
	var u models.User
	for iter.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Provider) {
		users = append(users, u)
	}

	if err := iter.Close(); err != nil {
		log.Printf("❌ Erreur lecture utilisateurs: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture utilisateurs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users, "count": len(users)})
}

// UpdateUserRole change le rôle d'un compte ("user" ou "admin").
func UpdateUserRole(c *gin.Context) {
	userID := c.Param("id")

	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if req.Role != "user" && req.Role != "admin" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rôle invalide", "valid_roles": []string{"user", "admin"}})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var existing string
	if err := session.Query(`SELECT user_id FROM users WHERE user_id = ?`, userID).
		WithContext(c.Request.Context()).Scan(&existing); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	if err := session.Query(`UPDATE users SET role = ? WHERE user_id = ?`, req.Role, userID).
		WithContext(c.Request.Context()).Exec(); err != nil {
		log.Printf("❌ Erreur mise à jour rôle: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour rôle"})
		return
	}

	log.Printf("✅ Rôle de %s mis à jour: %s", userID, req.Role)
	c.JSON(http.StatusOK, gin.H{"success": true, "user_id": userID, "role": req.Role})
}
