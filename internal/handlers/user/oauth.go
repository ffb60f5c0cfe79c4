package user

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"aurelia_back_end/internal/database"
	"aurelia_back_end/internal/models"
	"aurelia_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/markbates/goth/gothic"
)

// ================== AUTH SOCIALE (WEB) ==================

// 🔐 GET /api/auth/:provider — démarre le flow OAuth via goth
func BeginAuth(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "aucun provider spécifié"})
		return
	}

	// Mémorise l'URL de retour du front le temps du flow
	if redirectURL := c.Query("redirect_url"); redirectURL != "" {
		database.Redis.Set(context.Background(), "oauth_redirect:"+provider, redirectURL, 10*time.Minute)
	}

	q := c.Request.URL.Query()
	q.Set("provider", provider)
	c.Request.URL.RawQuery = q.Encode()
	gothic.BeginAuthHandler(c.Writer, c.Request)
}

// 🔐 GET /api/auth/:provider/callback
func CallbackAuth(c *gin.Context) {
	provider := c.Param("provider")

	q := c.Request.URL.Query()
	q.Set("provider", provider)
	c.Request.URL.RawQuery = q.Encode()

	gothUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
	if err != nil {
		log.Printf("❌ Erreur OAuth %s: %v", provider, err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentification échouée"})
		return
	}

	user, err := findOrCreateOAuthUser(c.Request.Context(), provider, gothUser.UserID, gothUser.Email, gothUser.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création compte"})
		return
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	ctx := context.Background()
	redirectURI, _ := database.Redis.Get(ctx, "oauth_redirect:"+provider).Result()
	database.Redis.Del(ctx, "oauth_redirect:"+provider)

	if redirectURI == "" {
		redirectURI = os.Getenv("FRONTEND_URL")
		if redirectURI == "" {
			redirectURI = "http://localhost:3000"
		}
	}

	sep := "?"
	if strings.Contains(redirectURI, "?") {
		sep = "&"
	}
	c.Redirect(http.StatusTemporaryRedirect, redirectURI+sep+"token="+url.QueryEscape(token))
}

// findOrCreateOAuthUser rattache le compte social à un compte existant par
// email, ou en crée un nouveau.
func findOrCreateOAuthUser(ctx context.Context, provider, providerID, email, name string) (models.User, error) {
	var user models.User

	session, err := database.GetUsersSession()
	if err != nil {
		return user, err
	}

	email = strings.ToLower(strings.TrimSpace(email))

	var userID string
	err = session.Query(`SELECT user_id FROM users_by_email WHERE email = ?`, email).
		WithContext(ctx).Scan(&userID)
	if err == nil {
		// Compte existant → fusion avec le provider social
		if err := session.Query(
			`SELECT user_id, name, email, role, provider, provider_id FROM users WHERE user_id = ?`, userID,
		).WithContext(ctx).Scan(
			&user.ID, &user.Name, &user.Email, &user.Role, &user.Provider, &user.ProviderID,
		); err != nil {
			return user, err
		}
		if user.Provider != provider {
			session.Query(
				`UPDATE users SET provider = ?, provider_id = ? WHERE user_id = ?`,
				provider, providerID, user.ID,
			).WithContext(ctx).Exec()
			log.Printf("🔄 Compte existant fusionné avec provider %s : %s", provider, email)
			user.Provider = provider
			user.ProviderID = providerID
		}
		return user, nil
	}

	// Nouveau compte OAuth
	user = models.User{
		ID:         uuid.New().String(),
		Name:       name,
		Email:      email,
		Role:       "user",
		Provider:   provider,
		ProviderID: providerID,
	}

	applied, err := session.Query(
		`INSERT INTO users_by_email (email, user_id) VALUES (?, ?) IF NOT EXISTS`,
		email, user.ID,
	).WithContext(ctx).MapScanCAS(map[string]interface{}{})
	if err != nil {
		return user, err
	}
	if !applied {
		// Course perdue : relire le compte gagnant
		if err := session.Query(`SELECT user_id FROM users_by_email WHERE email = ?`, email).
			WithContext(ctx).Scan(&userID); err != nil {
			return user, err
		}
		err = session.Query(
			`SELECT user_id, name, email, role, provider, provider_id FROM users WHERE user_id = ?`, userID,
		).WithContext(ctx).Scan(
			&user.ID, &user.Name, &user.Email, &user.Role, &user.Provider, &user.ProviderID,
		)
		return user, err
	}

	if err := session.Query(
		`INSERT INTO users (user_id, name, email, role, provider, provider_id) VALUES (?, ?, ?, ?, ?, ?)`,
		user.ID, user.Name, user.Email, user.Role, user.Provider, user.ProviderID,
	).WithContext(ctx).Exec(); err != nil {
		return user, err
	}

	log.Printf("🆕 Utilisateur OAuth créé (%s) : %s", provider, email)
	return user, nil
}
