package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Banner est une bannière du carrousel d'accueil, gérée par les admins.
type Banner struct {
	ID        gocql.UUID `json:"id"`
	Title     string     `json:"title"`
	Subtitle  string     `json:"subtitle,omitempty"`
	ImageURL  string     `json:"image_url"`
	LinkURL   string     `json:"link_url,omitempty"`
	Position  int        `json:"position"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
}
