package store

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"aurelia_back_end/internal/database"
	"aurelia_back_end/internal/pricing"

	"github.com/gocql/gocql"
)

// La configuration de tarification est une ligne unique dans le keyspace
// orders, identifiée par une clé fixe. La création paresseuse passe par un
// INSERT IF NOT EXISTS pour garantir qu'il n'existe jamais deux lignes,
// même sous lectures concurrentes.
const (
	paymentConfigID       = "default"
	paymentConfigCacheKey = "payment_config"
	paymentConfigCacheTTL = 1 * time.Minute
)

// ScyllaConfigStore implémente pricing.ConfigStore sur ScyllaDB avec un
// cache Redis court. La péremption du cache est acceptable : chaque commande
// fige le total calculé au moment de sa création.
type ScyllaConfigStore struct{}

func NewScyllaConfigStore() *ScyllaConfigStore {
	return &ScyllaConfigStore{}
}

func (s *ScyllaConfigStore) Get(ctx context.Context) (pricing.PaymentConfig, error) {
	var cfg pricing.PaymentConfig

	// 1. Cache Redis
	if data, err := database.Redis.Get(ctx, paymentConfigCacheKey).Result(); err == nil {
		if json.Unmarshal([]byte(data), &cfg) == nil {
			return cfg, nil
		}
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		return cfg, err
	}

	// 2. Lecture ScyllaDB
	err = session.Query(
		`SELECT tax_percent, shipping_fee, free_shipping_threshold FROM payment_config WHERE id = ?`,
		paymentConfigID,
	).WithContext(ctx).Scan(&cfg.TaxPercent, &cfg.ShippingFee, &cfg.FreeShippingThreshold)

	if errors.Is(err, gocql.ErrNotFound) {
		// 3. Création paresseuse des valeurs par défaut (zéro partout).
		def := pricing.DefaultConfig()
		applied, casErr := session.Query(
			`INSERT INTO payment_config (id, tax_percent, shipping_fee, free_shipping_threshold, updated_at)
			 VALUES (?, ?, ?, ?, ?) IF NOT EXISTS`,
			paymentConfigID, def.TaxPercent, def.ShippingFee, def.FreeShippingThreshold, time.Now(),
		).WithContext(ctx).MapScanCAS(map[string]interface{}{})
		if casErr != nil {
			return cfg, casErr
		}
		if applied {
			log.Println("⚙️ Configuration de paiement créée avec les valeurs par défaut")
			cfg = def
		} else {
			// Un écrivain concurrent a gagné la course : on relit sa ligne.
			if err := session.Query(
				`SELECT tax_percent, shipping_fee, free_shipping_threshold FROM payment_config WHERE id = ?`,
				paymentConfigID,
			).WithContext(ctx).Scan(&cfg.TaxPercent, &cfg.ShippingFee, &cfg.FreeShippingThreshold); err != nil {
				return cfg, err
			}
		}
	} else if err != nil {
		return cfg, err
	}

	s.cache(ctx, cfg)
	return cfg, nil
}

// Update remplace les trois champs d'un bloc après validation des bornes.
// Dernier écrivain gagnant : une seule ligne logique, pas de fusion.
func (s *ScyllaConfigStore) Update(ctx context.Context, cfg pricing.PaymentConfig) (pricing.PaymentConfig, error) {
	if err := cfg.Validate(); err != nil {
		return pricing.PaymentConfig{}, err
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		return pricing.PaymentConfig{}, err
	}

	if err := session.Query(
		`UPDATE payment_config SET tax_percent = ?, shipping_fee = ?, free_shipping_threshold = ?, updated_at = ? WHERE id = ?`,
		cfg.TaxPercent, cfg.ShippingFee, cfg.FreeShippingThreshold, time.Now(), paymentConfigID,
	).WithContext(ctx).Exec(); err != nil {
		return pricing.PaymentConfig{}, err
	}

	s.cache(ctx, cfg)
	log.Printf("⚙️ Configuration de paiement mise à jour: TVA %.2f%%, livraison %d, seuil %d",
		cfg.TaxPercent, cfg.ShippingFee, cfg.FreeShippingThreshold)
	return cfg, nil
}

func (s *ScyllaConfigStore) cache(ctx context.Context, cfg pricing.PaymentConfig) {
	if data, err := json.Marshal(cfg); err == nil {
		if err := database.Redis.Set(ctx, paymentConfigCacheKey, data, paymentConfigCacheTTL).Err(); err != nil {
			log.Printf("⚠️ Échec mise en cache config paiement: %v", err)
		}
	}
}
