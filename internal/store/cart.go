package store

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"aurelia_back_end/internal/database"
	"aurelia_back_end/internal/models"
)

const cartTTL = 30 * 24 * time.Hour

// RedisCart stocke le panier de chaque utilisateur en JSON sous cart:<user>.
// Chaque écriture publie un événement sur le canal du même nom pour la
// synchronisation WebSocket.
type RedisCart struct{}

func NewRedisCart() *RedisCart {
	return &RedisCart{}
}

func cartKey(userID string) string { return "cart:" + userID }

func (r *RedisCart) Items(ctx context.Context, userID string) ([]models.CartItem, error) {
	data, err := database.Redis.Get(ctx, cartKey(userID)).Result()
	if err != nil || data == "" {
		// clé absente = panier vide
		return nil, nil
	}

	var items []models.CartItem
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *RedisCart) Save(ctx context.Context, userID string, items []models.CartItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	if err := database.Redis.Set(ctx, cartKey(userID), data, cartTTL).Err(); err != nil {
		return err
	}
	r.notify(ctx, userID, "updated")
	return nil
}

func (r *RedisCart) Clear(ctx context.Context, userID string) error {
	if err := database.Redis.Del(ctx, cartKey(userID)).Err(); err != nil {
		return err
	}
	r.notify(ctx, userID, "cleared")
	return nil
}

func (r *RedisCart) notify(ctx context.Context, userID, event string) {
	if err := database.Redis.Publish(ctx, cartKey(userID), event).Err(); err != nil {
		log.Printf("⚠️ Échec publication événement panier %s: %v", event, err)
	}
}
