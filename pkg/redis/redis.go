package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/aumugisha-umu/seido-sub006/config"
)

// Client enveloppe du client Redis
// Utilisé pour la liste noire de tokens, le rate limiting et
// l'invalidation des vues mises en cache par les clients
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient ouvre la connexion Redis et vérifie avec un Ping
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connexion Redis: %w", err)
	}

	logger.Info("connexion Redis établie", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── Liste noire de tokens ──

const blacklistPrefix = "token:blacklist:"

// BlacklistToken ajoute un JTI à la liste noire, TTL aligné sur la validité restante
func (c *Client) BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // token déjà expiré
	}
	return c.rdb.Set(ctx, blacklistPrefix+jti, "1", ttl).Err()
}

// IsBlacklisted vérifie si un JTI est en liste noire
func (c *Client) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	n, err := c.rdb.Exists(ctx, blacklistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ── Rate limiting ──

// CheckRateLimit fenêtre fixe par clé : INCR + EXPIRE à la première requête
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	count, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := c.rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(limit), nil
}

// ── Invalidation des vues interventions ──
//
// Les clients composent leurs clés de cache avec un numéro de version par équipe ;
// incrémenter la version invalide d'un coup toutes les listes/détails de l'équipe.

const viewVersionPrefix = "views:interventions:"

// InvalidateInterventionViews incrémente la version de cache des vues d'une équipe
// et supprime la vue détail de l'intervention concernée
func (c *Client) InvalidateInterventionViews(ctx context.Context, teamID, interventionID string) error {
	if err := c.rdb.Incr(ctx, viewVersionPrefix+teamID).Err(); err != nil {
		return err
	}
	return c.rdb.Del(ctx, "views:intervention:"+interventionID).Err()
}

// ViewVersion retourne la version de cache courante des vues d'une équipe
func (c *Client) ViewVersion(ctx context.Context, teamID string) (int64, error) {
	v, err := c.rdb.Get(ctx, viewVersionPrefix+teamID).Int64()
	if err == goredis.Nil {
		return 0, nil
	}
	return v, err
}

// Close ferme la connexion Redis
func (c *Client) Close() error {
	return c.rdb.Close()
}
