package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

// Clave única del cache: ids de productos aprobados del listado público.
const publicProductIDsKey = "public_product_ids"

var _ usecase.ProductCache = (*ProductCache)(nil)

// ProductCache cache best-effort sobre Redis. Nunca es fuente de verdad:
// cualquier fallo del backend se trata como miss y el listado se reconstruye
// desde la DB; la ventana de desfase queda acotada por el TTL o por la
// invalidación explícita de cada mutación.
type ProductCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewProductCache construye el cache con el cliente Redis y el TTL configurado.
func NewProductCache(client *redis.Client, ttl time.Duration, log *logger.Logger) *ProductCache {
	return &ProductCache{client: client, ttl: ttl, log: log}
}

// GetApprovedIDs devuelve (ids, true) en hit; (nil, false) en miss o error.
func (c *ProductCache) GetApprovedIDs(ctx context.Context) ([]string, bool) {
	val, err := c.client.Get(ctx, publicProductIDsKey).Result()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Msg("cache de productos: fallo en GET, se trata como miss")
		}
		return nil, false
	}
	var ids []string
	if err := json.Unmarshal([]byte(val), &ids); err != nil {
		c.log.Warn().Err(err).Msg("cache de productos: payload corrupto, se trata como miss")
		return nil, false
	}
	return ids, true
}

// SetApprovedIDs repuebla la clave con el TTL configurado. Best effort.
func (c *ProductCache) SetApprovedIDs(ctx context.Context, ids []string) {
	data, err := json.Marshal(ids)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, publicProductIDsKey, data, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Msg("cache de productos: fallo en SET")
	}
}

// Invalidate elimina la clave; se invoca tras cada mutación de producto.
func (c *ProductCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, publicProductIDsKey).Err(); err != nil {
		c.log.Warn().Err(err).Msg("cache de productos: fallo al invalidar")
	}
}
