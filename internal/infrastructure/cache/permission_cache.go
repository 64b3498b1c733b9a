// Package cache implementa la caché de filas de permiso sobre Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lop-gin/nexus-backoffice/internal/application/ports"
	"github.com/lop-gin/nexus-backoffice/internal/domain/entity"
	"github.com/lop-gin/nexus-backoffice/pkg/config"
)

var _ ports.PermissionCache = (*PermissionCache)(nil)

// Un hash por rol (campo = module_id) para que InvalidateRole sea un solo DEL, y una clave
// con la generación del rol. La etiqueta {roleID} deja ambas en el mismo slot de Redis Cluster.
const keyPrefix = "nexus:perm:"

// setIfGeneration escribe el campo solo si la generación del rol no cambió desde el Get.
var setIfGeneration = redis.NewScript(`
local gen = redis.call('GET', KEYS[2])
if not gen then gen = '0' end
if gen ~= ARGV[1] then return 0 end
redis.call('HSET', KEYS[1], ARGV[2], ARGV[3])
redis.call('PEXPIRE', KEYS[1], ARGV[4])
return 1
`)

// PermissionCache caché read-through de permisos por rol.
type PermissionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewClient abre el cliente Redis y verifica la conexión.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// NewPermissionCache construye la caché. ttl <= 0 usa 5 minutos.
func NewPermissionCache(client *redis.Client, ttl time.Duration) *PermissionCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &PermissionCache{client: client, ttl: ttl}
}

// entry distingue "no hay fila" (Permission nil) de un fallo de caché.
type entry struct {
	Permission *entity.Permission `json:"permission"`
}

func roleKey(roleID string) string {
	return keyPrefix + "{" + roleID + "}"
}

func genKey(roleID string) string {
	return roleKey(roleID) + ":gen"
}

// Get busca la fila (rol, módulo) y la generación vigente del rol.
func (c *PermissionCache) Get(ctx context.Context, roleID, moduleID string) (*entity.Permission, bool, int64, error) {
	pipe := c.client.Pipeline()
	field := pipe.HGet(ctx, roleKey(roleID), moduleID)
	gen := pipe.Get(ctx, genKey(roleID))
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, false, 0, fmt.Errorf("cache get %s/%s: %w", roleID, moduleID, err)
	}

	var generation int64
	if n, err := gen.Int64(); err == nil {
		generation = n
	} else if !errors.Is(err, redis.Nil) {
		return nil, false, 0, fmt.Errorf("cache generation %s: %w", roleID, err)
	}

	val, err := field.Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, generation, nil
	}
	if err != nil {
		return nil, false, 0, fmt.Errorf("cache get %s/%s: %w", roleID, moduleID, err)
	}
	var e entry
	if err := json.Unmarshal([]byte(val), &e); err != nil {
		return nil, false, 0, fmt.Errorf("cache decode: %w", err)
	}
	return e.Permission, true, generation, nil
}

// Set guarda la fila (o su ausencia) y renueva el TTL del hash, si la generación sigue siendo gen.
func (c *PermissionCache) Set(ctx context.Context, roleID, moduleID string, gen int64, perm *entity.Permission) error {
	data, err := json.Marshal(entry{Permission: perm})
	if err != nil {
		return fmt.Errorf("marshal value: %w", err)
	}
	keys := []string{roleKey(roleID), genKey(roleID)}
	args := []any{strconv.FormatInt(gen, 10), moduleID, data, c.ttl.Milliseconds()}
	if err := setIfGeneration.Run(ctx, c.client, keys, args...).Err(); err != nil {
		return fmt.Errorf("cache set %s/%s: %w", roleID, moduleID, err)
	}
	return nil
}

// InvalidateRole elimina todas las filas cacheadas del rol y avanza su generación.
func (c *PermissionCache) InvalidateRole(ctx context.Context, roleID string) error {
	pipe := c.client.TxPipeline()
	pipe.Incr(ctx, genKey(roleID))
	pipe.Del(ctx, roleKey(roleID))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache invalidate %s: %w", roleID, err)
	}
	return nil
}
