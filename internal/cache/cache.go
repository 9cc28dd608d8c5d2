package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/slot-scheduler/internal/config"
	"github.com/BruksfildServices01/slot-scheduler/internal/dto"
)

func NewClient(cfg *config.Config) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}

	return rdb
}

const availabilityTTL = 30 * time.Second

// Availability guarda o resultado de listagens totalmente filtradas
// (provider + data). Erros de redis viram cache miss, nunca falha de request.
type Availability struct {
	rdb *redis.Client
}

func NewAvailability(rdb *redis.Client) *Availability {
	return &Availability{rdb: rdb}
}

func key(providerID uint, date string) string {
	return fmt.Sprintf("availability:%d:%s", providerID, date)
}

func (a *Availability) Get(ctx context.Context, providerID uint, date string) ([]dto.AvailabilitySetDTO, bool) {
	raw, err := a.rdb.Get(ctx, key(providerID, date)).Result()
	if err != nil {
		if err != redis.Nil {
			zap.L().Debug("availability cache get failed", zap.Error(err))
		}
		return nil, false
	}

	var sets []dto.AvailabilitySetDTO
	if err := json.Unmarshal([]byte(raw), &sets); err != nil {
		return nil, false
	}
	return sets, true
}

func (a *Availability) Set(ctx context.Context, providerID uint, date string, sets []dto.AvailabilitySetDTO) {
	raw, err := json.Marshal(sets)
	if err != nil {
		return
	}
	if err := a.rdb.Set(ctx, key(providerID, date), raw, availabilityTTL).Err(); err != nil {
		zap.L().Debug("availability cache set failed", zap.Error(err))
	}
}

func (a *Availability) Invalidate(ctx context.Context, providerID uint, date string) {
	if err := a.rdb.Del(ctx, key(providerID, date)).Err(); err != nil {
		zap.L().Debug("availability cache invalidate failed", zap.Error(err))
	}
}
