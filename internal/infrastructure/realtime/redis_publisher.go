package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	appstock "github.com/jhoicas/stock-management-api/internal/application/stock"
)

var _ appstock.RealtimePublisher = (*RedisPublisher)(nil)

// RedisPublisher publica actualizaciones del dashboard por Redis pub/sub.
// Los clientes del dashboard se suscriben al canal y refrescan en vivo.
type RedisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher construye el publicador y verifica la conexión.
func NewRedisPublisher(ctx context.Context, addr, password string, db int) (*RedisPublisher, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("conectar a redis: %w", err)
	}
	return &RedisPublisher{client: client}, nil
}

// Publish serializa el payload como JSON y lo publica en el canal.
func (p *RedisPublisher) Publish(ctx context.Context, topic string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("serializar payload: %w", err)
	}
	if err := p.client.Publish(ctx, topic, data).Err(); err != nil {
		return fmt.Errorf("publicar en %s: %w", topic, err)
	}
	return nil
}

// Close cierra la conexión con Redis.
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
