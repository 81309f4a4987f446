package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// AlertChannel is the Redis channel critical KPI alerts are published on.
const AlertChannel = "kpi.critical"

// Alert reports a KPI that crossed into the critical tier.
type Alert struct {
	ID         string    `json:"id"`
	MallID     string    `json:"mall_id"`
	KPI        string    `json:"kpi"`
	Tier       string    `json:"tier"`
	Value      float64   `json:"value"`
	DetectedAt time.Time `json:"detected_at"`
}

// AlertPublisher delivers alerts to subscribers.
type AlertPublisher interface {
	Publish(ctx context.Context, alert Alert) error
}

// RedisPublisher publishes alerts as JSON over Redis pub/sub.
type RedisPublisher struct {
	client  redis.UniversalClient
	channel string
}

// NewRedisPublisher builds a publisher on AlertChannel.
func NewRedisPublisher(client redis.UniversalClient) *RedisPublisher {
	return &RedisPublisher{client: client, channel: AlertChannel}
}

// Publish stamps the alert with an id when it has none and sends it.
func (p *RedisPublisher) Publish(ctx context.Context, alert Alert) error {
	if p == nil || p.client == nil {
		return errors.New("alerts: redis client not configured")
	}
	if alert.ID == "" {
		alert.ID = uuid.NewString()
	}
	data, err := json.Marshal(alert)
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, p.channel, data).Err()
}
