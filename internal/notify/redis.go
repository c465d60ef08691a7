package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const publishTimeout = 2 * time.Second

// Redis publishes events to the per-broker channel "broker:<id>" over Redis
// pub/sub. Publishing happens off the request goroutine; errors are logged
// and dropped.
type Redis struct {
	client *redis.Client
	log    *zap.Logger
}

func NewRedis(client *redis.Client, log *zap.Logger) *Redis {
	return &Redis{client: client, log: log}
}

// Channel returns the pub/sub channel name for a broker.
func Channel(brokerID string) string {
	return "broker:" + brokerID
}

func (r *Redis) Notify(ctx context.Context, brokerID string, ev Event) {
	if brokerID == "" {
		return
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		r.log.Error("notify: marshal event", zap.Error(err))
		return
	}
	// Detach from the request context so an already-finished request does not
	// cancel the publish.
	go func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
		defer cancel()
		if err := r.client.Publish(ctx, Channel(brokerID), payload).Err(); err != nil {
			r.log.Warn("notify: publish failed",
				zap.String("channel", Channel(brokerID)),
				zap.String("entity", ev.Entity),
				zap.Error(err))
		}
	}()
}

func (r *Redis) Close() error {
	return r.client.Close()
}
