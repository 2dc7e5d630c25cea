package mq

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"blogapi/models"
)

const BlogEventsChannel = "blog-events"

// Emitter announces blog lifecycle events. Emit never fails the caller;
// delivery problems are logged.
type Emitter interface {
	Emit(ctx context.Context, event models.BlogEvent)
}

type RedisEmitter struct {
	conn    *redis.Client
	channel string
}

func NewRedisEmitter(conn *redis.Client, channel string) *RedisEmitter {
	if channel == "" {
		channel = BlogEventsChannel
	}
	return &RedisEmitter{conn: conn, channel: channel}
}

func (e *RedisEmitter) Emit(ctx context.Context, event models.BlogEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("event", event.Event).Msg("Failed to marshal blog event")
		return
	}

	if err := e.conn.Publish(ctx, e.channel, data).Err(); err != nil {
		log.Warn().Err(err).Str("event", event.Event).Str("blogId", event.BlogID).Msg("Failed to publish blog event")
		return
	}
	log.Debug().Str("channel", e.channel).Str("event", event.Event).Str("blogId", event.BlogID).Msg("Blog event published")
}

// Nop drops every event. Used when no Redis is configured.
type Nop struct{}

func (Nop) Emit(context.Context, models.BlogEvent) {}
