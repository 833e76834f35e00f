package services

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"signquiz-backend/internal/models"
)

func UpdatesChannel(userID string) string {
	return "user_updates:" + userID
}

// Notifier publishes WebSocket messages for a user over Redis pub/sub.
type Notifier struct {
	redis *redis.Client
}

func NewNotifier(redisClient *redis.Client) *Notifier {
	return &Notifier{redis: redisClient}
}

func (n *Notifier) PublishUpdate(ctx context.Context, userID string, msg models.WSMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return n.redis.Publish(ctx, UpdatesChannel(userID), data).Err()
}
