package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cryptoswap-service/internal/domain"

	"github.com/redis/go-redis/v9"
)

const SwapCompletedChan = "swap_completed"

type SwapMessage struct {
	ID          string    `json:"id"`
	Pair        string    `json:"pair"`
	Primary     string    `json:"primary"`
	Secondary   string    `json:"secondary"`
	Rate        float64   `json:"rate"`
	CompletedAt time.Time `json:"completed_at"`
	Message     string    `json:"message"`
}

// Notifier publishes swap confirmations on SwapCompletedChan.
type Notifier struct {
	Client *redis.Client
}

func NewNotifier(client *redis.Client) *Notifier { return &Notifier{Client: client} }

func (n *Notifier) SwapCompleted(ctx context.Context, s domain.Swap) error {
	msg := SwapMessage{
		ID:        s.ID,
		Pair:      string(s.Pair),
		Primary:   s.AmountA,
		Secondary: s.AmountB,
		Rate:      s.Rate,
		Message:   domain.SwapConfirmation,
	}
	if s.CompletedAt != nil {
		msg.CompletedAt = s.CompletedAt.UTC()
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	if err := n.Client.Publish(ctx, SwapCompletedChan, payload).Err(); err != nil {
		return fmt.Errorf("redisstore.SwapCompleted: %w", err)
	}
	return nil
}
