package application

import (
	"context"
	"errors"

	"cryptoswap-service/internal/domain"

	"go.uber.org/zap"
)

// LogNotifier writes the swap confirmation to the log.
type LogNotifier struct {
	Log *zap.Logger
}

func (n LogNotifier) SwapCompleted(_ context.Context, s domain.Swap) error {
	log := n.Log
	if log == nil {
		log = zap.NewNop()
	}
	log.Info(domain.SwapConfirmation,
		zap.String("swap_id", s.ID),
		zap.String("pair", string(s.Pair)),
		zap.String("primary", s.AmountA),
		zap.String("secondary", s.AmountB),
	)
	return nil
}

// Notifiers fans a confirmation out to every notifier and joins their errors.
type Notifiers []Notifier

func (ns Notifiers) SwapCompleted(ctx context.Context, s domain.Swap) error {
	var errs []error
	for _, n := range ns {
		if err := n.SwapCompleted(ctx, s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
