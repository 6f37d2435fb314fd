package cart

import (
	"context"
	"time"

	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain/repository"
	"github.com/wibodev-id/enterprise-retail-pos-system/pkg/logger"
)

// Sweeper removes expired reservations in the background so abandoned carts
// cannot lock stock away indefinitely. Availability already ignores expired
// rows, so sweep lag is harmless.
type Sweeper struct {
	resRepo  repository.ReservationRepository
	interval time.Duration
	log      *logger.Logger
}

// NewSweeper builds the background sweeper.
func NewSweeper(resRepo repository.ReservationRepository, interval time.Duration, log *logger.Logger) *Sweeper {
	return &Sweeper{resRepo: resRepo, interval: interval, log: log}
}

// Run sweeps on a ticker until the context is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.resRepo.DeleteExpired(ctx, time.Now())
			if err != nil {
				s.log.Warn().Err(err).Msg("reservation sweep failed")
				continue
			}
			if n > 0 {
				s.log.Debug().Int64("swept", n).Msg("expired reservations removed")
			}
		}
	}
}
