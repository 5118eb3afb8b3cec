// Package poller drives the background refresh of the order board. The
// backend has no push channel, so new orders only appear by asking again.
package poller

import (
	"context"
	"log/slog"
	"time"

	"mise/config"
	"mise/internal/delivery"
	"mise/internal/domain/lifecycle"
	"mise/internal/store"
	"mise/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type Params struct {
	fx.In
	fx.Lifecycle

	Config    *config.Config
	Logger    *slog.Logger
	SessionUC usecase.SessionUsecase
	OrderUC   usecase.OrderUsecase
}

type poller struct {
	enabled   bool
	interval  time.Duration
	logger    *slog.Logger
	sessionUC usecase.SessionUsecase
	orderUC   usecase.OrderUsecase
	stop      chan struct{}
}

// New builds the polling loop as a managed delivery.
func New(params Params) delivery.Delivery {
	p := &poller{
		enabled:   params.Config.Poll.Enabled,
		interval:  params.Config.Poll.Interval,
		logger:    params.Logger,
		sessionUC: params.SessionUC,
		orderUC:   params.OrderUC,
		stop:      make(chan struct{}),
	}

	params.Append(fx.Hook{
		OnStop: func(context.Context) error {
			close(p.stop)

			return nil
		},
	})

	return p
}

// Serve ticks at the configured interval until stopped. Each tick refreshes
// the order board; ticks that land while a fetch is already in flight share
// its result instead of issuing another request.
func (p *poller) Serve(ctx context.Context) error {
	if !p.enabled {
		p.logger.Info("Order polling disabled")

		return nil
	}
	p.logger.Info("Starting order polling", slog.Duration("interval", p.interval))

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.tick(ctx)
		case <-p.stop:
			return nil
		case <-ctx.Done():
			return errors.WithStack(ctx.Err())
		}
	}
}

func (p *poller) tick(ctx context.Context) {
	if _, ok := p.sessionUC.Current(); !ok {
		return
	}

	tickCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	if _, err := p.orderUC.Orders(tickCtx, true); err != nil {
		// A logout racing the tick discards the result; nothing to report.
		if errors.Is(err, store.ErrSuperseded) {
			return
		}
		p.logger.Warn("background order refresh failed", "error", err)
	}
}
