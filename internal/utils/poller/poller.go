package poller

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

type Poller struct {
	interval   time.Duration
	timeout    time.Duration
	quit       chan struct{}
	stopOnce   sync.Once
	done       chan struct{}
	pollMethod func(ctx context.Context) error
}

// NewPoller runs pollMethod every interval. When timeout is positive every invocation
// gets a context that expires after timeout.
func NewPoller(interval, timeout time.Duration, pollMethod func(ctx context.Context) error) *Poller {
	return &Poller{
		interval:   interval,
		timeout:    timeout,
		quit:       make(chan struct{}),
		done:       make(chan struct{}),
		pollMethod: pollMethod,
	}
}

// Start blocks until ctx is cancelled or Stop is called. When runImmediately is set
// the first invocation happens right away instead of after the first tick.
// Start must be called at most once.
func (p *Poller) Start(ctx context.Context, runImmediately bool) {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	log.Info().Msgf("Starting poller with interval %s", p.interval)

	if runImmediately {
		p.invoke(ctx)
	}

	for {
		select {
		case <-ticker.C:
			// select picks randomly when a tick and a stop are both ready
			if p.stopped(ctx) {
				log.Info().Msg("Poller stopped")
				return
			}
			p.invoke(ctx)
		case <-ctx.Done():
			log.Info().Msg("Poller stopped due to context cancellation")
			return
		case <-p.quit:
			log.Info().Msg("Poller stopped")
			return
		}
	}
}

// Stop is safe to call more than once and after ctx was cancelled
func (p *Poller) Stop() {
	p.stopOnce.Do(func() {
		close(p.quit)
	})
}

// Wait blocks until Start returned, that is until the running invocation finished
func (p *Poller) Wait() {
	<-p.done
}

func (p *Poller) stopped(ctx context.Context) bool {
	if ctx.Err() != nil {
		return true
	}
	select {
	case <-p.quit:
		return true
	default:
		return false
	}
}

func (p *Poller) invoke(ctx context.Context) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	log.Debug().Msg("Executing poll method")
	if err := p.pollMethod(ctx); err != nil {
		log.Error().Err(err).Msg("Error polling")
	} else {
		log.Debug().Msg("Poll method executed successfully")
	}
}
