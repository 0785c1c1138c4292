package poller

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/rmoralesp/jobfit/internal/matcher"
)

// DefaultInterval matches the two second cadence of the web client this tool
// replaces.
const DefaultInterval = 2 * time.Second

// State is the poller position in its lifecycle.
type State int

const (
	// StatePolling means the model is not ready yet and probes continue.
	StatePolling State = iota
	// StateReady is terminal: the loop has stopped and no further probes
	// are issued.
	StateReady
	// StateErrored means the last probe failed. Non-terminal, the next
	// tick retries.
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateErrored:
		return "errored"
	default:
		return "polling"
	}
}

// StatusClient is the probe issued on every tick.
type StatusClient interface {
	GetStatus() (matcher.ModelStatus, error)
}

// Update is emitted to the consumer after every applied probe response.
type Update struct {
	State  State
	Status matcher.ModelStatus
	Err    error
}

// Poller repeatedly probes the model readiness endpoint until it reports
// ready or the context is cancelled.
type Poller struct {
	client   StatusClient
	interval time.Duration
	logger   *zap.Logger
}

func New(client StatusClient, interval time.Duration, logger *zap.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}

	return &Poller{
		client:   client,
		interval: interval,
		logger:   logger,
	}
}

type probeResult struct {
	seq    uint64
	status matcher.ModelStatus
	err    error
}

// Run starts the poll loop and returns its update channel. The channel is
// closed when the loop exits: after the ready transition or on context
// cancellation. Probes may overlap when the service answers slower than the
// interval; only the response to the most recently issued probe may update
// state, responses to superseded probes are discarded.
func (p *Poller) Run(ctx context.Context) <-chan Update {
	updates := make(chan Update, 1)
	go p.loop(ctx, updates)

	return updates
}

func (p *Poller) loop(ctx context.Context, updates chan<- Update) {
	defer close(updates)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	results := make(chan probeResult)
	launch := func(seq uint64) {
		go func() {
			status, err := p.client.GetStatus()
			select {
			case results <- probeResult{seq: seq, status: status, err: err}:
			case <-ctx.Done():
			}
		}()
	}

	emit := func(u Update) bool {
		select {
		case updates <- u:
			return true
		case <-ctx.Done():
			return false
		}
	}

	var seq uint64

	// First probe fires immediately, the ticker drives the rest.
	seq++
	launch(seq)

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			seq++
			launch(seq)

		case res := <-results:
			if res.seq != seq {
				p.logger.Debug("discarding superseded status response",
					zap.Uint64("response_seq", res.seq),
					zap.Uint64("current_seq", seq),
				)
				continue
			}

			if res.err != nil {
				p.logger.Warn("status probe failed", zap.Error(res.err))
				if !emit(Update{State: StateErrored, Status: matcher.StatusUnknown, Err: res.err}) {
					return
				}
				continue
			}

			switch res.status {
			case matcher.StatusReady:
				emit(Update{State: StateReady, Status: res.status})
				return
			case matcher.StatusTraining:
				if !emit(Update{State: StatePolling, Status: res.status}) {
					return
				}
			default:
				// Unrecognized status: keep waiting, no state change.
				p.logger.Debug("ignoring unrecognized model status")
			}
		}
	}
}

// Wait blocks until the service reports readiness. Transient probe failures
// are logged and retried on the next tick.
func (p *Poller) Wait(ctx context.Context) error {
	lastState := State(-1)
	for update := range p.Run(ctx) {
		switch update.State {
		case StateReady:
			p.logger.Info("model is ready")
			return nil
		case StatePolling:
			if update.State != lastState {
				p.logger.Info("model is training, waiting",
					zap.Duration("interval", p.interval),
				)
			}
		case StateErrored:
			// Already logged by the loop.
		}
		lastState = update.State
	}

	return ctx.Err()
}
