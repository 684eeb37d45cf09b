package radio

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/dreamora/fsradio/internal/logging"
)

// Connection lifecycle states. Only the worker goroutine writes them.
const (
	stateDisconnected int32 = iota
	stateConnecting
	stateConnected
)

const requestQueueDepth = 16

// Service is the serialized front end for one receiver. Every piece of
// device work, connects and disconnects included, funnels through a single
// worker goroutine with a FIFO queue, so no two transport calls are ever in
// flight at once and a connect can never overlap a command. Any number of
// goroutines may call into a Service concurrently; each call blocks until
// its turn on the worker completes.
type Service struct {
	dial   Dialer
	logger *slog.Logger

	queue   chan *request
	quit    chan struct{}
	stopped chan struct{}
	closing sync.Once

	state atomic.Int32

	// sess is owned exclusively by the worker goroutine and is nil
	// whenever state != stateConnected.
	sess *session
}

type request struct {
	run  func() error
	done chan error
}

// Option configures a Service.
type Option func(*Service)

// WithLogger routes the service's connection and command logging. The
// default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService starts the worker goroutine and returns a disconnected
// service. The dialer decides how candidate URLs become transports; pass
// fsapi.Dial to talk to real devices. Close must be called to stop the
// worker.
func NewService(dial Dialer, opts ...Option) *Service {
	s := &Service{
		dial:    dial,
		logger:  logging.NewNop(),
		queue:   make(chan *request, requestQueueDepth),
		quit:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	go s.run()
	return s
}

// run is the worker loop. It drains the queue one request at a time and is
// the only goroutine that touches s.sess or writes s.state.
func (s *Service) run() {
	defer close(s.stopped)
	for {
		// Once Close fires, no queued request starts.
		select {
		case <-s.quit:
			s.clear()
			return
		default:
		}
		select {
		case <-s.quit:
			s.clear()
			return
		case req := <-s.queue:
			req.done <- req.run()
		}
	}
}

// clear drops the session record. Worker goroutine only.
func (s *Service) clear() {
	s.sess = nil
	s.state.Store(stateDisconnected)
}

// submit queues one operation and waits for its result. A cancelled context
// abandons only the wait: once queued, the operation still runs to
// completion on the worker in its original position.
func (s *Service) submit(ctx context.Context, run func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	req := &request{run: run, done: make(chan error, 1)}
	select {
	case s.queue <- req:
	case <-s.stopped:
		return ErrServiceClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-req.done:
		return err
	case <-s.stopped:
		// The worker may have finished the request just before stopping.
		select {
		case err := <-req.done:
			return err
		default:
		}
		return ErrServiceClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Connect resolves cfg.Address into candidate URLs and tries each in order
// until one dials and answers the probe. Any previous session is discarded
// before the first attempt, so a failed reconnect leaves the service
// cleanly disconnected rather than holding a stale session.
func (s *Service) Connect(ctx context.Context, cfg ConnectConfig) (ConnectedInfo, error) {
	var info ConnectedInfo
	err := s.submit(ctx, func() error {
		s.sess = nil
		s.state.Store(stateConnecting)
		sess, err := establish(ctx, s.dial, cfg, s.logger)
		if err != nil {
			s.state.Store(stateDisconnected)
			return err
		}
		s.sess = sess
		s.state.Store(stateConnected)
		s.logger.Info("connected to receiver",
			"session", sess.id, "url", sess.url, "name", sess.name)
		info = sess.info()
		return nil
	})
	if err != nil {
		return ConnectedInfo{}, err
	}
	return info, nil
}

// Disconnect drops the active session. It is idempotent and never fails. A
// command already executing on the worker completes first, because the
// disconnect queues behind it like any other operation.
func (s *Service) Disconnect(ctx context.Context) error {
	return s.submit(ctx, func() error {
		if s.sess != nil {
			s.logger.Info("disconnected from receiver",
				"session", s.sess.id, "url", s.sess.url)
		}
		s.clear()
		return nil
	})
}

// IsConnected reports whether a probed session is currently active. It
// reads state only and performs no device I/O.
func (s *Service) IsConnected() bool {
	return s.state.Load() == stateConnected
}

// Close stops the worker permanently. Queued and future operations fail
// with ErrServiceClosed; an operation already executing completes first.
// Close is idempotent.
func (s *Service) Close() error {
	s.closing.Do(func() {
		close(s.quit)
	})
	<-s.stopped
	return nil
}

// command runs one guarded device call on the worker. The guard fails fast
// here, before anything is queued, and is re-checked on the worker against
// the loop-owned session in case a queued disconnect cleared it in the
// meantime.
func (s *Service) command(ctx context.Context, op string, call func(Transport) error) error {
	if !s.IsConnected() {
		return ErrNotConnected
	}
	return s.submit(ctx, func() error {
		sess := s.sess
		if sess == nil {
			return ErrNotConnected
		}
		if err := call(sess.transport); err != nil {
			s.logger.Warn("device command failed", "op", op, "err", err)
			return &CallError{Op: op, Err: err}
		}
		return nil
	})
}

// FriendlyName fetches the device's display name.
func (s *Service) FriendlyName(ctx context.Context) (string, error) {
	var name string
	err := s.command(ctx, "get friendly name", func(t Transport) error {
		var err error
		name, err = t.FriendlyName(ctx)
		return err
	})
	return name, err
}

// Power reports whether the device is switched on.
func (s *Service) Power(ctx context.Context) (bool, error) {
	var on bool
	err := s.command(ctx, "get power", func(t Transport) error {
		var err error
		on, err = t.Power(ctx)
		return err
	})
	return on, err
}

// SetPower switches the device on or off.
func (s *Service) SetPower(ctx context.Context, on bool) error {
	return s.command(ctx, "set power", func(t Transport) error {
		return t.SetPower(ctx, on)
	})
}

// Volume fetches the current volume level.
func (s *Service) Volume(ctx context.Context) (int, error) {
	var level int
	err := s.command(ctx, "get volume", func(t Transport) error {
		var err error
		level, err = t.Volume(ctx)
		return err
	})
	return level, err
}

// SetVolume sets the volume level.
func (s *Service) SetVolume(ctx context.Context, level int) error {
	return s.command(ctx, "set volume", func(t Transport) error {
		return t.SetVolume(ctx, level)
	})
}

// Modes fetches the device's available mode list.
func (s *Service) Modes(ctx context.Context) ([]Mode, error) {
	var modes []Mode
	err := s.command(ctx, "list modes", func(t Transport) error {
		var err error
		modes, err = t.Modes(ctx)
		return err
	})
	return modes, err
}

// SetMode switches the device to the mode with the given key.
func (s *Service) SetMode(ctx context.Context, key string) error {
	return s.command(ctx, "set mode", func(t Transport) error {
		return t.SetMode(ctx, key)
	})
}

// Presets fetches the stored station list for the current mode.
func (s *Service) Presets(ctx context.Context) ([]Preset, error) {
	var presets []Preset
	err := s.command(ctx, "list presets", func(t Transport) error {
		var err error
		presets, err = t.Presets(ctx)
		return err
	})
	return presets, err
}

// RecallPreset starts playback of the stored station with the given key.
func (s *Service) RecallPreset(ctx context.Context, key string) error {
	return s.command(ctx, "recall preset", func(t Transport) error {
		return t.RecallPreset(ctx, key)
	})
}
