package radio

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// ConnectConfig carries everything one connect attempt needs. Address may
// be a bare IP or hostname, a host:port pair, or a full http(s) URL with or
// without a control path.
type ConnectConfig struct {
	Address string
	PIN     int
	Timeout time.Duration
}

// ConnectedInfo describes the session a successful Connect established.
type ConnectedInfo struct {
	SessionID string
	URL       string
	Name      string
}

// session is the live connection record. It only ever exists fully probed:
// establish returns either a complete session or an error, never a partial
// one.
type session struct {
	id        string
	transport Transport
	url       string
	name      string
}

func (s *session) info() ConnectedInfo {
	return ConnectedInfo{SessionID: s.id, URL: s.url, Name: s.name}
}

// establish walks the candidate list in priority order, dialing and probing
// each until one answers. Individual candidate failures are logged and
// swallowed; only exhaustion of the whole list is an error. The first
// success wins and no later candidate is attempted.
func establish(ctx context.Context, dial Dialer, cfg ConnectConfig, logger *slog.Logger) (*session, error) {
	candidates := Candidates(cfg.Address)
	if len(candidates) == 0 {
		return nil, ErrEmptyAddress
	}

	var lastErr error
	for _, candidate := range candidates {
		transport, err := dial(ctx, candidate, cfg.PIN, cfg.Timeout)
		if err != nil {
			lastErr = err
			logger.Debug("candidate refused connection", "url", candidate, "err", err)
			continue
		}
		name, err := transport.FriendlyName(ctx)
		if err != nil {
			lastErr = err
			logger.Debug("candidate failed probe", "url", candidate, "err", err)
			continue
		}
		return &session{
			id:        uuid.NewString(),
			transport: transport,
			url:       candidate,
			name:      name,
		}, nil
	}
	return nil, &ConnectError{Attempted: candidates, Last: lastErr}
}
