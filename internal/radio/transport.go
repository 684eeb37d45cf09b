package radio

import (
	"context"
	"time"
)

// Mode is one entry of the device-reported mode list (internet radio, DAB,
// FM, and so on). Key is the token SetMode expects. ID is the firmware's
// short identifier and Label the human-readable name; either may be what a
// saved mode preference refers to, so both travel with the mode.
type Mode struct {
	Key   string
	ID    string
	Label string
}

// Preset is one stored station slot. Key is the token RecallPreset expects.
// Name may be empty for slots the device reports as unassigned.
type Preset struct {
	Name string
	Key  string
}

// Transport is the device capability the service drives. fsapi.Client
// implements it over HTTP; tests substitute fakes. FriendlyName doubles as
// the post-dial probe that confirms a candidate URL really speaks the
// device protocol.
type Transport interface {
	FriendlyName(ctx context.Context) (string, error)
	Power(ctx context.Context) (bool, error)
	SetPower(ctx context.Context, on bool) error
	Volume(ctx context.Context) (int, error)
	SetVolume(ctx context.Context, level int) error
	Modes(ctx context.Context) ([]Mode, error)
	SetMode(ctx context.Context, key string) error
	Presets(ctx context.Context) ([]Preset, error)
	RecallPreset(ctx context.Context, key string) error
}

// Dialer opens a Transport against one candidate base URL. Implementations
// authenticate with the PIN and bound every device call by timeout.
type Dialer func(ctx context.Context, baseURL string, pin int, timeout time.Duration) (Transport, error)
