package radio

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
)

// fakeTransport is an in-memory Transport that records per-op call counts
// and a start/end event log, and can inject failures or block individual
// ops behind a gate channel.
type fakeTransport struct {
	mu          sync.Mutex
	calls       map[string]int
	events      []string
	inFlight    int
	maxInFlight int

	name    string
	power   bool
	volume  int
	modes   []Mode
	presets []Preset

	lastPower  bool
	lastVolume int
	lastMode   string
	lastPreset string

	errs  map[string]error
	gates map[string]chan struct{}
}

func newFakeTransport(name string) *fakeTransport {
	return &fakeTransport{
		name:  name,
		calls: map[string]int{},
		errs:  map[string]error{},
		gates: map[string]chan struct{}{},
	}
}

func (f *fakeTransport) begin(op string) {
	f.mu.Lock()
	f.calls[op]++
	f.inFlight++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	f.events = append(f.events, op+":start")
	gate := f.gates[op]
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
}

func (f *fakeTransport) end(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inFlight--
	f.events = append(f.events, op+":end")
	return f.errs[op]
}

func (f *fakeTransport) failOn(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[op] = err
}

func (f *fakeTransport) gateOn(op string) chan struct{} {
	gate := make(chan struct{})
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gates[op] = gate
	return gate
}

func (f *fakeTransport) callCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeTransport) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

func (f *fakeTransport) eventLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.events...)
}

func (f *fakeTransport) maxConcurrent() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.maxInFlight
}

func (f *fakeTransport) resetCounts() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = map[string]int{}
	f.events = nil
}

func (f *fakeTransport) FriendlyName(ctx context.Context) (string, error) {
	f.begin("friendlyName")
	if err := f.end("friendlyName"); err != nil {
		return "", err
	}
	return f.name, nil
}

func (f *fakeTransport) Power(ctx context.Context) (bool, error) {
	f.begin("power")
	if err := f.end("power"); err != nil {
		return false, err
	}
	return f.power, nil
}

func (f *fakeTransport) SetPower(ctx context.Context, on bool) error {
	f.begin("setPower")
	if err := f.end("setPower"); err != nil {
		return err
	}
	f.mu.Lock()
	f.lastPower = on
	f.mu.Unlock()
	return nil
}

func (f *fakeTransport) Volume(ctx context.Context) (int, error) {
	f.begin("volume")
	if err := f.end("volume"); err != nil {
		return 0, err
	}
	return f.volume, nil
}

func (f *fakeTransport) SetVolume(ctx context.Context, level int) error {
	f.begin("setVolume")
	if err := f.end("setVolume"); err != nil {
		return err
	}
	f.mu.Lock()
	f.lastVolume = level
	f.mu.Unlock()
	return nil
}

func (f *fakeTransport) Modes(ctx context.Context) ([]Mode, error) {
	f.begin("modes")
	if err := f.end("modes"); err != nil {
		return nil, err
	}
	return f.modes, nil
}

func (f *fakeTransport) SetMode(ctx context.Context, key string) error {
	f.begin("setMode")
	if err := f.end("setMode"); err != nil {
		return err
	}
	f.mu.Lock()
	f.lastMode = key
	f.mu.Unlock()
	return nil
}

func (f *fakeTransport) Presets(ctx context.Context) ([]Preset, error) {
	f.begin("presets")
	if err := f.end("presets"); err != nil {
		return nil, err
	}
	return f.presets, nil
}

func (f *fakeTransport) RecallPreset(ctx context.Context, key string) error {
	f.begin("recallPreset")
	if err := f.end("recallPreset"); err != nil {
		return err
	}
	f.mu.Lock()
	f.lastPreset = key
	f.mu.Unlock()
	return nil
}

type dialOutcome struct {
	transport Transport
	err       error
}

// fakeDialer scripts dial outcomes per candidate URL and records every dial
// in order. Dialing a URL with no scripted outcome fails the test's intent
// loudly via an error.
type fakeDialer struct {
	mu       sync.Mutex
	dials    []string
	outcomes map[string]dialOutcome
}

func newFakeDialer() *fakeDialer {
	return &fakeDialer{outcomes: map[string]dialOutcome{}}
}

func (d *fakeDialer) accept(url string, t Transport) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.outcomes[url] = dialOutcome{transport: t}
}

func (d *fakeDialer) refuse(url string, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.outcomes[url] = dialOutcome{err: err}
}

func (d *fakeDialer) dial(ctx context.Context, baseURL string, pin int, timeout time.Duration) (Transport, error) {
	d.mu.Lock()
	d.dials = append(d.dials, baseURL)
	out, ok := d.outcomes[baseURL]
	d.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("unscripted dial of %s", baseURL)
	}
	if out.err != nil {
		return nil, out.err
	}
	return out.transport, nil
}

func (d *fakeDialer) dialed() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.dials...)
}

func (d *fakeDialer) dialCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.dials)
}

// newConnectedService builds a service already connected to a fake device
// on the default first candidate. The probe's friendlyName call is cleared
// from the counts so tests see only their own traffic.
func newConnectedService(t *testing.T) (*Service, *fakeTransport) {
	t.Helper()

	ft := newFakeTransport("Kitchen Radio")
	dialer := newFakeDialer()
	dialer.accept("http://192.168.0.153:80/device", ft)

	svc := NewService(dialer.dial)
	t.Cleanup(func() { svc.Close() })

	cfg := ConnectConfig{Address: "192.168.0.153", PIN: 1234, Timeout: time.Second}
	if _, err := svc.Connect(context.Background(), cfg); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	ft.resetCounts()
	return svc, ft
}

// waitForEvent polls the fake transport's event log until the event shows
// up or the deadline passes.
func waitForEvent(t *testing.T, ft *fakeTransport, event string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		for _, e := range ft.eventLog() {
			if e == event {
				return
			}
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for event %q", event)
}
