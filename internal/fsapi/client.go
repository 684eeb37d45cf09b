package fsapi

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dreamora/fsradio/internal/radio"
)

// Control nodes used by the client. The device exposes a much larger tree;
// this is the subset fsradio drives.
const (
	nodeFriendlyName = "netRemote.sys.info.friendlyName"
	nodePower        = "netRemote.sys.power"
	nodeVolume       = "netRemote.sys.audio.volume"
	nodeMode         = "netRemote.sys.mode"
	nodeValidModes   = "netRemote.sys.caps.validModes"
	nodeNavState     = "netRemote.nav.state"
	nodeNavPresets   = "netRemote.nav.presets"
	nodeSelectPreset = "netRemote.nav.action.selectPreset"
)

const (
	defaultUserAgent = "fsradio/0.1"
	defaultTimeout   = 2 * time.Second
	listMaxItems     = 65536
)

// Ensure Dial satisfies the service's dialer contract at compile time.
var _ radio.Dialer = Dial

// Ensure Client implements Transport at compile time.
var _ radio.Transport = (*Client)(nil)

// Client talks to one receiver over its HTTP control interface. All
// requests carry the PIN and, once a session exists, the session id the
// device handed out.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	pin       string
	sid       string
	userAgent string
}

// Dial builds a client for one candidate base URL and opens a device
// session against it. A candidate that is unreachable, answers with
// something other than the control protocol, or rejects the PIN fails
// here, which is what lets the connect loop move on to the next candidate.
func Dial(ctx context.Context, baseURL string, pin int, timeout time.Duration) (radio.Transport, error) {
	c, err := NewClient(baseURL, pin, timeout)
	if err != nil {
		return nil, err
	}
	if err := c.createSession(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// NewClient builds a Client for the given base URL without touching the
// network. A zero or negative timeout falls back to the default.
func NewClient(baseURL string, pin int, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: timeout,
		},
		pin:       strconv.Itoa(pin),
		userAgent: defaultUserAgent,
	}, nil
}

// createSession asks the device for a session id. The id is required on
// every subsequent request.
func (c *Client) createSession(ctx context.Context) error {
	params := url.Values{}
	params.Set("pin", c.pin)
	env, err := c.do(ctx, c.baseURL.JoinPath("CREATE_SESSION"), params)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	if env.Status != statusOK {
		return fmt.Errorf("create session: device returned status %s", env.Status)
	}
	if env.SessionID == "" {
		return fmt.Errorf("create session: response carried no session id")
	}
	c.sid = env.SessionID
	return nil
}

// FriendlyName fetches the device's display name.
func (c *Client) FriendlyName(ctx context.Context) (string, error) {
	env, err := c.get(ctx, nodeFriendlyName)
	if err != nil {
		return "", err
	}
	return env.text(nodeFriendlyName)
}

// Power reports whether the device is switched on.
func (c *Client) Power(ctx context.Context) (bool, error) {
	env, err := c.get(ctx, nodePower)
	if err != nil {
		return false, err
	}
	n, err := env.number(nodePower)
	if err != nil {
		return false, err
	}
	return n != 0, nil
}

// SetPower switches the device on or off.
func (c *Client) SetPower(ctx context.Context, on bool) error {
	v := "0"
	if on {
		v = "1"
	}
	return c.set(ctx, nodePower, v)
}

// Volume fetches the current volume level.
func (c *Client) Volume(ctx context.Context) (int, error) {
	env, err := c.get(ctx, nodeVolume)
	if err != nil {
		return 0, err
	}
	return env.number(nodeVolume)
}

// SetVolume sets the volume level. Range checking is left to the device,
// which clamps or rejects values outside its capabilities.
func (c *Client) SetVolume(ctx context.Context, level int) error {
	return c.set(ctx, nodeVolume, strconv.Itoa(level))
}

// Modes fetches the device's mode list.
func (c *Client) Modes(ctx context.Context) ([]radio.Mode, error) {
	items, err := c.list(ctx, nodeValidModes)
	if err != nil {
		return nil, err
	}
	modes := make([]radio.Mode, 0, len(items))
	for _, item := range items {
		modes = append(modes, radio.Mode{
			Key:   item.Key,
			ID:    item.field("id"),
			Label: item.field("label"),
		})
	}
	return modes, nil
}

// SetMode switches the device to the mode with the given key.
func (c *Client) SetMode(ctx context.Context, key string) error {
	return c.set(ctx, nodeMode, key)
}

// Presets fetches the stored station list for the current mode.
func (c *Client) Presets(ctx context.Context) ([]radio.Preset, error) {
	if err := c.enableNav(ctx); err != nil {
		return nil, err
	}
	items, err := c.list(ctx, nodeNavPresets)
	if err != nil {
		return nil, err
	}
	presets := make([]radio.Preset, 0, len(items))
	for _, item := range items {
		presets = append(presets, radio.Preset{
			Name: item.field("name"),
			Key:  item.Key,
		})
	}
	return presets, nil
}

// RecallPreset starts playback of the stored station with the given key.
func (c *Client) RecallPreset(ctx context.Context, key string) error {
	if err := c.enableNav(ctx); err != nil {
		return err
	}
	return c.set(ctx, nodeSelectPreset, key)
}

// enableNav raises the nav state. Nav tree nodes answer FS_NODE_BLOCKED
// until this is done.
func (c *Client) enableNav(ctx context.Context) error {
	return c.set(ctx, nodeNavState, "1")
}

func (c *Client) get(ctx context.Context, node string) (*envelope, error) {
	env, err := c.do(ctx, c.baseURL.JoinPath("GET", node), c.params())
	if err != nil {
		return nil, err
	}
	if env.Status != statusOK {
		return nil, fmt.Errorf("node %s returned status %s", node, env.Status)
	}
	return env, nil
}

func (c *Client) set(ctx context.Context, node, value string) error {
	params := c.params()
	params.Set("value", value)
	env, err := c.do(ctx, c.baseURL.JoinPath("SET", node), params)
	if err != nil {
		return err
	}
	if env.Status != statusOK {
		return fmt.Errorf("node %s returned status %s", node, env.Status)
	}
	return nil
}

func (c *Client) list(ctx context.Context, node string) ([]listItem, error) {
	params := c.params()
	params.Set("maxItems", strconv.Itoa(listMaxItems))
	env, err := c.do(ctx, c.baseURL.JoinPath("LIST_GET_NEXT", node, "-1"), params)
	if err != nil {
		return nil, err
	}
	switch env.Status {
	case statusOK:
		return env.Items, nil
	case statusListEnd:
		return nil, nil
	default:
		return nil, fmt.Errorf("node %s returned status %s", node, env.Status)
	}
}

func (c *Client) params() url.Values {
	params := url.Values{}
	params.Set("pin", c.pin)
	if c.sid != "" {
		params.Set("sid", c.sid)
	}
	return params
}

func (c *Client) do(ctx context.Context, reqURL *url.URL, params url.Values) (*envelope, error) {
	u := *reqURL
	u.RawQuery = params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/xml")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("device %s returned status %d", u.Path, resp.StatusCode)
	}
	var env envelope
	decoder := xml.NewDecoder(resp.Body)
	if err := decoder.Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &env, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("base url is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
