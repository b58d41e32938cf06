package mqtt

import (
	"context"
	"fmt"
	"sync"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/nerrad567/pdusim/internal/infrastructure/config"
)

// Client is the simulator's outbound event channel to an MQTT broker.
//
// The simulator only publishes — outlet state, segment actions,
// service events and its own online/offline status. Control always
// arrives over HTTP, so there is no subscription surface. Reconnection
// is handled by paho with the backoff set in buildClientOptions. Safe
// for concurrent use.
type Client struct {
	client  pahomqtt.Client
	options *pahomqtt.ClientOptions
	cfg     config.MQTTConfig

	mu        sync.RWMutex
	connected bool

	// Optional hooks, guarded separately so a slow callback never
	// blocks connection-state reads.
	hookMu       sync.RWMutex
	onConnect    func()
	onDisconnect func(err error)
	logger       Logger
}

// Logger is the subset of logging.Logger the client needs. A nil
// logger silences connection-loss warnings.
type Logger interface {
	Error(msg string, args ...any)
	Warn(msg string, args ...any)
}

// Connect dials the broker, registers the last-will message and
// publishes a retained online status once the session is up.
//
// Parameters:
//   - cfg: MQTT configuration from config.yaml
//
// Returns:
//   - *Client: Connected publisher
//   - error: Wrapped ErrConnectionFailed on timeout or broker refusal
func Connect(cfg config.MQTTConfig) (*Client, error) {
	opts := buildClientOptions(cfg)
	configureLWT(opts, cfg.Broker.ClientID)

	c := &Client{cfg: cfg, options: opts}
	opts.SetOnConnectHandler(func(_ pahomqtt.Client) { c.handleConnect() })
	opts.SetConnectionLostHandler(func(_ pahomqtt.Client, err error) { c.handleDisconnect(err) })

	c.client = pahomqtt.NewClient(opts)
	token := c.client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("%w: timeout after %v", ErrConnectionFailed, connectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	// The OnConnect handler runs asynchronously and may not have fired
	// yet; mark connected here so IsConnected is true on return.
	c.mu.Lock()
	c.connected = true
	c.mu.Unlock()

	return c, nil
}

// handleConnect fires on the initial connection and every reconnect.
func (c *Client) handleConnect() {
	c.mu.Lock()
	c.connected = true
	c.mu.Unlock()

	c.publishOnlineStatus()

	c.hookMu.RLock()
	hook := c.onConnect
	c.hookMu.RUnlock()
	if hook != nil {
		hook()
	}
}

func (c *Client) handleDisconnect(err error) {
	c.mu.Lock()
	c.connected = false
	c.mu.Unlock()

	c.hookMu.RLock()
	logger, hook := c.logger, c.onDisconnect
	c.hookMu.RUnlock()

	if logger != nil {
		logger.Warn("MQTT connection lost", "error", err)
	}
	if hook != nil {
		hook(err)
	}
}

// publishOnlineStatus announces the simulator on the retained system
// status topic, replacing any earlier offline or will message.
func (c *Client) publishOnlineStatus() {
	c.client.Publish(Topics{}.SystemStatus(), byte(c.cfg.QoS), true,
		statusPayload(c.cfg.Broker.ClientID, "online", ""))
}

// Close publishes a graceful offline status, distinguishable from the
// last-will crash message, then disconnects with a quiesce period for
// in-flight publishes. Closing an already-closed client is a no-op.
func (c *Client) Close() error {
	if c.client == nil {
		return nil
	}

	if c.IsConnected() {
		token := c.client.Publish(Topics{}.SystemStatus(), byte(c.cfg.QoS), true,
			statusPayload(c.cfg.Broker.ClientID, "offline", "graceful_shutdown"))
		token.WaitTimeout(publishTimeout)
	}

	c.client.Disconnect(disconnectQuiesce)

	c.mu.Lock()
	c.connected = false
	c.mu.Unlock()
	return nil
}

// HealthCheck reports the connection state, honouring ctx cancellation.
func (c *Client) HealthCheck(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("mqtt health check: %w", err)
	}
	if !c.IsConnected() {
		return ErrNotConnected
	}
	return nil
}

// IsConnected reports whether both this wrapper and the underlying
// paho client consider the session live.
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected && c.client.IsConnected()
}

// SetOnConnect registers a hook run on connect and every reconnect.
func (c *Client) SetOnConnect(hook func()) {
	c.hookMu.Lock()
	c.onConnect = hook
	c.hookMu.Unlock()
}

// SetOnDisconnect registers a hook run when the connection drops.
func (c *Client) SetOnDisconnect(hook func(err error)) {
	c.hookMu.Lock()
	c.onDisconnect = hook
	c.hookMu.Unlock()
}

// SetLogger attaches a logger for connection-loss warnings.
func (c *Client) SetLogger(logger Logger) {
	c.hookMu.Lock()
	c.logger = logger
	c.hookMu.Unlock()
}
