package render

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync/atomic"

	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/vk/mazewalk/internal/ctxlog"
	"github.com/vk/mazewalk/internal/grid"
)

// ErrBroadcastURL is returned for a broadcast URL without scheme or host.
var ErrBroadcastURL = errors.New("render: invalid broadcast URL")

// DefaultBroadcastEvent is the socket.io event frames are emitted on.
const DefaultBroadcastEvent = "frame"

// BroadcastOptions configures a Broadcaster.
type BroadcastOptions struct {
	URL                string
	Namespace          string
	Event              string
	RunID              string
	InsecureSkipVerify bool
}

// Broadcaster emits every frame to a socket.io server so a remote viewer can
// follow the search. Frames produced before the connection is up are dropped
// rather than buffered.
type Broadcaster struct {
	client    *socket.Socket
	event     string
	runID     string
	logger    *slog.Logger
	connected atomic.Bool
	frames    int
	dropped   int
}

// NewBroadcaster starts connecting to the socket.io server at opts.URL.
// The connection is established in the background.
func NewBroadcaster(ctx context.Context, opts BroadcastOptions) (*Broadcaster, error) {
	parsedURL, err := url.Parse(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBroadcastURL, err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("%w: %q needs a scheme and host", ErrBroadcastURL, opts.URL)
	}

	namespace := opts.Namespace
	if namespace == "" {
		namespace = "/"
	}
	event := opts.Event
	if event == "" {
		event = DefaultBroadcastEvent
	}

	logger := ctxlog.FromContext(ctx).With("renderer", "socketio", "url", opts.URL, "namespace", namespace)

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	sopts := socket.DefaultOptions()
	sopts.SetPath(parsedURL.Path)
	if opts.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		sopts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	sopts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(baseURL, sopts)
	client := manager.Socket(namespace, sopts)

	b := &Broadcaster{
		client: client,
		event:  event,
		runID:  opts.RunID,
		logger: logger,
	}

	client.On(types.EventName("connect"), func(...any) {
		b.connected.Store(true)
		logger.Info("Broadcast connected", "sid", client.Id())
	})
	client.On(types.EventName("disconnect"), func(...any) {
		b.connected.Store(false)
		logger.Debug("Broadcast disconnected")
	})
	client.On(types.EventName("connect_error"), func(errs ...any) {
		if len(errs) > 0 {
			logger.Warn("Broadcast connection failed", "error", errs[0])
		}
	})

	client.Connect()
	return b, nil
}

// Frame emits g if the connection is up.
func (b *Broadcaster) Frame(g *grid.Grid) {
	b.frames++
	if !b.connected.Load() {
		b.dropped++
		return
	}
	if err := b.client.Emit(b.event, FramePayload(b.runID, b.frames, g)); err != nil {
		b.logger.Debug("Dropping frame that could not be emitted.", "frame", b.frames, "error", err)
	}
}

// Close disconnects from the server.
func (b *Broadcaster) Close() error {
	b.logger.Debug("Disconnecting broadcast client", "frames", b.frames, "dropped", b.dropped)
	b.client.Disconnect()
	return nil
}

// FramePayload is the event body sent for one frame.
func FramePayload(runID string, frame int, g *grid.Grid) map[string]any {
	rows := make([]string, g.Rows())
	for r := range rows {
		cells := g.Row(r)
		parts := make([]string, len(cells))
		for i, s := range cells {
			parts[i] = s.String()
		}
		rows[r] = strings.Join(parts, " ")
	}
	return map[string]any{
		"run_id": runID,
		"frame":  frame,
		"rows":   rows,
	}
}
