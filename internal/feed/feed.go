// Package feed streams a dinner's action events to a socket.io server so they
// can be watched live. The feed is best effort: a slow or broken connection
// drops events instead of slowing the philosophers down.
package feed

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/To0nsa/philo/internal/actionlog"
	"github.com/To0nsa/philo/internal/ctxlog"
)

const (
	// DefaultEvent is the socket.io event name actions are emitted under.
	DefaultEvent = "action"
	// DefaultBuffer is how many events may wait for the connection.
	DefaultBuffer = 1024
	// DefaultConnectTimeout bounds the initial connection.
	DefaultConnectTimeout = 5 * time.Second
)

// Options configures a feed connection.
type Options struct {
	URL                string
	Namespace          string
	Event              string
	Buffer             int
	ConnectTimeout     time.Duration
	InsecureSkipVerify bool
}

func (o Options) withDefaults() Options {
	if o.Namespace == "" {
		o.Namespace = "/"
	}
	if o.Event == "" {
		o.Event = DefaultEvent
	}
	if o.Buffer <= 0 {
		o.Buffer = DefaultBuffer
	}
	if o.ConnectTimeout <= 0 {
		o.ConnectTimeout = DefaultConnectTimeout
	}
	return o
}

// conn is the part of a socket.io client the publisher needs.
type conn interface {
	Emit(event string, args ...any) error
	Close()
}

type socketConn struct {
	io *socket.Socket
}

func (c socketConn) Emit(event string, args ...any) error { return c.io.Emit(event, args...) }
func (c socketConn) Close()                               { c.io.Disconnect() }

// Publisher is an actionlog.Sink that forwards events to a socket.io server.
type Publisher struct {
	runID  string
	event  string
	conn   conn
	logger *slog.Logger

	queue   chan actionlog.Event
	dropped atomic.Int64
	done    chan struct{}
	once    sync.Once
}

func newPublisher(ctx context.Context, c conn, runID string, o Options) *Publisher {
	p := &Publisher{
		runID:  runID,
		event:  o.Event,
		conn:   c,
		logger: ctxlog.FromContext(ctx).With("sink", "feed", "run", runID),
		queue:  make(chan actionlog.Event, o.Buffer),
		done:   make(chan struct{}),
	}
	go p.forward()
	return p
}

// Dial connects to the socket.io server described by opts and returns a
// Publisher tagging every event with runID.
func Dial(ctx context.Context, runID string, opts Options) (*Publisher, error) {
	o := opts.withDefaults()
	logger := ctxlog.FromContext(ctx).With("sink", "feed", "url", o.URL)

	parsedURL, err := url.Parse(o.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("feed URL %q must be absolute", o.URL)
	}

	sopts := socket.DefaultOptions()
	if parsedURL.Path != "" {
		sopts.SetPath(parsedURL.Path)
	}
	if o.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		sopts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	sopts.SetTransports(types.NewSet(transports.WebSocket))

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, sopts)
	io := manager.Socket(o.Namespace, sopts)

	connectChan := make(chan error, 1)
	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("Feed connected.", "sid", io.Id())
		notifyConnect(connectChan, nil)
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err := fmt.Errorf("connect_error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		notifyConnect(connectChan, err)
	})

	logger.Debug("Connecting feed...")
	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection: %w", ctx.Err())
	case <-time.After(o.ConnectTimeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %s waiting for socket.io connection", o.ConnectTimeout)
	}

	return newPublisher(ctx, socketConn{io: io}, runID, o), nil
}

// notifyConnect reports the first connection result; later ones are dropped
// so a library callback never blocks.
func notifyConnect(ch chan<- error, err error) {
	select {
	case ch <- err:
	default:
	}
}

// Opener returns a function suitable as a session sink opener.
func Opener(opts Options) func(ctx context.Context, runID string) (actionlog.Sink, error) {
	return func(ctx context.Context, runID string) (actionlog.Sink, error) {
		return Dial(ctx, runID, opts)
	}
}

// Publish implements actionlog.Sink. It never blocks; when the buffer is
// full the event is dropped and counted.
func (p *Publisher) Publish(ev actionlog.Event) {
	select {
	case p.queue <- ev:
	default:
		p.dropped.Add(1)
	}
}

// Dropped returns how many events were discarded because the buffer was full.
func (p *Publisher) Dropped() int64 {
	return p.dropped.Load()
}

// Close flushes queued events and disconnects. It is safe to call twice.
func (p *Publisher) Close() error {
	p.once.Do(func() {
		close(p.queue)
		<-p.done
		p.conn.Close()
		if n := p.dropped.Load(); n > 0 {
			p.logger.Warn("Feed dropped events.", "dropped", n)
		}
		p.logger.Debug("Feed closed.")
	})
	return nil
}

func (p *Publisher) forward() {
	defer close(p.done)
	for ev := range p.queue {
		if err := p.conn.Emit(p.event, payload(p.runID, ev)); err != nil {
			p.logger.Warn("Emitting feed event failed.", "error", err)
		}
	}
}

func payload(runID string, ev actionlog.Event) map[string]any {
	m := map[string]any{
		"run_id":     runID,
		"elapsed_ms": ev.Elapsed,
		"action":     ev.Action.String(),
	}
	if ev.Action != actionlog.QuotaReached {
		m["philosopher"] = ev.Actor
	}
	return m
}
