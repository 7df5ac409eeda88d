// Package events publishes client mutation events to NATS.
package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/nats-io/nats.go"

	"github.com/fivetwenty-io/billomat/pkg/billomat"
)

// DefaultSubjectPrefix is prepended to every subject.
const DefaultSubjectPrefix = "billomat"

// Message headers.
const (
	EventTypeHeader = "Billomat-Event"
	ResourceHeader  = "Billomat-Resource"
)

const defaultConnectTimeout = 5 * time.Second

// Static errors for err113 compliance.
var (
	ErrNATSURLRequired = errors.New("NATS URL is required")
	ErrNoConnection    = errors.New("no NATS connection")
)

// Conn is the part of *nats.Conn the publisher uses.
type Conn interface {
	PublishMsg(msg *nats.Msg) error
	FlushWithContext(ctx context.Context) error
}

// NATSConfig configures a NATS publisher.
type NATSConfig struct {
	URL           string
	Name          string
	SubjectPrefix string
	Timeout       time.Duration
	// Flush waits for the server to acknowledge every publish.
	Flush bool
}

// NATSPublisher implements billomat.EventPublisher. Events are published as
// JSON on <prefix>.<resource>.<type>, e.g. billomat.invoice-item.created.
type NATSPublisher struct {
	conn   Conn
	close  func()
	prefix string
	flush  bool
}

// NewNATSPublisher connects to the configured server.
func NewNATSPublisher(config *NATSConfig) (*NATSPublisher, error) {
	if config == nil || config.URL == "" {
		return nil, ErrNATSURLRequired
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}

	name := config.Name
	if name == "" {
		name = DefaultSubjectPrefix
	}

	conn, err := nats.Connect(config.URL, nats.Name(name), nats.Timeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS: %w", err)
	}

	publisher := NewPublisher(conn, config.SubjectPrefix, config.Flush)
	publisher.close = conn.Close

	return publisher, nil
}

// NewPublisher publishes on an existing connection. The caller keeps
// ownership of conn.
func NewPublisher(conn Conn, prefix string, flush bool) *NATSPublisher {
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}

	return &NATSPublisher{
		conn:   conn,
		prefix: strings.TrimSuffix(prefix, "."),
		flush:  flush,
	}
}

// Subject returns the subject event is published on.
func (p *NATSPublisher) Subject(event billomat.Event) string {
	return p.prefix + "." + event.Resource + "." + string(event.Type)
}

// Publish implements billomat.EventPublisher.
func (p *NATSPublisher) Publish(ctx context.Context, event billomat.Event) error {
	if p.conn == nil {
		return ErrNoConnection
	}

	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding event: %w", err)
	}

	msg := nats.NewMsg(p.Subject(event))
	msg.Data = data
	msg.Header.Set(EventTypeHeader, string(event.Type))
	msg.Header.Set(ResourceHeader, event.Resource)

	err = p.conn.PublishMsg(msg)
	if err != nil {
		return fmt.Errorf("publishing %s: %w", msg.Subject, err)
	}

	if p.flush {
		err = p.conn.FlushWithContext(ctx)
		if err != nil {
			return fmt.Errorf("flushing %s: %w", msg.Subject, err)
		}
	}

	return nil
}

// Close closes the connection if the publisher opened it.
func (p *NATSPublisher) Close() {
	if p.close != nil {
		p.close()
	}
}

var _ billomat.EventPublisher = (*NATSPublisher)(nil)
