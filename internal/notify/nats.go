package notify

import (
	"context"
	stderrors "errors"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/apache/tsfile-website/internal/foundation/errors"
	"github.com/apache/tsfile-website/internal/logfields"
)

const publishTimeout = 5 * time.Second

// NATSPublisher publishes to JetStream when a stream captures the subject and
// falls back to plain core NATS otherwise.
type NATSPublisher struct {
	conn *nats.Conn
	js   jetstream.JetStream
}

// Connect dials the NATS server at url.
func Connect(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("tsfile-site"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(3),
	)
	if err != nil {
		return nil, errors.NewError(errors.CategoryNetwork, "failed to connect to NATS").
			WithCause(err).WithContext("url", url).Retryable().Build()
	}
	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, errors.NewError(errors.CategoryNetwork, "failed to create JetStream context").WithCause(err).Build()
	}
	slog.Debug("Connected to NATS", logfields.URL(url))
	return &NATSPublisher{conn: conn, js: js}, nil
}

func (p *NATSPublisher) Publish(ctx context.Context, subject string, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	_, err := p.js.Publish(ctx, subject, data)
	if err == nil {
		return nil
	}
	if !stderrors.Is(err, jetstream.ErrNoStreamResponse) && !stderrors.Is(err, nats.ErrNoResponders) {
		return errors.NewError(errors.CategoryNetwork, "failed to publish event").
			WithCause(err).WithContext("subject", subject).Build()
	}

	slog.Debug("No stream bound to subject, publishing on core NATS", logfields.Subject(subject))
	if err := p.conn.Publish(subject, data); err != nil {
		return errors.NewError(errors.CategoryNetwork, "failed to publish event").
			WithCause(err).WithContext("subject", subject).Build()
	}
	if err := p.conn.FlushWithContext(ctx); err != nil {
		return errors.NewError(errors.CategoryNetwork, "failed to flush event").
			WithCause(err).WithContext("subject", subject).Build()
	}
	return nil
}

// Close drains pending messages and closes the connection.
func (p *NATSPublisher) Close() error {
	if p.conn == nil {
		return nil
	}
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
		return err
	}
	return nil
}
