package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"therassist/internal/config"
	"therassist/internal/core/domain"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// Publisher emits upload lifecycle events to JetStream for downstream
// consumers (transcription, insights).
type Publisher struct {
	logger *slog.Logger
	conn   *nats.Conn
	js     jetstream.JetStream
	config config.NATSConfig
}

// NewPublisher connects to NATS and ensures the upload event stream exists
func NewPublisher(ctx context.Context, cfg config.NATSConfig, logger *slog.Logger) (*Publisher, error) {

	opts := []nats.Option{
		nats.Name(cfg.ClientName),
		nats.ReconnectWait(2 * time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			logger.Warn("NATS disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
	}
	conn, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to JetStream: %w", err)
	}

	streamCfg := jetstream.StreamConfig{
		Name:      cfg.StreamName,
		Subjects:  []string{cfg.Subject},
		Retention: jetstream.LimitsPolicy,
	}
	if _, err := js.CreateOrUpdateStream(ctx, streamCfg); err != nil {
		return nil, fmt.Errorf("failed to ensure stream: %w", err)
	}

	return &Publisher{
		conn:   conn,
		js:     js,
		config: cfg,
		logger: logger,
	}, nil
}

// PublishUploadEvent publishes a terminal lifecycle event
func (p *Publisher) PublishUploadEvent(ctx context.Context, event domain.UploadEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal upload event: %w", err)
	}

	if _, err := p.js.Publish(ctx, p.config.Subject, payload); err != nil {
		return fmt.Errorf("failed to publish upload event: %w", err)
	}

	p.logger.Info("upload event published",
		"type", event.Type,
		"upload_id", event.UploadID,
		"recording_id", event.RecordingID,
	)
	return nil
}

// Close graceful shutdown
func (p *Publisher) Close() error {
	if p.conn != nil {
		p.conn.Close()
	}
	return nil
}
