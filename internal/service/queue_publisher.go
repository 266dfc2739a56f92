// Package service provides functions to publish domain events to RabbitMQ.
// Errors are logged and returned so callers can ignore failures without
// interrupting the main request flow.
package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/ecotrack/waste-report-api/internal/queue"
)

// PublishReportSubmitted publishes a ReportSubmittedEvent to the
// "report.submitted" queue. Messages are marked persistent so they survive
// broker restarts.
func PublishReportSubmitted(ctx context.Context, ev queue.ReportSubmittedEvent) error {
	return publish(ctx, "report.submitted", ev)
}

// PublishReportStatusChanged publishes a ReportStatusChangedEvent to the
// "report.status_changed" queue for external consumers (notifications,
// analytics); this service does not consume it itself.
func PublishReportStatusChanged(ctx context.Context, ev queue.ReportStatusChangedEvent) error {
	return publish(ctx, "report.status_changed", ev)
}

// publish dials per call; event volume here is one message per mutation, so
// a held connection is not worth the reconnect bookkeeping.
func publish(ctx context.Context, queueName string, ev interface{}) error {
	conn, err := amqp.Dial(queue.BrokerURL())
	if err != nil {
		zap.L().Warn("rabbitmq: dial failed", zap.Error(err))
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		zap.L().Warn("rabbitmq: channel open failed", zap.Error(err))
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		zap.L().Warn("rabbitmq: queue declare failed", zap.String("queue", queueName), zap.Error(err))
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		zap.L().Warn("rabbitmq: marshal event failed", zap.Error(err))
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queueName, false, false, pub); err != nil {
		zap.L().Warn("rabbitmq: publish failed", zap.String("queue", queueName), zap.Error(err))
		return err
	}
	return nil
}
