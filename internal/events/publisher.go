package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/paul-techiesapp/martin-aia/internal/domain"
)

const invitationCompletedQueue = "invitation.completed"

// Publisher pushes domain events onto RabbitMQ for the reward-accrual
// process. The queue is durable and messages are persistent, so accrual
// survives broker restarts. Publish failures are returned to the caller,
// which treats them as best effort.
type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewPublisher dials the broker and declares the queues it publishes to.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp.Dial -> %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("conn.Channel -> %w", err)
	}

	if _, err := channel.QueueDeclare(
		invitationCompletedQueue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("channel.QueueDeclare -> %w", err)
	}

	return &Publisher{
		conn:    conn,
		channel: channel,
	}, nil
}

func (p *Publisher) PublishInvitationCompleted(ctx context.Context, event domain.InvitationCompletedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("json.Marshal -> %w", err)
	}

	err = p.channel.PublishWithContext(ctx,
		"", // default exchange
		invitationCompletedQueue,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		})
	if err != nil {
		return fmt.Errorf("p.channel.PublishWithContext -> %w", err)
	}

	zap.L().Debug("published invitation.completed",
		zap.Uint("invitation_id", event.InvitationID),
		zap.Uint("agent_id", event.AgentID))

	return nil
}

func (p *Publisher) Close() {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}
