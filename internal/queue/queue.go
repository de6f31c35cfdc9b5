package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/diretoriaja/portal/internal/util"
	"github.com/diretoriaja/portal/pkg/logger"

	"github.com/rabbitmq/amqp091-go"
)

// ColetaQueue receives collection job requests.
const ColetaQueue = "coleta_queue"

// Init dials RabbitMQ from the RABBITMQ_* variables. It returns an error
// instead of exiting so the API can run without a broker.
func Init() (*amqp091.Connection, error) {
	user := util.GetEnvString("RABBITMQ_USER", "guest")
	pass := util.GetEnvString("RABBITMQ_PASSWORD", "guest")
	host := util.GetEnv("RABBITMQ_HOST")
	port := util.GetEnvString("RABBITMQ_PORT", "5672")
	if host == "" {
		return nil, fmt.Errorf("RABBITMQ_HOST is not set")
	}

	connURL := fmt.Sprintf(
		"amqp://%s:%s@%s:%s/",
		user,
		pass,
		host,
		port,
	)

	conn, err := amqp091.Dial(connURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	return conn, nil
}

// SetupQueues declares every queue with its dead-letter and delayed retry
// companions.
func SetupQueues(ch *amqp091.Channel, queueNames []string) error {
	for _, name := range queueNames {
		_, err := ch.QueueDeclare(
			name,
			true,  // durable
			false, // autoDelete
			false, // exclusive
			false, // noWait
			nil,   // args
		)
		if err != nil {
			return fmt.Errorf("declare %s: %w", name, err)
		}

		dlqName := name + "_dlq"
		_, err = ch.QueueDeclare(
			dlqName,
			true,
			false,
			false,
			false,
			nil,
		)
		if err != nil {
			return fmt.Errorf("declare %s: %w", dlqName, err)
		}

		retryName := name + "_retry"
		_, err = ch.QueueDeclare(
			retryName,
			true,
			false,
			false,
			false,
			amqp091.Table{
				"x-message-ttl":             int32(10000),
				"x-dead-letter-exchange":    "",
				"x-dead-letter-routing-key": name,
			},
		)
		if err != nil {
			return fmt.Errorf("declare %s: %w", retryName, err)
		}

		logger.Debug("[Queue] Declared", "queue", name)
	}

	return nil
}

// Publisher sends one persistent message to a named queue.
type Publisher interface {
	Publish(ctx context.Context, queueName, correlationID string, data []byte) error
}

// ChannelPublisher publishes on a single AMQP channel.
type ChannelPublisher struct {
	ch *amqp091.Channel
}

func NewChannelPublisher(ch *amqp091.Channel) *ChannelPublisher {
	return &ChannelPublisher{ch: ch}
}

func (p *ChannelPublisher) Publish(ctx context.Context, queueName, correlationID string, data []byte) error {
	return PublishFIFO(ctx, p.ch, queueName, correlationID, data)
}

func PublishFIFO(ctx context.Context, ch *amqp091.Channel, queueName, correlationID string, data []byte) error {
	q, err := ch.QueueDeclare(
		queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	publishing := amqp091.Publishing{
		ContentType:   "application/json",
		CorrelationId: correlationID,
		Body:          data,
		DeliveryMode:  amqp091.Persistent,
		Timestamp:     time.Now(),
	}

	return ch.PublishWithContext(
		ctx,
		"",
		q.Name,
		false,
		false,
		publishing,
	)
}
