package publishers

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/streadway/amqp"
)

// PropertyMessage notifies the search index about a property change.
type PropertyMessage struct {
	Action     string `json:"action"` // "create", "update", "delete"
	PropertyID uint   `json:"property_id"`
}

// PropertyPublisher emits property change events.
type PropertyPublisher interface {
	Publish(action string, propertyID uint) error
	Close() error
}

type rabbitMQPublisher struct {
	connection *amqp.Connection
	channel    *amqp.Channel
	queueName  string
	logger     zerolog.Logger
}

// NewRabbitMQPublisher connects to RabbitMQ and declares the durable queue
// the search service consumes from.
func NewRabbitMQPublisher(rabbitURL, queueName string, logger zerolog.Logger) (PropertyPublisher, error) {
	conn, err := amqp.Dial(rabbitURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if queueName == "" {
		queueName = "properties_queue"
	}

	_, err = ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	logger.Info().Str("queue", queueName).Msg("rabbitmq publisher ready")

	return &rabbitMQPublisher{
		connection: conn,
		channel:    ch,
		queueName:  queueName,
		logger:     logger,
	}, nil
}

// Publish sends a persistent JSON message to the queue.
func (p *rabbitMQPublisher) Publish(action string, propertyID uint) error {
	body, err := json.Marshal(PropertyMessage{Action: action, PropertyID: propertyID})
	if err != nil {
		return fmt.Errorf("failed to marshal property message: %w", err)
	}

	err = p.channel.Publish(
		"",          // exchange
		p.queueName, // routing key
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish property message: %w", err)
	}

	p.logger.Debug().Str("action", action).Uint("property_id", propertyID).Msg("property event published")
	return nil
}

func (p *rabbitMQPublisher) Close() error {
	var errs []error

	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing channel: %w", err))
		}
	}
	if p.connection != nil {
		if err := p.connection.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing connection: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors closing publisher: %v", errs)
	}
	return nil
}
