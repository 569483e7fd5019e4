package consumers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/streadway/amqp"

	"roomrental/search-api/services"
)

// propertyMessage mirrors the payload published by the properties service.
type propertyMessage struct {
	Action     string `json:"action"`
	PropertyID uint   `json:"property_id"`
}

// RabbitMQConsumer keeps the search index in sync with the properties
// catalog by applying create/update/delete events from the queue.
type RabbitMQConsumer struct {
	connection *amqp.Connection
	channel    *amqp.Channel
	queueName  string
	service    services.SearchService
	logger     zerolog.Logger
}

// NewRabbitMQConsumer connects, declares the queue and returns a consumer
// ready to Start.
func NewRabbitMQConsumer(rabbitURL, queueName string, service services.SearchService, logger zerolog.Logger) (*RabbitMQConsumer, error) {
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

	// Declaration matches the publisher side so either end can start first.
	_, err = ch.QueueDeclare(queueName, true, false, false, false, nil)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	return &RabbitMQConsumer{
		connection: conn,
		channel:    ch,
		queueName:  queueName,
		service:    service,
		logger:     logger,
	}, nil
}

// Start begins consuming. Messages are processed one at a time and acked
// manually; transient failures are requeued.
func (c *RabbitMQConsumer) Start() error {
	if err := c.channel.Qos(1, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	msgs, err := c.channel.Consume(c.queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.logger.Info().Str("queue", c.queueName).Msg("consuming property events")

	go func() {
		for msg := range msgs {
			c.processMessage(msg)
		}
	}()

	return nil
}

func (c *RabbitMQConsumer) processMessage(msg amqp.Delivery) {
	var event propertyMessage
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		c.logger.Error().Err(err).Msg("discarding malformed property event")
		msg.Nack(false, false)
		return
	}

	if event.PropertyID == 0 {
		c.logger.Error().Str("action", event.Action).Msg("discarding property event without id")
		msg.Nack(false, false)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var err error
	switch event.Action {
	case "create", "update":
		err = c.reindex(ctx, event.PropertyID)
	case "delete":
		err = c.service.DeleteProperty(ctx, event.PropertyID)
	default:
		c.logger.Error().Str("action", event.Action).Msg("discarding property event with unknown action")
		msg.Nack(false, false)
		return
	}

	if err != nil {
		c.logger.Error().Err(err).
			Str("action", event.Action).
			Uint("property_id", event.PropertyID).
			Msg("failed to process property event, requeueing")
		msg.Nack(false, true)
		return
	}

	c.logger.Info().
		Str("action", event.Action).
		Uint("property_id", event.PropertyID).
		Msg("property event processed")

	if err := msg.Ack(false); err != nil {
		c.logger.Error().Err(err).Msg("failed to ack property event")
	}
}

func (c *RabbitMQConsumer) reindex(ctx context.Context, propertyID uint) error {
	property, err := c.service.FetchPropertyFromAPI(ctx, propertyID)
	if err != nil {
		return fmt.Errorf("failed to fetch property: %w", err)
	}
	return c.service.IndexProperty(ctx, *property)
}

// Close shuts down the channel and connection.
func (c *RabbitMQConsumer) Close() error {
	var errs []error

	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing channel: %w", err))
		}
	}
	if c.connection != nil {
		if err := c.connection.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing connection: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors closing RabbitMQ consumer: %v", errs)
	}
	return nil
}
