package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/aulasync/aulasync-server/internal/models"
)

const (
	routingKeyTareaPublicada    = "tarea.publicada"
	routingKeyEntregaCalificada = "entrega.calificada"
)

// EventPublisher publica los eventos del ciclo de vida (tarea publicada,
// entrega calificada) para consumidores externos. El servicio funciona sin
// broker: si la conexion falla al arrancar se sigue con un publisher nulo.
type EventPublisher interface {
	PublishTareaPublicada(ctx context.Context, event *models.TareaPublicadaEvent) error
	PublishEntregaCalificada(ctx context.Context, event *models.EntregaCalificadaEvent) error
	Close() error
}

type rabbitMQPublisher struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
	logger   zerolog.Logger
}

func NewRabbitMQPublisher(url, exchange string, logger zerolog.Logger) (EventPublisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	logger.Info().
		Str("exchange", exchange).
		Msg("Connected to RabbitMQ")

	return &rabbitMQPublisher{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
		logger:   logger,
	}, nil
}

func (c *rabbitMQPublisher) PublishTareaPublicada(ctx context.Context, event *models.TareaPublicadaEvent) error {
	if err := c.publish(ctx, routingKeyTareaPublicada, event); err != nil {
		return err
	}

	c.logger.Info().
		Str("tarea_id", event.TareaID).
		Str("clase_id", event.ClaseID).
		Msg("Tarea publicada event published")

	return nil
}

func (c *rabbitMQPublisher) PublishEntregaCalificada(ctx context.Context, event *models.EntregaCalificadaEvent) error {
	if err := c.publish(ctx, routingKeyEntregaCalificada, event); err != nil {
		return err
	}

	c.logger.Info().
		Str("entrega_id", event.EntregaID).
		Str("alumno_id", event.AlumnoID).
		Msg("Entrega calificada event published")

	return nil
}

func (c *rabbitMQPublisher) publish(ctx context.Context, routingKey string, event interface{}) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	publishCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = c.channel.PublishWithContext(
		publishCtx,
		c.exchange, // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	return nil
}

func (c *rabbitMQPublisher) Close() error {
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			c.logger.Error().Err(err).Msg("Failed to close RabbitMQ channel")
		}
	}

	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			c.logger.Error().Err(err).Msg("Failed to close RabbitMQ connection")
		}
	}

	return nil
}
