// Package events описывает доменные события сервиса и их публикацию.
package events

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/auth-rbac/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/auth-rbac/internal/models"
)

// RoutingKeyUserRegistered ключ маршрутизации события регистрации.
const RoutingKeyUserRegistered = "user.registered"

// UserRegistered публикуется после успешного создания пользователя.
type UserRegistered struct {
	ID         string    `json:"id"`
	UserID     int64     `json:"user_id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewUserRegistered собирает событие по публичному представлению пользователя.
func NewUserRegistered(user *models.UserView, now time.Time) UserRegistered {
	return UserRegistered{
		ID:         uuid.NewString(),
		UserID:     user.ID,
		Username:   user.Username,
		Email:      user.Email,
		Role:       user.Role,
		OccurredAt: now.UTC(),
	}
}

// AMQPPublisher публикует события в exchange RabbitMQ.
type AMQPPublisher struct {
	ch       rabbitmq.Channel
	exchange string
	log      *slog.Logger
}

// NewAMQPPublisher создаёт издателя поверх открытого канала.
func NewAMQPPublisher(ch rabbitmq.Channel, exchange string, log *slog.Logger) *AMQPPublisher {
	return &AMQPPublisher{ch: ch, exchange: exchange, log: log}
}

// PublishUserRegistered отправляет событие регистрации.
func (p *AMQPPublisher) PublishUserRegistered(ctx context.Context, event UserRegistered) error {
	const op = "events.PublishUserRegistered"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if err := rabbitmq.PublishMessage(p.ch, p.exchange, RoutingKeyUserRegistered, event); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	p.log.Debug("event published",
		slog.String("op", op),
		slog.String("event_id", event.ID),
		slog.String("routing_key", RoutingKeyUserRegistered),
	)
	return nil
}

// NoopPublisher ничего не публикует. Используется, когда брокер не настроен.
type NoopPublisher struct{}

func (NoopPublisher) PublishUserRegistered(context.Context, UserRegistered) error { return nil }
