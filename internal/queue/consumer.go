package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"firebase.google.com/go/messaging"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/yourusername/estate-service/internal/models"
)

// UserLookup finds the requester's push token
type UserLookup interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
}

// Sender is satisfied by *messaging.Client
type Sender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// Consumer tells requesters about processed role requests with a push
// notification
type Consumer struct {
	url    string
	users  UserLookup
	sender Sender
}

func NewConsumer(url string, users UserLookup, sender Sender) *Consumer {
	return &Consumer{url: url, users: users, sender: sender}
}

// Run consumes until ctx is cancelled, re-dialing the broker with backoff
func (c *Consumer) Run(ctx context.Context) {
	backoff := time.Second
	for {
		if ctx.Err() != nil {
			return
		}
		conn, err := amqp.Dial(c.url)
		if err != nil {
			log.Printf("role-request-consumer: dial failed: %v; retrying in %s", err, backoff)
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = c.consumeLoop(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return
		}
		log.Printf("role-request-consumer: consume loop ended: %v; reconnecting", err)
		select {
		case <-ctx.Done():
			return
		case <-time.After(2 * time.Second):
		}
	}
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(20, 0, false); err != nil {
		log.Printf("role-request-consumer: set QoS failed: %v", err)
	}
	if _, err := ch.QueueDeclare(RoleRequestProcessedQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(RoleRequestProcessedQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := c.Handle(ctx, d.Body); err != nil {
				log.Printf("role-request-consumer: handle message failed: %v", err)
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

// Handle processes one message body. A requester without a push token is
// not an error.
func (c *Consumer) Handle(ctx context.Context, body []byte) error {
	var ev RoleRequestProcessedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}

	user, err := c.users.GetUser(ctx, ev.UserID)
	if err != nil {
		return fmt.Errorf("load user %s: %w", ev.UserID, err)
	}
	if user.FCMToken == "" {
		log.Printf("⚠️ User %s has no FCM token", ev.UserID)
		return nil
	}

	if _, err := c.sender.Send(ctx, roleRequestMessage(user.FCMToken, ev)); err != nil {
		return fmt.Errorf("send FCM: %w", err)
	}
	log.Printf("✅ Role request %s notification sent to %s", ev.RequestID, ev.UserID)
	return nil
}

func roleRequestMessage(token string, ev RoleRequestProcessedEvent) *messaging.Message {
	body := fmt.Sprintf("Your request for %s access was %s.", ev.RequestedRole, ev.Status)
	return &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: "Role request update",
			Body:  body,
		},
		Data: map[string]string{
			"type":          "role_request",
			"requestId":     ev.RequestID,
			"requestedRole": ev.RequestedRole,
			"status":        ev.Status,
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "account_channel",
			},
		},
	}
}
