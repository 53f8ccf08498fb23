package mailer

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQPPublisher publishes notification events instead of sending mail
// directly; a separate worker consumes them and talks SMTP. Selected with
// MAIL_TRANSPORT=amqp.
type AMQPPublisher struct {
	ch *amqp.Channel
}

func NewAMQPPublisher(ch *amqp.Channel) *AMQPPublisher {
	return &AMQPPublisher{ch: ch}
}

type mailMessage struct {
	Type  string `json:"type"`
	Email string `json:"email"`
	Link  string `json:"link"`
}

func (p *AMQPPublisher) SendVerifyEmail(ctx context.Context, toEmail, link string) error {
	return p.publish(ctx, "email.verification", mailMessage{
		Type:  "email_verification",
		Email: toEmail,
		Link:  link,
	})
}

func (p *AMQPPublisher) SendPasswordReset(ctx context.Context, toEmail, link string) error {
	return p.publish(ctx, "email.password_reset", mailMessage{
		Type:  "password_reset",
		Email: toEmail,
		Link:  link,
	})
}

func (p *AMQPPublisher) publish(ctx context.Context, routingKey string, msg mailMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return p.ch.PublishWithContext(
		ctx,
		"account.events", // exchange
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

// DeclareExchange sets up the topic exchange the publisher writes to.
func DeclareExchange(ch *amqp.Channel) error {
	return ch.ExchangeDeclare(
		"account.events",
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
}
