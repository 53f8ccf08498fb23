package mailer

import "context"

// Sender delivers templated notification emails given a recipient and a link.
// Implementations: SMTPSender (direct delivery) and AMQPPublisher (hands the
// message to a separate mail worker).
type Sender interface {
	SendVerifyEmail(ctx context.Context, toEmail, link string) error
	SendPasswordReset(ctx context.Context, toEmail, link string) error
}
