package email

import (
	"context"

	"github.com/dropDatabas3/unosign/internal/observability/logger"
)

// EchoSender loguea el mail en vez de enviarlo. Solo para dev sin SMTP.
type EchoSender struct{}

func (EchoSender) Send(ctx context.Context, to, subject, htmlBody, textBody string) error {
	logger.From(ctx).Info("email (echo)",
		logger.String("to", to),
		logger.String("subject", subject),
		logger.String("text", textBody),
	)
	return nil
}
