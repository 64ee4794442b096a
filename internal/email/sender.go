// Package email encapsula el envío de correo del broker (hoy, solo OTPs).
package email

import "context"

// Sender es el colaborador de entrega de mail que consume el OTP Manager.
// La falla de Send es falla dura del issue del OTP.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody, textBody string) error
}
