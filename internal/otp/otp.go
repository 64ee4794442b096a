// Package otp implementa el desafío de login por código de un solo uso.
//
// Invariantes: a lo sumo un código vivo por email (delete-before-insert),
// single-use (delete antes de confirmar éxito) y fail-closed ante
// cualquier duda (vencido, ausente, mismatch).
package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/dropDatabas3/unosign/internal/directory"
	"github.com/dropDatabas3/unosign/internal/email"
	"github.com/dropDatabas3/unosign/internal/observability/logger"
	"github.com/dropDatabas3/unosign/internal/store/core"
)

// Errores de verificación. Ambos se presentan igual hacia afuera; la
// distinción queda para logs y métricas.
var (
	ErrOTPInvalid = errors.New("otp invalid")
	ErrOTPExpired = errors.New("otp expired")
)

// Manager emite y verifica códigos OTP sobre el row store.
type Manager struct {
	store   core.RowStore
	sender  email.Sender
	appName string
	ttl     time.Duration
	now     func() time.Time
}

// New crea el manager. ttl es la vigencia de cada código.
func New(store core.RowStore, sender email.Sender, appName string, ttl time.Duration) *Manager {
	return &Manager{store: store, sender: sender, appName: appName, ttl: ttl, now: time.Now}
}

// Issue genera un código de 6 dígitos para el email, reemplaza cualquier
// código vivo anterior y lo envía por mail. La falla del envío es falla
// dura: el login no puede continuar sin el código en manos del usuario.
func (m *Manager) Issue(ctx context.Context, addr string) error {
	addr = directory.NormalizeEmail(addr)

	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}

	if err := core.DeleteAllByColumn(ctx, m.store, core.TableOTPs, "email", addr); err != nil {
		return err
	}

	now := m.now().UTC()
	row := core.Row{
		"email":      addr,
		"otp_code":   code,
		"expires_at": now.Add(m.ttl).Format(time.RFC3339),
		"created_at": now.Format(time.RFC3339),
	}
	if err := m.store.Append(ctx, core.TableOTPs, row); err != nil {
		return err
	}

	subject, htmlBody, textBody, err := email.OTPMail(m.appName, code, m.ttl)
	if err != nil {
		return err
	}
	if err := m.sender.Send(ctx, addr, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("send otp mail: %w", err)
	}

	logger.From(ctx).Info("otp issued",
		logger.Component("otp"),
		logger.Email(addr),
	)
	return nil
}

// Verify valida el código vigente para el email. El código se consume
// (delete) antes de confirmar éxito; un código vencido se borra al verlo.
func (m *Manager) Verify(ctx context.Context, addr, code string) error {
	addr = directory.NormalizeEmail(addr)
	log := logger.From(ctx).With(logger.Component("otp"), logger.Email(addr))

	row, err := m.store.FindByColumn(ctx, core.TableOTPs, "email", addr)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return ErrOTPInvalid
		}
		return err
	}

	expires, perr := time.Parse(time.RFC3339, row["expires_at"])
	if perr != nil || m.now().After(expires) {
		// Tombstone perezoso: vencido o ilegible, fuera.
		if derr := m.deleteByEmail(ctx, addr); derr != nil {
			return derr
		}
		log.Info("otp expired on verify")
		return ErrOTPExpired
	}

	if row["otp_code"] != code {
		return ErrOTPInvalid
	}

	// Single-use: borrar antes de devolver éxito.
	if err := m.deleteByEmail(ctx, addr); err != nil {
		return err
	}
	log.Info("otp verified")
	return nil
}

// CleanupExpired barre todos los códigos vencidos. Pensado para un tick
// periódico; la corrección no depende de él (Verify ya tombstonea).
func (m *Manager) CleanupExpired(ctx context.Context) (int, error) {
	rows, err := m.store.GetAll(ctx, core.TableOTPs)
	if err != nil {
		return 0, err
	}
	now := m.now()
	removed := 0
	for i := len(rows) - 1; i >= 0; i-- {
		expires, perr := time.Parse(time.RFC3339, rows[i]["expires_at"])
		if perr == nil && !now.After(expires) {
			continue
		}
		if err := m.store.DeleteByIndex(ctx, core.TableOTPs, i); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

func (m *Manager) deleteByEmail(ctx context.Context, addr string) error {
	return core.DeleteAllByColumn(ctx, m.store, core.TableOTPs, "email", addr)
}

// generateCode produce 6 dígitos decimales uniformes, con ceros a la
// izquierda preservados ("007214" es un código válido).
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
