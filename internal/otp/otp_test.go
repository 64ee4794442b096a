package otp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/unosign/internal/store/adapters/memory"
	"github.com/dropDatabas3/unosign/internal/store/core"
)

// fakeSender captura los envíos para inspeccionarlos en los tests.
type fakeSender struct {
	to      []string
	subject string
	fail    error
}

func (f *fakeSender) Send(ctx context.Context, to, subject, htmlBody, textBody string) error {
	if f.fail != nil {
		return f.fail
	}
	f.to = append(f.to, to)
	f.subject = subject
	return nil
}

func storedCode(t *testing.T, s core.RowStore, email string) string {
	t.Helper()
	row, err := s.FindByColumn(context.Background(), core.TableOTPs, "email", email)
	require.NoError(t, err)
	return row["otp_code"]
}

func TestIssueSendsAndStores(t *testing.T) {
	s := memory.New()
	f := &fakeSender{}
	m := New(s, f, "unosign", 10*time.Minute)
	ctx := context.Background()

	require.NoError(t, m.Issue(ctx, "Maria@Acme.com"))

	// email normalizado al persistir y al enviar
	require.Equal(t, []string{"maria@acme.com"}, f.to)
	code := storedCode(t, s, "maria@acme.com")
	require.Len(t, code, 6)
}

func TestIssueReplacesPreviousCode(t *testing.T) {
	s := memory.New()
	m := New(s, &fakeSender{}, "unosign", 10*time.Minute)
	ctx := context.Background()

	require.NoError(t, m.Issue(ctx, "a@x.com"))
	first := storedCode(t, s, "a@x.com")
	require.NoError(t, m.Issue(ctx, "a@x.com"))

	rows, err := s.GetAll(ctx, core.TableOTPs)
	require.NoError(t, err)
	require.Len(t, rows, 1, "a lo sumo un código vivo por email")

	// el código anterior ya no verifica (salvo colisión de 6 dígitos,
	// en cuyo caso el nuevo código es igual y el test sigue valiendo)
	second := storedCode(t, s, "a@x.com")
	if first != second {
		require.ErrorIs(t, m.Verify(ctx, "a@x.com", first), ErrOTPInvalid)
	}
}

func TestVerifyConsumesCode(t *testing.T) {
	s := memory.New()
	m := New(s, &fakeSender{}, "unosign", 10*time.Minute)
	ctx := context.Background()

	require.NoError(t, m.Issue(ctx, "a@x.com"))
	code := storedCode(t, s, "a@x.com")

	require.NoError(t, m.Verify(ctx, "a@x.com", code))
	// single-use: el mismo código no entra dos veces
	require.ErrorIs(t, m.Verify(ctx, "a@x.com", code), ErrOTPInvalid)
}

func TestVerifyWrongCodeKeepsChallenge(t *testing.T) {
	s := memory.New()
	m := New(s, &fakeSender{}, "unosign", 10*time.Minute)
	ctx := context.Background()

	require.NoError(t, m.Issue(ctx, "a@x.com"))
	code := storedCode(t, s, "a@x.com")
	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	require.ErrorIs(t, m.Verify(ctx, "a@x.com", wrong), ErrOTPInvalid)
	// el challenge sigue vivo y el código correcto todavía entra
	require.NoError(t, m.Verify(ctx, "a@x.com", code))
}

func TestVerifyExpiredTombstones(t *testing.T) {
	s := memory.New()
	m := New(s, &fakeSender{}, "unosign", 10*time.Minute)
	ctx := context.Background()

	require.NoError(t, m.Issue(ctx, "a@x.com"))
	code := storedCode(t, s, "a@x.com")

	m.now = func() time.Time { return time.Now().Add(11 * time.Minute) }
	require.ErrorIs(t, m.Verify(ctx, "a@x.com", code), ErrOTPExpired)

	// el row vencido se borró al verlo
	rows, err := s.GetAll(ctx, core.TableOTPs)
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestVerifyUnknownEmail(t *testing.T) {
	m := New(memory.New(), &fakeSender{}, "unosign", 10*time.Minute)
	require.ErrorIs(t, m.Verify(context.Background(), "nadie@x.com", "123456"), ErrOTPInvalid)
}

func TestIssueFailsWhenSendFails(t *testing.T) {
	s := memory.New()
	m := New(s, &fakeSender{fail: errors.New("smtp caído")}, "unosign", 10*time.Minute)
	require.Error(t, m.Issue(context.Background(), "a@x.com"))
}

func TestCleanupExpired(t *testing.T) {
	s := memory.New()
	m := New(s, &fakeSender{}, "unosign", 10*time.Minute)
	ctx := context.Background()

	require.NoError(t, m.Issue(ctx, "a@x.com"))
	require.NoError(t, m.Issue(ctx, "b@x.com"))

	m.now = func() time.Time { return time.Now().Add(time.Hour) }
	removed, err := m.CleanupExpired(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, removed)
}
