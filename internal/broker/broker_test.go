package broker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/unosign/internal/domain"
	"github.com/dropDatabas3/unosign/internal/store/adapters/memory"
	"github.com/dropDatabas3/unosign/internal/store/core"
)

var notasSvc = domain.Service{
	ID:          "notas",
	Name:        "Notas",
	RedirectURL: "https://notas.test/callback",
}

func TestIssueAndRedeem(t *testing.T) {
	b := New(memory.New(), time.Minute)
	ctx := context.Background()

	code, err := b.Issue(ctx, "u1", notasSvc, "")
	require.NoError(t, err)
	require.NotEmpty(t, code.Code)
	// redirect vacío hereda el callback registrado
	require.Equal(t, notasSvc.RedirectURL, code.RedirectURI)

	got, err := b.Redeem(ctx, code.Code, "notas", notasSvc.RedirectURL)
	require.NoError(t, err)
	require.Equal(t, "u1", got.UserID)
}

func TestRedeemIsSingleUse(t *testing.T) {
	b := New(memory.New(), time.Minute)
	ctx := context.Background()

	code, err := b.Issue(ctx, "u1", notasSvc, "")
	require.NoError(t, err)

	_, err = b.Redeem(ctx, code.Code, "notas", notasSvc.RedirectURL)
	require.NoError(t, err)

	// replay: el código ya no existe
	_, err = b.Redeem(ctx, code.Code, "notas", notasSvc.RedirectURL)
	require.ErrorIs(t, err, ErrCodeNotFound)
}

func TestIssueDisplacesPairCode(t *testing.T) {
	store := memory.New()
	b := New(store, time.Minute)
	ctx := context.Background()

	first, err := b.Issue(ctx, "u1", notasSvc, "")
	require.NoError(t, err)
	second, err := b.Issue(ctx, "u1", notasSvc, "")
	require.NoError(t, err)

	_, err = b.Redeem(ctx, first.Code, "notas", notasSvc.RedirectURL)
	require.ErrorIs(t, err, ErrCodeNotFound, "el código anterior del par quedó desplazado")

	_, err = b.Redeem(ctx, second.Code, "notas", notasSvc.RedirectURL)
	require.NoError(t, err)

	rows, err := store.GetAll(ctx, core.TableAuthCodes)
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestIssueKeepsOtherPairsAlive(t *testing.T) {
	b := New(memory.New(), time.Minute)
	ctx := context.Background()

	otherSvc := domain.Service{ID: "fotos", RedirectURL: "https://fotos.test/cb"}

	forNotas, err := b.Issue(ctx, "u1", notasSvc, "")
	require.NoError(t, err)
	_, err = b.Issue(ctx, "u1", otherSvc, "")
	require.NoError(t, err)
	_, err = b.Issue(ctx, "u2", notasSvc, "")
	require.NoError(t, err)

	// emitir para otros pares no toca el código de (u1, notas)
	_, err = b.Redeem(ctx, forNotas.Code, "notas", notasSvc.RedirectURL)
	require.NoError(t, err)
}

func TestIssueRejectsForeignRedirect(t *testing.T) {
	b := New(memory.New(), time.Minute)
	_, err := b.Issue(context.Background(), "u1", notasSvc, "https://evil.test/cb")
	require.ErrorIs(t, err, ErrRedirectNotAllowed)
}

func TestRedeemServiceMismatch(t *testing.T) {
	b := New(memory.New(), time.Minute)
	ctx := context.Background()

	code, err := b.Issue(ctx, "u1", notasSvc, "")
	require.NoError(t, err)

	_, err = b.Redeem(ctx, code.Code, "fotos", notasSvc.RedirectURL)
	require.ErrorIs(t, err, ErrCodeServiceMismatch)

	// el mismatch no consume el código
	_, err = b.Redeem(ctx, code.Code, "notas", notasSvc.RedirectURL)
	require.NoError(t, err)
}

func TestRedeemRedirectMismatch(t *testing.T) {
	b := New(memory.New(), time.Minute)
	ctx := context.Background()

	code, err := b.Issue(ctx, "u1", notasSvc, "")
	require.NoError(t, err)

	_, err = b.Redeem(ctx, code.Code, "notas", "https://otro.test/cb")
	require.ErrorIs(t, err, ErrCodeRedirectMismatch)
}

func TestRedeemRequiresRedirect(t *testing.T) {
	b := New(memory.New(), time.Minute)
	ctx := context.Background()

	code, err := b.Issue(ctx, "u1", notasSvc, "")
	require.NoError(t, err)

	// omitir la redirect_uri no saltea el chequeo
	_, err = b.Redeem(ctx, code.Code, "notas", "")
	require.ErrorIs(t, err, ErrCodeRedirectMismatch)

	// y no consume el código
	_, err = b.Redeem(ctx, code.Code, "notas", notasSvc.RedirectURL)
	require.NoError(t, err)
}

func TestRedeemExpiredTombstones(t *testing.T) {
	store := memory.New()
	b := New(store, time.Minute)
	ctx := context.Background()

	code, err := b.Issue(ctx, "u1", notasSvc, "")
	require.NoError(t, err)

	b.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = b.Redeem(ctx, code.Code, "notas", notasSvc.RedirectURL)
	require.ErrorIs(t, err, ErrCodeExpired)

	rows, err := store.GetAll(ctx, core.TableAuthCodes)
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestCleanupExpired(t *testing.T) {
	b := New(memory.New(), time.Minute)
	ctx := context.Background()

	_, err := b.Issue(ctx, "u1", notasSvc, "")
	require.NoError(t, err)

	b.now = func() time.Time { return time.Now().Add(time.Hour) }
	removed, err := b.CleanupExpired(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, removed)
}
