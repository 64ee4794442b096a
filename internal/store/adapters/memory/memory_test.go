package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/unosign/internal/store/core"
)

func TestAppendAndFind(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, core.TableOTPs, core.Row{"email": "a@x.com", "otp_code": "111111"}))
	require.NoError(t, s.Append(ctx, core.TableOTPs, core.Row{"email": "b@x.com", "otp_code": "222222"}))

	row, err := s.FindByColumn(ctx, core.TableOTPs, "email", "b@x.com")
	require.NoError(t, err)
	require.Equal(t, "222222", row["otp_code"])
	// columnas faltantes quedan materializadas como ""
	require.Contains(t, row, "expires_at")
	require.Equal(t, "", row["expires_at"])

	_, err = s.FindByColumn(ctx, core.TableOTPs, "email", "nadie@x.com")
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestUnknownTable(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.ErrorIs(t, s.Append(ctx, "Nope", core.Row{}), core.ErrUnknownTable)
	_, err := s.GetAll(ctx, "Nope")
	require.ErrorIs(t, err, core.ErrUnknownTable)
}

func TestDeleteShiftsIndexes(t *testing.T) {
	s := New()
	ctx := context.Background()

	for _, e := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		require.NoError(t, s.Append(ctx, core.TableOTPs, core.Row{"email": e}))
	}
	require.NoError(t, s.DeleteByIndex(ctx, core.TableOTPs, 0))

	// b corrió a la posición 0
	idx, err := s.IndexOfByColumn(ctx, core.TableOTPs, "email", "b@x.com")
	require.NoError(t, err)
	require.Equal(t, 0, idx)

	// borrar fuera de rango es error (la fila se movió)
	require.ErrorIs(t, s.DeleteByIndex(ctx, core.TableOTPs, 5), core.ErrNotFound)
}

func TestUpdateByIndex(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, core.TableServices, core.Row{"service_id": "notas", "name": "Notas"}))
	idx, err := s.IndexOfByColumn(ctx, core.TableServices, "service_id", "notas")
	require.NoError(t, err)

	require.NoError(t, s.UpdateByIndex(ctx, core.TableServices, idx, core.Row{"service_id": "notas", "name": "Notas v2"}))
	row, err := s.FindByColumn(ctx, core.TableServices, "service_id", "notas")
	require.NoError(t, err)
	require.Equal(t, "Notas v2", row["name"])
}

func TestReturnedRowsAreCopies(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, core.TableOTPs, core.Row{"email": "a@x.com", "otp_code": "111111"}))
	row, err := s.FindByColumn(ctx, core.TableOTPs, "email", "a@x.com")
	require.NoError(t, err)
	row["otp_code"] = "mutado"

	again, err := s.FindByColumn(ctx, core.TableOTPs, "email", "a@x.com")
	require.NoError(t, err)
	require.Equal(t, "111111", again["otp_code"])
}

func TestDeleteAllByColumn(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, core.TableSessions, core.Row{"session_id": "s1", "user_id": "u1"}))
	require.NoError(t, s.Append(ctx, core.TableSessions, core.Row{"session_id": "s2", "user_id": "u1"}))
	require.NoError(t, s.Append(ctx, core.TableSessions, core.Row{"session_id": "s3", "user_id": "u2"}))

	require.NoError(t, core.DeleteAllByColumn(ctx, s, core.TableSessions, "user_id", "u1"))

	rows, err := s.GetAll(ctx, core.TableSessions)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "s3", rows[0]["session_id"])

	// borrar lo que no está es éxito
	require.NoError(t, core.DeleteAllByColumn(ctx, s, core.TableSessions, "user_id", "u9"))
}
