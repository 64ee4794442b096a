// Package session administra la tabla Sessions.
//
// Invariante central: a lo sumo una sesión viva por usuario. Create borra
// todas las sesiones previas del user antes de insertar, lo que revoca
// implícitamente cualquier token anterior (sus session_id quedan
// huérfanos y Resolve los trata como inexistentes).
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dropDatabas3/unosign/internal/domain"
	"github.com/dropDatabas3/unosign/internal/observability/logger"
	"github.com/dropDatabas3/unosign/internal/store/core"
)

// ErrSessionNotFound cubre tanto ausencia como expiración: para el caller
// una sesión vencida no existe.
var ErrSessionNotFound = errors.New("session not found")

// Manager crea, resuelve y destruye sesiones sobre el row store.
type Manager struct {
	store core.RowStore
	ttl   time.Duration
	now   func() time.Time
}

// New crea el manager. ttl es la duración de cada sesión nueva.
func New(store core.RowStore, ttl time.Duration) *Manager {
	return &Manager{store: store, ttl: ttl, now: time.Now}
}

// Create abre una sesión nueva para el usuario, desplazando cualquier
// sesión previa (single-session por usuario).
func (m *Manager) Create(ctx context.Context, userID, deviceInfo, ip string) (domain.Session, error) {
	if err := core.DeleteAllByColumn(ctx, m.store, core.TableSessions, "user_id", userID); err != nil {
		return domain.Session{}, err
	}

	now := m.now().UTC()
	s := domain.Session{
		ID:           uuid.NewString(),
		UserID:       userID,
		DeviceInfo:   deviceInfo,
		IPAddress:    ip,
		CreatedAt:    now,
		ExpiresAt:    now.Add(m.ttl),
		LastActiveAt: now,
	}
	if err := m.store.Append(ctx, core.TableSessions, rowFromSession(s)); err != nil {
		return domain.Session{}, err
	}

	logger.From(ctx).Info("session created",
		logger.Component("session"),
		logger.SessionID(s.ID),
		logger.UserID(userID),
	)
	return s, nil
}

// Resolve devuelve la sesión viva con ese id. Una sesión vencida se
// tombstonea al verla y se reporta como inexistente.
func (m *Manager) Resolve(ctx context.Context, sessionID string) (domain.Session, error) {
	row, err := m.store.FindByColumn(ctx, core.TableSessions, "session_id", sessionID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return domain.Session{}, ErrSessionNotFound
		}
		return domain.Session{}, err
	}

	s := sessionFromRow(row)
	if s.Expired(m.now()) {
		if derr := core.DeleteAllByColumn(ctx, m.store, core.TableSessions, "session_id", sessionID); derr != nil {
			return domain.Session{}, derr
		}
		logger.From(ctx).Info("session expired on resolve",
			logger.Component("session"),
			logger.SessionID(sessionID),
		)
		return domain.Session{}, ErrSessionNotFound
	}
	return s, nil
}

// Destroy elimina la sesión. Destruir una sesión inexistente es éxito
// (logout idempotente).
func (m *Manager) Destroy(ctx context.Context, sessionID string) error {
	return core.DeleteAllByColumn(ctx, m.store, core.TableSessions, "session_id", sessionID)
}

// DestroyForUser elimina todas las sesiones del usuario.
func (m *Manager) DestroyForUser(ctx context.Context, userID string) error {
	return core.DeleteAllByColumn(ctx, m.store, core.TableSessions, "user_id", userID)
}

// Touch actualiza last_active_at best-effort: la falla se loguea y nada
// más, nunca interrumpe el request que la disparó.
func (m *Manager) Touch(ctx context.Context, sessionID string) {
	log := logger.From(ctx).With(logger.Component("session"), logger.SessionID(sessionID))

	idx, err := m.store.IndexOfByColumn(ctx, core.TableSessions, "session_id", sessionID)
	if err != nil || idx < 0 {
		if err != nil {
			log.Warn("session touch lookup failed", logger.Err(err))
		}
		return
	}
	row, err := m.store.FindByColumn(ctx, core.TableSessions, "session_id", sessionID)
	if err != nil {
		log.Warn("session touch read failed", logger.Err(err))
		return
	}
	row["last_active_at"] = m.now().UTC().Format(time.RFC3339)

	// Re-resolver antes de escribir: el índice pudo correrse.
	idx, err = m.store.IndexOfByColumn(ctx, core.TableSessions, "session_id", sessionID)
	if err != nil || idx < 0 {
		return
	}
	if err := m.store.UpdateByIndex(ctx, core.TableSessions, idx, row); err != nil {
		log.Warn("session touch write failed", logger.Err(err))
	}
}

// CleanupExpired barre las sesiones vencidas. Complemento del tombstone
// perezoso de Resolve; la corrección no depende de él.
func (m *Manager) CleanupExpired(ctx context.Context) (int, error) {
	rows, err := m.store.GetAll(ctx, core.TableSessions)
	if err != nil {
		return 0, err
	}
	now := m.now()
	removed := 0
	for i := len(rows) - 1; i >= 0; i-- {
		if !sessionFromRow(rows[i]).Expired(now) {
			continue
		}
		if err := m.store.DeleteByIndex(ctx, core.TableSessions, i); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

func rowFromSession(s domain.Session) core.Row {
	return core.Row{
		"session_id":     s.ID,
		"user_id":        s.UserID,
		"device_info":    s.DeviceInfo,
		"created_at":     s.CreatedAt.UTC().Format(time.RFC3339),
		"expires_at":     s.ExpiresAt.UTC().Format(time.RFC3339),
		"last_active_at": s.LastActiveAt.UTC().Format(time.RFC3339),
		"ip_address":     s.IPAddress,
	}
}

func sessionFromRow(r core.Row) domain.Session {
	created, _ := time.Parse(time.RFC3339, r["created_at"])
	expires, _ := time.Parse(time.RFC3339, r["expires_at"])
	lastActive, _ := time.Parse(time.RFC3339, r["last_active_at"])
	return domain.Session{
		ID:           r["session_id"],
		UserID:       r["user_id"],
		DeviceInfo:   r["device_info"],
		IPAddress:    r["ip_address"],
		CreatedAt:    created,
		ExpiresAt:    expires,
		LastActiveAt: lastActive,
	}
}
