// Package broker emite y canjea los authorization codes que transfieren
// una identidad probada hacia un servicio downstream.
//
// Invariantes: a lo sumo un código vivo por par (user, service); canje
// single-use (el row se borra al canjear); redirect_uri comparada por
// igualdad exacta contra el callback registrado del servicio.
package broker

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dropDatabas3/unosign/internal/domain"
	"github.com/dropDatabas3/unosign/internal/observability/logger"
	"github.com/dropDatabas3/unosign/internal/store/core"
)

// Razones de rechazo del canje. Cada una llega distinta al caller: el
// que canjea es el backend de un servicio confiable, no un usuario final.
var (
	ErrCodeNotFound         = errors.New("auth code not found")
	ErrCodeExpired          = errors.New("auth code expired")
	ErrCodeUsed             = errors.New("auth code already used")
	ErrCodeServiceMismatch  = errors.New("auth code service mismatch")
	ErrCodeRedirectMismatch = errors.New("auth code redirect mismatch")
	ErrRedirectNotAllowed   = errors.New("redirect uri not registered")
)

// Broker emite y canjea authorization codes sobre el row store.
type Broker struct {
	store core.RowStore
	ttl   time.Duration
	now   func() time.Time
}

// New crea el broker. ttl es la vigencia de cada código (corta: el
// código solo vive el round-trip del redirect).
func New(store core.RowStore, ttl time.Duration) *Broker {
	return &Broker{store: store, ttl: ttl, now: time.Now}
}

// Issue emite un código para (user, service), desplazando cualquier
// código vivo previo del par. redirectURI debe coincidir exactamente con
// el callback registrado del servicio.
func (b *Broker) Issue(ctx context.Context, userID string, svc domain.Service, redirectURI string) (domain.AuthCode, error) {
	if redirectURI == "" {
		redirectURI = svc.RedirectURL
	}
	if redirectURI != svc.RedirectURL {
		return domain.AuthCode{}, ErrRedirectNotAllowed
	}

	if err := b.deletePair(ctx, userID, svc.ID); err != nil {
		return domain.AuthCode{}, err
	}

	now := b.now().UTC()
	code := domain.AuthCode{
		Code:        uuid.NewString(),
		UserID:      userID,
		ServiceID:   svc.ID,
		RedirectURI: redirectURI,
		CreatedAt:   now,
		ExpiresAt:   now.Add(b.ttl),
	}
	if err := b.store.Append(ctx, core.TableAuthCodes, rowFromCode(code)); err != nil {
		return domain.AuthCode{}, err
	}

	logger.From(ctx).Info("auth code issued",
		logger.Component("broker"),
		logger.UserID(userID),
		logger.ServiceID(svc.ID),
	)
	return code, nil
}

// Redeem canjea el código. Verifica vigencia, servicio y redirect (la
// comparación es incondicional: un redirect vacío nunca matchea) y borra
// el row antes de devolver éxito (single-use). Un código vencido o ya
// usado se tombstonea al verlo.
func (b *Broker) Redeem(ctx context.Context, rawCode, serviceID, redirectURI string) (domain.AuthCode, error) {
	log := logger.From(ctx).With(logger.Component("broker"), logger.ServiceID(serviceID))

	row, err := b.store.FindByColumn(ctx, core.TableAuthCodes, "code", rawCode)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return domain.AuthCode{}, ErrCodeNotFound
		}
		return domain.AuthCode{}, err
	}

	code := codeFromRow(row)

	if code.Used {
		if derr := b.deleteCode(ctx, rawCode); derr != nil {
			return domain.AuthCode{}, derr
		}
		log.Warn("auth code replayed")
		return domain.AuthCode{}, ErrCodeUsed
	}
	if code.Expired(b.now()) {
		if derr := b.deleteCode(ctx, rawCode); derr != nil {
			return domain.AuthCode{}, derr
		}
		log.Info("auth code expired on redeem")
		return domain.AuthCode{}, ErrCodeExpired
	}
	if code.ServiceID != serviceID {
		log.Warn("auth code service mismatch")
		return domain.AuthCode{}, ErrCodeServiceMismatch
	}
	if code.RedirectURI != redirectURI {
		log.Warn("auth code redirect mismatch")
		return domain.AuthCode{}, ErrCodeRedirectMismatch
	}

	// Single-use: fuera de la tabla antes de confirmar éxito.
	if err := b.deleteCode(ctx, rawCode); err != nil {
		return domain.AuthCode{}, err
	}

	log.Info("auth code redeemed", logger.UserID(code.UserID))
	return code, nil
}

// CleanupExpired barre códigos vencidos o ya usados.
func (b *Broker) CleanupExpired(ctx context.Context) (int, error) {
	rows, err := b.store.GetAll(ctx, core.TableAuthCodes)
	if err != nil {
		return 0, err
	}
	now := b.now()
	removed := 0
	for i := len(rows) - 1; i >= 0; i-- {
		c := codeFromRow(rows[i])
		if !c.Used && !c.Expired(now) {
			continue
		}
		if err := b.store.DeleteByIndex(ctx, core.TableAuthCodes, i); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

func (b *Broker) deleteCode(ctx context.Context, rawCode string) error {
	return core.DeleteAllByColumn(ctx, b.store, core.TableAuthCodes, "code", rawCode)
}

// deletePair borra todos los códigos vivos del par (user, service).
func (b *Broker) deletePair(ctx context.Context, userID, serviceID string) error {
	rows, err := b.store.GetAll(ctx, core.TableAuthCodes)
	if err != nil {
		return err
	}
	for i := len(rows) - 1; i >= 0; i-- {
		if rows[i]["user_id"] == userID && rows[i]["service_id"] == serviceID {
			if err := b.store.DeleteByIndex(ctx, core.TableAuthCodes, i); err != nil {
				return err
			}
		}
	}
	return nil
}

func rowFromCode(c domain.AuthCode) core.Row {
	return core.Row{
		"code":         c.Code,
		"user_id":      c.UserID,
		"service_id":   c.ServiceID,
		"redirect_uri": c.RedirectURI,
		"expires_at":   c.ExpiresAt.UTC().Format(time.RFC3339),
		"used":         boolString(c.Used),
		"created_at":   c.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func codeFromRow(r core.Row) domain.AuthCode {
	created, _ := time.Parse(time.RFC3339, r["created_at"])
	expires, _ := time.Parse(time.RFC3339, r["expires_at"])
	return domain.AuthCode{
		Code:        r["code"],
		UserID:      r["user_id"],
		ServiceID:   r["service_id"],
		RedirectURI: r["redirect_uri"],
		Used:        r["used"] == "true",
		CreatedAt:   created,
		ExpiresAt:   expires,
	}
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
