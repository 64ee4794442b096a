// Package entitlement decide el acceso usuario→servicio.
//
// La pregunta del flujo de autorización es CanAuthorize: hay grant
// vigente, o el servicio tiene free tier y entonces el primer acceso
// materializa un grant free implícito (una sola vez por par).
package entitlement

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dropDatabas3/unosign/internal/domain"
	"github.com/dropDatabas3/unosign/internal/observability/logger"
	"github.com/dropDatabas3/unosign/internal/store/core"
)

// ErrEntitlementNotFound indica ausencia de grant para el par pedido.
var ErrEntitlementNotFound = errors.New("entitlement not found")

// Gate evalúa y administra entitlements sobre el row store.
type Gate struct {
	store core.RowStore
	now   func() time.Time
}

// New crea el gate.
func New(store core.RowStore) *Gate {
	return &Gate{store: store, now: time.Now}
}

// CanAuthorize responde si el usuario puede autorizarse contra el
// servicio. Un grant vencido cuenta como ausente. Si no hay grant y el
// servicio habilita free tier, se persiste un grant free sin vencimiento
// y se responde que sí; el auto-grant es idempotente porque la próxima
// llamada encuentra el grant vigente.
func (g *Gate) CanAuthorize(ctx context.Context, userID string, svc domain.Service) (bool, error) {
	if _, err := g.liveForPair(ctx, userID, svc.ID); err == nil {
		return true, nil
	} else if !errors.Is(err, ErrEntitlementNotFound) {
		return false, err
	}

	if !svc.FreeTierEnabled {
		return false, nil
	}

	free := domain.Entitlement{
		ID:        uuid.NewString(),
		UserID:    userID,
		ServiceID: svc.ID,
		Tier:      domain.TierFree,
	}
	if err := g.store.Append(ctx, core.TableEntitlements, rowFromEntitlement(free)); err != nil {
		return false, err
	}

	logger.From(ctx).Info("free tier entitlement auto-granted",
		logger.Component("entitlement"),
		logger.UserID(userID),
		logger.ServiceID(svc.ID),
	)
	return true, nil
}

// Grant otorga (o reemplaza) el entitlement del par. validUntil en cero
// significa sin vencimiento. Mantiene a lo sumo un grant por par:
// delete-before-insert.
func (g *Gate) Grant(ctx context.Context, userID, serviceID string, tier domain.TierLevel, validUntil time.Time) (domain.Entitlement, error) {
	if err := g.deletePair(ctx, userID, serviceID); err != nil {
		return domain.Entitlement{}, err
	}

	ent := domain.Entitlement{
		ID:         uuid.NewString(),
		UserID:     userID,
		ServiceID:  serviceID,
		Tier:       tier,
		ValidUntil: validUntil,
	}
	if err := g.store.Append(ctx, core.TableEntitlements, rowFromEntitlement(ent)); err != nil {
		return domain.Entitlement{}, err
	}

	logger.From(ctx).Info("entitlement granted",
		logger.Component("entitlement"),
		logger.UserID(userID),
		logger.ServiceID(serviceID),
		logger.String("tier", string(tier)),
	)
	return ent, nil
}

// Revoke elimina el grant del par. Ausencia es éxito.
func (g *Gate) Revoke(ctx context.Context, userID, serviceID string) error {
	return g.deletePair(ctx, userID, serviceID)
}

// ListForUser devuelve los grants del usuario, vencidos incluidos (la
// superficie admin quiere ver el historial tal cual está en la tabla).
func (g *Gate) ListForUser(ctx context.Context, userID string) ([]domain.Entitlement, error) {
	rows, err := g.store.FindAllByColumn(ctx, core.TableEntitlements, "user_id", userID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Entitlement, 0, len(rows))
	for _, r := range rows {
		out = append(out, entitlementFromRow(r))
	}
	return out, nil
}

// liveForPair busca un grant vigente para (user, service).
func (g *Gate) liveForPair(ctx context.Context, userID, serviceID string) (domain.Entitlement, error) {
	rows, err := g.store.FindAllByColumn(ctx, core.TableEntitlements, "user_id", userID)
	if err != nil {
		return domain.Entitlement{}, err
	}
	now := g.now()
	for _, r := range rows {
		if r["service_id"] != serviceID {
			continue
		}
		ent := entitlementFromRow(r)
		if !ent.Expired(now) {
			return ent, nil
		}
	}
	return domain.Entitlement{}, ErrEntitlementNotFound
}

func (g *Gate) deletePair(ctx context.Context, userID, serviceID string) error {
	rows, err := g.store.GetAll(ctx, core.TableEntitlements)
	if err != nil {
		return err
	}
	for i := len(rows) - 1; i >= 0; i-- {
		if rows[i]["user_id"] == userID && rows[i]["service_id"] == serviceID {
			if err := g.store.DeleteByIndex(ctx, core.TableEntitlements, i); err != nil {
				return err
			}
		}
	}
	return nil
}

func rowFromEntitlement(e domain.Entitlement) core.Row {
	validUntil := ""
	if !e.ValidUntil.IsZero() {
		validUntil = e.ValidUntil.UTC().Format(time.RFC3339)
	}
	return core.Row{
		"entitlement_id": e.ID,
		"user_id":        e.UserID,
		"service_id":     e.ServiceID,
		"tier_level":     string(e.Tier),
		"valid_until":    validUntil,
	}
}

func entitlementFromRow(r core.Row) domain.Entitlement {
	var validUntil time.Time
	if r["valid_until"] != "" {
		validUntil, _ = time.Parse(time.RFC3339, r["valid_until"])
	}
	return domain.Entitlement{
		ID:         r["entitlement_id"],
		UserID:     r["user_id"],
		ServiceID:  r["service_id"],
		Tier:       domain.TierLevel(r["tier_level"]),
		ValidUntil: validUntil,
	}
}
