// Package health contiene el controller de health check.
package health

import (
	"net/http"

	"github.com/dropDatabas3/unosign/internal/http/helpers"
	svc "github.com/dropDatabas3/unosign/internal/http/services/health"
)

// Controller maneja GET /healthz.
type Controller struct {
	service *svc.Service
}

// NewController crea el controller de health.
func NewController(service *svc.Service) *Controller {
	return &Controller{service: service}
}

// Healthz responde 200 si todo está ok, 503 si algo está degradado.
func (c *Controller) Healthz(w http.ResponseWriter, r *http.Request) {
	resp := c.service.Check(r.Context())
	status := http.StatusOK
	if resp.Status != "ready" {
		status = http.StatusServiceUnavailable
	}
	helpers.WriteJSON(w, status, resp)
}
