// Package metrics define los contadores Prometheus del broker. Van en un
// paquete propio para evitar ciclos de import entre los managers y las
// capas HTTP.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duración de requests HTTP por ruta, método y status",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method", "status"})

	OTPIssued = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "otp_issued_total",
		Help: "Códigos OTP emitidos",
	})

	OTPVerified = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "otp_verified_total",
		Help: "Verificaciones de OTP por resultado (ok|invalid|expired)",
	}, []string{"result"})

	SessionsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sessions_created_total",
		Help: "Sesiones creadas (cada una desplaza la anterior del usuario)",
	})

	SessionsRevoked = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sessions_revoked_total",
		Help: "Sesiones destruidas por logout explícito",
	})

	AuthCodesIssued = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "auth_codes_issued_total",
		Help: "Authorization codes emitidos",
	})

	AuthCodesRedeemed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_codes_redeemed_total",
		Help: "Canjes de authorization codes por resultado",
	}, []string{"result"})

	EntitlementsAutoGranted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "entitlements_auto_granted_total",
		Help: "Entitlements free otorgados implícitamente en authorize",
	})

	RateLimited = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rate_limited_total",
		Help: "Requests rechazados por rate limit, por endpoint",
	}, []string{"endpoint"})
)

// Register registra las métricas en el registry dado (o el default si es
// nil). El doble registro no es error.
func Register(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	collectors := []prometheus.Collector{
		HTTPRequestDuration,
		OTPIssued,
		OTPVerified,
		SessionsCreated,
		SessionsRevoked,
		AuthCodesIssued,
		AuthCodesRedeemed,
		EntitlementsAutoGranted,
		RateLimited,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return err
			}
		}
	}
	return nil
}
