// Package oauth contiene DTOs para el flujo de autorización downstream.
package oauth

import authdto "github.com/dropDatabas3/unosign/internal/http/dto/auth"

// TokenRequest representa el canje de un authorization code.
type TokenRequest struct {
	Code        string `json:"code"`
	ServiceID   string `json:"service_id"`
	RedirectURI string `json:"redirect_uri,omitempty"`
}

// TokenResponse representa la respuesta exitosa del canje.
type TokenResponse struct {
	AccessToken string           `json:"access_token"`
	TokenType   string           `json:"token_type"` // "Bearer"
	ExpiresIn   int64            `json:"expires_in"` // segundos
	User        authdto.UserInfo `json:"user"`
}

// ServiceInfo es la vista pública de un servicio del catálogo.
type ServiceInfo struct {
	ServiceID       string `json:"service_id"`
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	FreeTierEnabled bool   `json:"free_tier_enabled"`
}
