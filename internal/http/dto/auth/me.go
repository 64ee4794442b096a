package auth

// MeResponse representa la respuesta de GET /v1/auth/me.
type MeResponse struct {
	User    UserInfo    `json:"user"`
	Session SessionInfo `json:"session"`
}

// SessionInfo es la vista pública de la sesión viva.
type SessionInfo struct {
	SessionID  string `json:"session_id"`
	CreatedAt  string `json:"created_at"`
	ExpiresAt  string `json:"expires_at"`
	DeviceInfo string `json:"device_info,omitempty"`
}
