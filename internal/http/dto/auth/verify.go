package auth

// VerifyRequest representa el canje del OTP por una sesión.
type VerifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// VerifyResponse representa la respuesta exitosa de verificación.
type VerifyResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"` // "Bearer"
	ExpiresIn   int64    `json:"expires_in"` // segundos
	User        UserInfo `json:"user"`
}

// UserInfo es la vista pública de un usuario.
type UserInfo struct {
	UserID string   `json:"user_id"`
	Email  string   `json:"email"`
	Roles  []string `json:"roles"`
}
