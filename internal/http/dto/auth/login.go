// Package auth contiene DTOs para los endpoints de autenticación.
package auth

// LoginRequest representa la solicitud de login passwordless (pedido de OTP).
type LoginRequest struct {
	Email string `json:"email"`
}

// LoginResponse representa la respuesta del pedido de OTP.
// La respuesta es la misma exista o no la cuenta: el código viaja por mail.
type LoginResponse struct {
	Message string `json:"message"`
}
