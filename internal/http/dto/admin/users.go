// Package admin contiene DTOs para la superficie administrativa.
package admin

// UserView es la vista admin de un usuario.
type UserView struct {
	UserID    string   `json:"user_id"`
	Email     string   `json:"email"`
	Roles     []string `json:"roles"`
	Status    string   `json:"status"`
	CreatedAt string   `json:"created_at"`
}

// ListUsersResponse representa GET /v1/admin/users.
type ListUsersResponse struct {
	Users []UserView `json:"users"`
	Total int        `json:"total"`
}

// PatchUserRequest representa PATCH /v1/admin/users/{id}.
// Acciones soportadas: add_role, remove_role, set_status.
type PatchUserRequest struct {
	Action string `json:"action"`
	Role   string `json:"role,omitempty"`
	Status string `json:"status,omitempty"`
}
