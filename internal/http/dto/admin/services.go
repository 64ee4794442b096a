package admin

// ServiceUpsertRequest representa POST/PUT /v1/admin/services.
type ServiceUpsertRequest struct {
	ServiceID       string `json:"service_id"`
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	RedirectURL     string `json:"redirect_url"`
	FreeTierEnabled bool   `json:"free_tier_enabled"`
}

// ServiceView es la vista admin de un servicio (incluye redirect_url).
type ServiceView struct {
	ServiceID       string `json:"service_id"`
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	RedirectURL     string `json:"redirect_url"`
	FreeTierEnabled bool   `json:"free_tier_enabled"`
}

// ListServicesResponse representa GET /v1/admin/services.
type ListServicesResponse struct {
	Services []ServiceView `json:"services"`
}
