package admin

// GrantEntitlementRequest representa POST /v1/admin/entitlements.
type GrantEntitlementRequest struct {
	UserID     string `json:"user_id"`
	ServiceID  string `json:"service_id"`
	Tier       string `json:"tier"`                  // "free" | "pro"
	ValidUntil string `json:"valid_until,omitempty"` // RFC3339, vacío = sin vencimiento
}

// EntitlementView es la vista admin de un entitlement.
type EntitlementView struct {
	EntitlementID string `json:"entitlement_id"`
	UserID        string `json:"user_id"`
	ServiceID     string `json:"service_id"`
	Tier          string `json:"tier"`
	ValidUntil    string `json:"valid_until,omitempty"`
}

// ListEntitlementsResponse representa GET /v1/admin/entitlements?user_id=...
type ListEntitlementsResponse struct {
	Entitlements []EntitlementView `json:"entitlements"`
}
