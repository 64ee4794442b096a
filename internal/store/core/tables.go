package core

// Nombres de tablas del row store. El backend real es una planilla remota
// (o un adapter equivalente); acá solo fijamos el contrato de columnas.
const (
	TableUsers        = "Users"
	TableSessions     = "Sessions"
	TableOTPs         = "OTPs"
	TableAuthCodes    = "AuthCodes"
	TableServices     = "Services"
	TableEntitlements = "Entitlements"
)

// Columnas por tabla, en el orden canónico de la planilla.
// Todo valor viaja como string: booleanos "true"/"false", fechas RFC3339.
var Columns = map[string][]string{
	TableUsers:        {"user_id", "email", "role", "created_at", "status"},
	TableSessions:     {"session_id", "user_id", "device_info", "created_at", "expires_at", "last_active_at", "ip_address"},
	TableOTPs:         {"email", "otp_code", "expires_at", "created_at"},
	TableAuthCodes:    {"code", "user_id", "service_id", "redirect_uri", "expires_at", "used", "created_at"},
	TableServices:     {"service_id", "name", "description", "redirect_url", "free_tier_enabled"},
	TableEntitlements: {"entitlement_id", "user_id", "service_id", "tier_level", "valid_until"},
}

// KnownTable indica si la tabla está declarada en el contrato.
func KnownTable(table string) bool {
	_, ok := Columns[table]
	return ok
}
