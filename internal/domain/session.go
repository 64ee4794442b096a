package domain

import "time"

// Session es el registro server-side de un login vigente.
// Invariante del sistema: a lo sumo una sesión por user_id.
type Session struct {
	ID           string
	UserID       string
	DeviceInfo   string
	IPAddress    string
	CreatedAt    time.Time
	ExpiresAt    time.Time
	LastActiveAt time.Time
}

// Expired indica si la sesión venció respecto de now.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
