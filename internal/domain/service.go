package domain

// Service es un servicio downstream registrado en el catálogo.
// Solo la superficie admin (excluida del core) lo escribe; para el core
// es read-only. RedirectURL es el callback registrado y se compara por
// igualdad exacta en authorize para evitar open redirects.
type Service struct {
	ID              string
	Name            string
	Description     string
	RedirectURL     string
	FreeTierEnabled bool
}
