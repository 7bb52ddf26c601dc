package ports

import "time"

// Clock fuente de tiempo para fechas de movimientos y auditoría.
// Inyectable para que los tests fijen el reloj.
type Clock interface {
	Now() time.Time
}

// IDGenerator genera identidades nuevas para los registros.
// La implementación por defecto emite UUIDv7 (monótonos dentro del proceso).
type IDGenerator interface {
	NewID() string
}
