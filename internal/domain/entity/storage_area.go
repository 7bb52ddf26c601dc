package entity

import "time"

// StorageArea representa una zona física del almacén (Zone A, Receiving, Shipping...).
// Capacity es declarativa: se usa para la ocupación, no limita el ledger.
type StorageArea struct {
	ID          string
	Name        string
	Description string
	Capacity    int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
