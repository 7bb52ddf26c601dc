package entity

import "time"

// StockKey clave compuesta del ledger: a lo sumo una entrada por (producto, área).
type StockKey struct {
	ProductID     string
	StorageAreaID string
}

func (k StockKey) String() string {
	return k.ProductID + "/" + k.StorageAreaID
}

// Stock entrada del ledger: cantidad actual de un producto en un área.
// La ausencia de entrada equivale a 0, pero una entrada con 0 es distinta de la ausencia.
type Stock struct {
	ProductID     string
	StorageAreaID string
	Quantity      int64
	UpdatedAt     time.Time
}

// Key devuelve la clave compuesta de la entrada.
func (s *Stock) Key() StockKey {
	return StockKey{ProductID: s.ProductID, StorageAreaID: s.StorageAreaID}
}
