package entity

import "time"

// Product representa un producto (SKU) cuyo stock se reparte entre áreas de almacenamiento.
// El stock no vive aquí: se calcula desde el ledger (Stock) por área.
type Product struct {
	ID            string
	SKU           string // único
	Name          string
	Description   string
	CategoryID    *string // nil si no tiene categoría
	SupplierID    *string // nil si no tiene proveedor
	MinStockLevel int64   // umbral de stock bajo (total <= MinStockLevel)
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
