package dto

import (
	"time"

	"github.com/GregCodi/WarehousePRO/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto. El stock se maneja vía movimientos.
type CreateProductRequest struct {
	SKU           string  `json:"sku" validate:"required,min=1,max=100"`
	Name          string  `json:"name" validate:"required,min=1,max=200"`
	Description   string  `json:"description"`
	CategoryID    *string `json:"category_id"`
	SupplierID    *string `json:"supplier_id"`
	MinStockLevel int64   `json:"min_stock_level" validate:"min=0"`
}

// UpdateProductRequest campos opcionales; nil = sin cambio. CategoryID/SupplierID = "" desasigna.
type UpdateProductRequest struct {
	SKU           *string `json:"sku" validate:"omitempty,min=1,max=100"`
	Name          *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description   *string `json:"description"`
	CategoryID    *string `json:"category_id"`
	SupplierID    *string `json:"supplier_id"`
	MinStockLevel *int64  `json:"min_stock_level" validate:"omitempty,min=0"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string    `json:"id"`
	SKU           string    `json:"sku"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	CategoryID    *string   `json:"category_id"`
	SupplierID    *string   `json:"supplier_id"`
	MinStockLevel int64     `json:"min_stock_level"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ProductWithInventoryResponse producto con sus relaciones y el inventario por área.
type ProductWithInventoryResponse struct {
	ProductResponse
	Category        *CategoryResponse              `json:"category,omitempty"`
	Supplier        *SupplierResponse              `json:"supplier,omitempty"`
	TotalStock      int64                          `json:"total_stock"`
	LowStock        bool                           `json:"low_stock"`
	InventoryByArea []ProductAreaInventoryResponse `json:"inventory_by_area"`
}

// ProductAreaInventoryResponse cantidad del producto en un área.
type ProductAreaInventoryResponse struct {
	StorageAreaID   string    `json:"storage_area_id"`
	StorageAreaName string    `json:"storage_area_name"`
	Quantity        int64     `json:"quantity"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ProductListResponse lista de productos (con o sin inventario).
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}

func NewProductResponse(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		ID:            p.ID,
		SKU:           p.SKU,
		Name:          p.Name,
		Description:   p.Description,
		CategoryID:    p.CategoryID,
		SupplierID:    p.SupplierID,
		MinStockLevel: p.MinStockLevel,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
