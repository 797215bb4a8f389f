package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Category      string          `json:"category"`
	SKU           string          `json:"sku"`
	StockQuantity int             `json:"stockQuantity"`
	ImageURL      *string         `json:"imageUrl"`
}

// UpdateProductRequest entrada para actualizar; solo los campos presentes se tocan.
// InStock no es actualizable: se deriva siempre de StockQuantity.
type UpdateProductRequest struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	Category      *string          `json:"category"`
	SKU           *string          `json:"sku"`
	StockQuantity *int             `json:"stockQuantity"`
	ImageURL      *string          `json:"imageUrl"`
}

// UpdateStockRequest entrada para el ajuste puntual de stock.
type UpdateStockRequest struct {
	StockQuantity *int `json:"stockQuantity"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Category      string          `json:"category"`
	SKU           string          `json:"sku"`
	InStock       bool            `json:"inStock"`
	StockQuantity int             `json:"stockQuantity"`
	ImageURL      *string         `json:"imageUrl,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}
