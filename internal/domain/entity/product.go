package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. InStock es derivado: siempre
// igual a StockQuantity > 0, recalculado en cada escritura que toca el stock.
type Product struct {
	ID            string
	Name          string
	Description   string
	Price         decimal.Decimal // no negativo
	Category      string
	SKU           string // único, case-insensitive
	InStock       bool
	StockQuantity int // no negativo
	ImageURL      *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RecalcInStock recalcula el flag derivado a partir del stock actual.
func (p *Product) RecalcInStock() {
	p.InStock = p.StockQuantity > 0
}
