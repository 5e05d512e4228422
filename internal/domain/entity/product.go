package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo de una marca.
type Product struct {
	ID          string
	Name        string
	SKU         string
	Price       decimal.Decimal
	Description string
	BrandID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
