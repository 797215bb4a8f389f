package repository

import "github.com/jhoicas/tienda-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetBySKU compara el SKU sin distinguir mayúsculas.
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	List(limit, offset int) ([]*entity.Product, error)
	Count() (int, error)
	ListByCategory(category string, limit, offset int) ([]*entity.Product, error)
	// ListAvailable devuelve solo productos con stock.
	ListAvailable(limit, offset int) ([]*entity.Product, error)
	Delete(id string) (bool, error)
}
