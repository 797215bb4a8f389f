package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// ProductUseCase reglas de negocio del catálogo. InStock nunca se escribe
// directo: se deriva de StockQuantity en cada escritura que toca el stock.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto. Precio y stock no negativos, SKU único.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.SKU == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.IsNegative() || in.StockQuantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetBySKU(in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		Name:          in.Name,
		Description:   in.Description,
		Price:         in.Price,
		Category:      in.Category,
		SKU:           in.SKU,
		StockQuantity: in.StockQuantity,
		ImageURL:      in.ImageURL,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	product.RecalcInStock()
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// List lista productos con paginación y total.
func (uc *ProductUseCase) List(page dto.PageRequest) ([]dto.ProductResponse, int, error) {
	page.DefaultPage()
	products, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := uc.repo.Count()
	if err != nil {
		return nil, 0, err
	}
	return toProductResponses(products), total, nil
}

// ListByCategory lista productos de una categoría.
func (uc *ProductUseCase) ListByCategory(category string, page dto.PageRequest) ([]dto.ProductResponse, error) {
	page.DefaultPage()
	products, err := uc.repo.ListByCategory(category, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toProductResponses(products), nil
}

// ListAvailable lista solo productos con stock.
func (uc *ProductUseCase) ListAvailable(page dto.PageRequest) ([]dto.ProductResponse, error) {
	page.DefaultPage()
	products, err := uc.repo.ListAvailable(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toProductResponses(products), nil
}

// Update modifica los campos presentes. Cambiar el SKU se valida contra todas
// las demás filas; cambiar StockQuantity recalcula InStock.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.SKU != nil && *in.SKU != "" && *in.SKU != product.SKU {
		other, err := uc.repo.GetBySKU(*in.SKU)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != product.ID {
			return nil, domain.ErrDuplicate
		}
		product.SKU = *in.SKU
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.StockQuantity != nil {
		if *in.StockQuantity < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.StockQuantity = *in.StockQuantity
		product.RecalcInStock()
	}
	if in.ImageURL != nil {
		product.ImageURL = in.ImageURL
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// UpdateStock ajuste puntual de stock (PATCH). Recalcula InStock.
func (uc *ProductUseCase) UpdateStock(id string, in dto.UpdateStockRequest) (*dto.ProductResponse, error) {
	if in.StockQuantity == nil || *in.StockQuantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	product.StockQuantity = *in.StockQuantity
	product.RecalcInStock()
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto. Devuelve si existía.
func (uc *ProductUseCase) Delete(id string) (bool, error) {
	return uc.repo.Delete(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		Category:      p.Category,
		SKU:           p.SKU,
		InStock:       p.InStock,
		StockQuantity: p.StockQuantity,
		ImageURL:      p.ImageURL,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toProductResponses(products []*entity.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *toProductResponse(p))
	}
	return out
}
