package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre SQLite.
// Price se guarda como TEXT y se convierte con shopspring/decimal al leer.
type ProductRepo struct {
	db *sql.DB
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(db *sql.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

const productColumns = `id, name, description, price, category, sku, in_stock, stock_quantity, image_url, created_at, updated_at`

// Create persiste un producto nuevo. SKU tiene UNIQUE COLLATE NOCASE.
func (r *ProductRepo) Create(p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.Exec(query,
		p.ID, p.Name, p.Description, p.Price.String(), p.Category, p.SKU,
		p.InStock, p.StockQuantity, ptrToNullString(p.ImageURL), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.scanOne(`SELECT `+productColumns+` FROM products WHERE id = ?`, id)
}

// GetBySKU obtiene un producto por SKU (case-insensitive).
func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	return r.scanOne(`SELECT `+productColumns+` FROM products WHERE sku = ? LIMIT 1`, sku)
}

func (r *ProductRepo) scanOne(query string, args ...interface{}) (*entity.Product, error) {
	p, err := scanProduct(r.db.QueryRow(query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*entity.Product, error) {
	var p entity.Product
	var price string
	var imageURL sql.NullString
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &price, &p.Category, &p.SKU,
		&p.InStock, &p.StockQuantity, &imageURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	d, err := parseDecimal(price)
	if err != nil {
		return nil, fmt.Errorf("parse price: %w", err)
	}
	p.Price = d
	p.ImageURL = nullStringToPtr(imageURL)
	return &p, nil
}

// Update actualiza un producto existente.
func (r *ProductRepo) Update(p *entity.Product) error {
	query := `
		UPDATE products
		SET name = ?, description = ?, price = ?, category = ?, sku = ?, in_stock = ?, stock_quantity = ?, image_url = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.Exec(query,
		p.Name, p.Description, p.Price.String(), p.Category, p.SKU,
		p.InStock, p.StockQuantity, ptrToNullString(p.ImageURL), p.UpdatedAt, p.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// List lista productos con paginación, más recientes primero.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	return r.list(`SELECT `+productColumns+` FROM products ORDER BY created_at DESC LIMIT ? OFFSET ?`, limit, offset)
}

// ListByCategory lista productos de una categoría.
func (r *ProductRepo) ListByCategory(category string, limit, offset int) ([]*entity.Product, error) {
	return r.list(`SELECT `+productColumns+` FROM products WHERE category = ? ORDER BY created_at DESC LIMIT ? OFFSET ?`, category, limit, offset)
}

// ListAvailable lista solo productos con stock.
func (r *ProductRepo) ListAvailable(limit, offset int) ([]*entity.Product, error) {
	return r.list(`SELECT `+productColumns+` FROM products WHERE in_stock = 1 ORDER BY created_at DESC LIMIT ? OFFSET ?`, limit, offset)
}

func (r *ProductRepo) list(query string, args ...interface{}) ([]*entity.Product, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Count devuelve el total de productos.
func (r *ProductRepo) Count() (int, error) {
	var n int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// Delete elimina un producto por ID. Devuelve si existía la fila.
func (r *ProductRepo) Delete(id string) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
