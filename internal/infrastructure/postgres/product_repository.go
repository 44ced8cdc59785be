package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, business_id, created_by, name, description, price, image, image_url, status, rejection_reason, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.BusinessID, product.CreatedByID, product.Name, product.Description,
		product.Price, product.Image, product.ImageURL, product.Status, product.RejectionReason,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	var p entity.Product
	if err := scanProduct(r.q.QueryRow(context.Background(), query, id), &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// Update actualiza un producto.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET business_id = $2, name = $3, description = $4, price = $5,
			image = $6, image_url = $7, status = $8, rejection_reason = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.BusinessID, product.Name, product.Description, product.Price,
		product.Image, product.ImageURL, product.Status, product.RejectionReason, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// List productos según el filtro, más recientes primero.
func (r *ProductRepo) List(filter repository.ProductFilter) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	args := []any{}
	n := 0
	arg := func(v any) string {
		n++
		args = append(args, v)
		return fmt.Sprintf("$%d", n)
	}
	if filter.BusinessID != nil {
		query += ` AND business_id = ` + arg(*filter.BusinessID)
	}
	if filter.CreatedByID != nil {
		query += ` AND created_by = ` + arg(*filter.CreatedByID)
	}
	if filter.Status != nil {
		query += ` AND status = ` + arg(*filter.Status)
	}
	query += ` ORDER BY created_at DESC LIMIT ` + arg(filter.Limit) + ` OFFSET ` + arg(filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// ApprovedIDs ids de productos aprobados ordenados por updated_at desc.
func (r *ProductRepo) ApprovedIDs() ([]string, error) {
	query := `SELECT id FROM products WHERE status = $1 ORDER BY updated_at DESC`
	rows, err := r.q.Query(context.Background(), query, entity.StatusApproved)
	if err != nil {
		return nil, fmt.Errorf("approved product ids: %w", err)
	}
	defer rows.Close()
	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan product id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GetApprovedByIDs materializa el listado público. Se re-filtra por status
// approved por si el cache trae ids desactualizados dentro de la ventana TTL.
func (r *ProductRepo) GetApprovedByIDs(ids []string) ([]*entity.Product, error) {
	if len(ids) == 0 {
		return []*entity.Product{}, nil
	}
	query := `
		SELECT ` + productColumns + ` FROM products
		WHERE id = ANY($1) AND status = $2
		ORDER BY updated_at DESC`
	rows, err := r.q.Query(context.Background(), query, ids, entity.StatusApproved)
	if err != nil {
		return nil, fmt.Errorf("get approved products: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func collectProducts(rows pgx.Rows) ([]*entity.Product, error) {
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

func scanProduct(row pgx.Row, p *entity.Product) error {
	return row.Scan(
		&p.ID, &p.BusinessID, &p.CreatedByID, &p.Name, &p.Description,
		&p.Price, &p.Image, &p.ImageURL, &p.Status, &p.RejectionReason,
		&p.CreatedAt, &p.UpdatedAt,
	)
}
