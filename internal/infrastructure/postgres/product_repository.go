package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/tienda-api/internal/application/query"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// Columnas filtrables del listado de productos; el keyword busca sobre name.
var productFilterColumns = map[string]filterColumn{
	"price":    {column: "price", numeric: true},
	"stock":    {column: "stock", numeric: true},
	"rating":   {column: "rating", numeric: true},
	"category": {column: "category"},
}

const productColumns = `id, name, description, price, category, stock, rating, num_reviews, created_by, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. Rating inicia en 0 sin reseñas.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	sql := `
		INSERT INTO products (id, name, description, price, category, stock, rating, num_reviews, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, sql,
		product.ID, product.Name, product.Description, product.Price, product.Category,
		product.Stock, product.Rating, product.NumReviews, product.CreatedBy,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	sql := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update persiste los campos editables del producto (no el rating: ver UpdateRating).
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	sql := `
		UPDATE products
		SET name = $2, description = $3, price = $4, category = $5, stock = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(ctx, sql,
		product.ID, product.Name, product.Description, product.Price, product.Category,
		product.Stock, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateRating fija rating y num_reviews (recalculados desde las reseñas).
func (r *ProductRepo) UpdateRating(ctx context.Context, id string, rating decimal.Decimal, numReviews int) error {
	sql := `UPDATE products SET rating = $2, num_reviews = $3 WHERE id = $1`
	_, err := r.q.Exec(ctx, sql, id, rating, numReviews)
	if err != nil {
		return fmt.Errorf("update product rating: %w", err)
	}
	return nil
}

// ListFiltered aplica la Spec y devuelve la página más el total que coincide
// antes de paginar. Orden natural: created_at descendente.
func (r *ProductRepo) ListFiltered(ctx context.Context, spec *query.Spec, pageSize int) ([]*entity.Product, int, error) {
	where, args, err := buildFilterClause(spec, productFilterColumns, "name")
	if err != nil {
		return nil, 0, err
	}

	var total int
	countSQL := fmt.Sprintf(`SELECT COUNT(*) FROM products %s`, where)
	if err := r.q.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	pageSQL := fmt.Sprintf(`SELECT %s FROM products %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		productColumns, where, len(args)+1, len(args)+2)
	rows, err := r.q.Query(ctx, pageSQL, append(args, pageSize, spec.Offset(pageSize))...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

// Delete elimina un producto por ID (las reseñas caen por FK ON DELETE CASCADE).
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.Stock,
		&p.Rating, &p.NumReviews, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
