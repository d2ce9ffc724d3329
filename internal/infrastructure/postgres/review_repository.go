package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.ReviewRepository = (*ReviewRepo)(nil)

const reviewColumns = `id, product_id, user_id, rating, comment, created_at, updated_at`

// ReviewRepo implementación del puerto ReviewRepository sobre PostgreSQL (usable con pool o tx).
type ReviewRepo struct {
	q Querier
}

// NewReviewRepository construye el adaptador de persistencia para reseñas. Pasar pool o tx (Querier).
func NewReviewRepository(q Querier) *ReviewRepo {
	return &ReviewRepo{q: q}
}

// Upsert crea la reseña o actualiza la existente del mismo usuario sobre el
// mismo producto (constraint único product_id+user_id).
func (r *ReviewRepo) Upsert(ctx context.Context, review *entity.Review) error {
	sql := `
		INSERT INTO reviews (id, product_id, user_id, rating, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (product_id, user_id)
		DO UPDATE SET rating = EXCLUDED.rating, comment = EXCLUDED.comment, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, sql,
		review.ID, review.ProductID, review.UserID, review.Rating, review.Comment,
		review.CreatedAt, review.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert review: %w", err)
	}
	return nil
}

// GetByID obtiene una reseña por ID. (nil, nil) si no existe.
func (r *ReviewRepo) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	sql := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`
	var rev entity.Review
	err := r.q.QueryRow(ctx, sql, id).Scan(
		&rev.ID, &rev.ProductID, &rev.UserID, &rev.Rating, &rev.Comment, &rev.CreatedAt, &rev.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get review: %w", err)
	}
	return &rev, nil
}

// ListByProduct lista las reseñas de un producto, más recientes primero.
func (r *ReviewRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Review, error) {
	sql := `SELECT ` + reviewColumns + ` FROM reviews WHERE product_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, sql, productID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var list []*entity.Review
	for rows.Next() {
		var rev entity.Review
		if err := rows.Scan(&rev.ID, &rev.ProductID, &rev.UserID, &rev.Rating, &rev.Comment, &rev.CreatedAt, &rev.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		list = append(list, &rev)
	}
	return list, rows.Err()
}

// Delete elimina una reseña por ID.
func (r *ReviewRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	return nil
}

// Stats devuelve cantidad y promedio de rating de las reseñas del producto.
// El promedio siempre se calcula con AVG sobre las filas vigentes.
func (r *ReviewRepo) Stats(ctx context.Context, productID string) (int, decimal.Decimal, error) {
	sql := `SELECT COUNT(*), COALESCE(AVG(rating), 0) FROM reviews WHERE product_id = $1`
	var count int
	var avg decimal.Decimal
	if err := r.q.QueryRow(ctx, sql, productID).Scan(&count, &avg); err != nil {
		return 0, decimal.Zero, fmt.Errorf("review stats: %w", err)
	}
	return count, avg, nil
}
