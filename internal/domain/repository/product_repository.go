package repository

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/application/query"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error

	// ListFiltered aplica la Spec (keyword + filtros + página) y devuelve la
	// página de productos junto con el total que coincide antes de paginar.
	// El orden natural es created_at descendente.
	ListFiltered(ctx context.Context, spec *query.Spec, pageSize int) ([]*entity.Product, int, error)

	// UpdateRating fija rating y num_reviews del producto (recalculados desde
	// las reseñas dentro de la misma transacción).
	UpdateRating(ctx context.Context, id string, rating decimal.Decimal, numReviews int) error
}
