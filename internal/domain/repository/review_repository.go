package repository

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ReviewRepository define el puerto de persistencia para Review.
type ReviewRepository interface {
	// Upsert crea la reseña o, si el usuario ya reseñó el producto, actualiza
	// rating y comentario de la existente.
	Upsert(ctx context.Context, review *entity.Review) error
	GetByID(ctx context.Context, id string) (*entity.Review, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.Review, error)
	Delete(ctx context.Context, id string) error

	// Stats devuelve cantidad y promedio de rating de las reseñas vigentes del
	// producto. Sin reseñas: (0, 0).
	Stats(ctx context.Context, productID string) (count int, avg decimal.Decimal, err error)
}
