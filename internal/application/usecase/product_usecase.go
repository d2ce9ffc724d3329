package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/query"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// productFilterOptions campos filtrables del listado de productos.
// `keyword` busca sobre el nombre; no necesita estar aquí.
var productFilterOptions = query.Options{
	Filterable: map[string]bool{
		"price":    true,
		"category": true,
		"stock":    true,
		"rating":   true,
	},
}

// ReviewTxRunner ejecuta la escritura de una reseña y el recálculo del rating
// del producto dentro de una misma transacción.
type ReviewTxRunner interface {
	RunReview(ctx context.Context, fn func(
		reviews repository.ReviewRepository,
		products repository.ProductRepository,
	) error) error
}

// ProductUseCase catálogo de productos y sus reseñas.
type ProductUseCase struct {
	products repository.ProductRepository
	reviews  repository.ReviewRepository
	tx       ReviewTxRunner
	pageSize int
}

// NewProductUseCase construye el caso de uso de productos.
func NewProductUseCase(products repository.ProductRepository, reviews repository.ReviewRepository, tx ReviewTxRunner, pageSize int) *ProductUseCase {
	return &ProductUseCase{products: products, reviews: reviews, tx: tx, pageSize: pageSize}
}

// Create registra un producto nuevo (solo admin; createdBy es el admin resuelto).
func (uc *ProductUseCase) Create(ctx context.Context, createdBy string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Stock:       in.Stock,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID devuelve un producto o ErrNotFound.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// List aplica el motor de filtros sobre los query params y devuelve la página
// junto con el total que coincide antes de paginar.
func (uc *ProductUseCase) List(ctx context.Context, params map[string]string) (*dto.ProductListResponse, error) {
	spec, err := query.Parse(params, productFilterOptions)
	if err != nil {
		return nil, err
	}
	products, total, err := uc.products.ListFiltered(ctx, spec, uc.pageSize)
	if err != nil {
		return nil, err
	}
	out := &dto.ProductListResponse{
		ListMeta: dto.ListMeta{Page: spec.Page, PageSize: uc.pageSize, TotalMatching: total},
		Items:    make([]dto.ProductResponse, 0, len(products)),
	}
	for _, p := range products {
		out.Items = append(out.Items, *toProductResponse(p))
	}
	return out, nil
}

// Update modifica los campos presentes (no nil) del producto.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Stock != nil {
		product.Stock = *in.Stock
	}
	product.UpdatedAt = time.Now()
	if err := uc.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto o devuelve ErrNotFound.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.products.Delete(ctx, id)
}

// CreateReview crea o actualiza la reseña del usuario sobre el producto y
// recalcula rating/num_reviews del producto en la misma transacción.
// El promedio se recalcula siempre desde las reseñas vigentes (AVG), nunca de
// forma incremental.
func (uc *ProductUseCase) CreateReview(ctx context.Context, userID string, in dto.CreateReviewRequest) error {
	product, err := uc.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	now := time.Now()
	review := &entity.Review{
		ID:        uuid.New().String(),
		ProductID: in.ProductID,
		UserID:    userID,
		Rating:    in.Rating,
		Comment:   in.Comment,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return uc.tx.RunReview(ctx, func(reviews repository.ReviewRepository, products repository.ProductRepository) error {
		if err := reviews.Upsert(ctx, review); err != nil {
			return err
		}
		return syncProductRating(ctx, reviews, products, in.ProductID)
	})
}

// ListReviews devuelve las reseñas de un producto.
func (uc *ProductUseCase) ListReviews(ctx context.Context, productID string) ([]dto.ReviewResponse, error) {
	product, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	reviews, err := uc.reviews.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, *toReviewResponse(r))
	}
	return out, nil
}

// DeleteReview elimina una reseña (solo admin) y recalcula el rating.
func (uc *ProductUseCase) DeleteReview(ctx context.Context, reviewID string) error {
	review, err := uc.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review == nil {
		return domain.ErrNotFound
	}
	return uc.tx.RunReview(ctx, func(reviews repository.ReviewRepository, products repository.ProductRepository) error {
		if err := reviews.Delete(ctx, review.ID); err != nil {
			return err
		}
		return syncProductRating(ctx, reviews, products, review.ProductID)
	})
}

// syncProductRating recalcula el promedio desde las reseñas y lo fija en el producto.
func syncProductRating(ctx context.Context, reviews repository.ReviewRepository, products repository.ProductRepository, productID string) error {
	count, avg, err := reviews.Stats(ctx, productID)
	if err != nil {
		return err
	}
	return products.UpdateRating(ctx, productID, avg, count)
}
