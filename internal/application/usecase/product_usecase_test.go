package usecase_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/query"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: productos, reseñas y runner transaccional
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]*entity.Product{}}
}

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) ListFiltered(_ context.Context, _ *query.Spec, pageSize int) ([]*entity.Product, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.products {
		cp := *p
		out = append(out, &cp)
		if len(out) == pageSize {
			break
		}
	}
	return out, len(r.products), nil
}

func (r *fakeProductRepo) UpdateRating(_ context.Context, id string, rating decimal.Decimal, numReviews int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Rating = rating
	p.NumReviews = numReviews
	return nil
}

type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews map[string]*entity.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: map[string]*entity.Review{}}
}

func (r *fakeReviewRepo) Upsert(_ context.Context, review *entity.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	// Misma semántica que ON CONFLICT (product_id, user_id) DO UPDATE.
	for _, existing := range r.reviews {
		if existing.ProductID == review.ProductID && existing.UserID == review.UserID {
			existing.Rating = review.Rating
			existing.Comment = review.Comment
			existing.UpdatedAt = review.UpdatedAt
			return nil
		}
	}
	cp := *review
	r.reviews[review.ID] = &cp
	return nil
}

func (r *fakeReviewRepo) GetByID(_ context.Context, id string) (*entity.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rev, ok := r.reviews[id]
	if !ok {
		return nil, nil
	}
	cp := *rev
	return &cp, nil
}

func (r *fakeReviewRepo) ListByProduct(_ context.Context, productID string) ([]*entity.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Review
	for _, rev := range r.reviews {
		if rev.ProductID == productID {
			cp := *rev
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeReviewRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.reviews, id)
	return nil
}

func (r *fakeReviewRepo) Stats(_ context.Context, productID string) (int, decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	sum := decimal.Zero
	for _, rev := range r.reviews {
		if rev.ProductID == productID {
			count++
			sum = sum.Add(decimal.NewFromInt(int64(rev.Rating)))
		}
	}
	if count == 0 {
		return 0, decimal.Zero, nil
	}
	return count, sum.Div(decimal.NewFromInt(int64(count))), nil
}

// fakeTxRunner ejecuta el closure directamente sobre los mismos fakes: en los
// tests no hay transacción real que aislar.
type fakeTxRunner struct {
	reviews  repository.ReviewRepository
	products repository.ProductRepository
	calls    int
}

func (tx *fakeTxRunner) RunReview(ctx context.Context, fn func(repository.ReviewRepository, repository.ProductRepository) error) error {
	tx.calls++
	return fn(tx.reviews, tx.products)
}

// ──────────────────────────────────────────────────────────────────────────────
// Armado
// ──────────────────────────────────────────────────────────────────────────────

func buildProductUseCase(t *testing.T) (*usecase.ProductUseCase, *fakeProductRepo, *fakeReviewRepo, *fakeTxRunner) {
	t.Helper()
	products := newFakeProductRepo()
	reviews := newFakeReviewRepo()
	tx := &fakeTxRunner{reviews: reviews, products: products}
	return usecase.NewProductUseCase(products, reviews, tx, 20), products, reviews, tx
}

func crearProducto(t *testing.T, uc *usecase.ProductUseCase) *dto.ProductResponse {
	t.Helper()
	out, err := uc.Create(context.Background(), "admin-1", dto.CreateProductRequest{
		Name:     "Camisa",
		Price:    decimal.NewFromInt(25),
		Category: "ropa",
		Stock:    10,
	})
	require.NoError(t, err)
	return out
}

func crearResena(t *testing.T, uc *usecase.ProductUseCase, userID, productID string, rating int) {
	t.Helper()
	require.NoError(t, uc.CreateReview(context.Background(), userID, dto.CreateReviewRequest{
		ProductID: productID,
		Rating:    rating,
		Comment:   "comentario",
	}))
}

// ──────────────────────────────────────────────────────────────────────────────
// Reseñas y recálculo del rating
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateReview_RecalculaElPromedioDesdeLasResenas(t *testing.T) {
	uc, products, _, tx := buildProductUseCase(t)
	p := crearProducto(t, uc)

	crearResena(t, uc, "user-1", p.ID, 4)
	crearResena(t, uc, "user-2", p.ID, 2)

	stored, err := products.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.NumReviews)
	assert.True(t, stored.Rating.Equal(decimal.NewFromInt(3)),
		"el promedio debe ser AVG de las reseñas vigentes, no un acumulado incremental")
	assert.Equal(t, 2, tx.calls, "cada escritura de reseña corre dentro del runner transaccional")
}

func TestCreateReview_MismoUsuarioReemplazaSuResena(t *testing.T) {
	uc, products, reviews, _ := buildProductUseCase(t)
	p := crearProducto(t, uc)

	crearResena(t, uc, "user-1", p.ID, 5)
	crearResena(t, uc, "user-1", p.ID, 1) // segunda opinión del mismo usuario

	list, err := reviews.ListByProduct(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1, "un usuario tiene a lo sumo una reseña por producto")

	stored, err := products.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.NumReviews)
	assert.True(t, stored.Rating.Equal(decimal.NewFromInt(1)),
		"el promedio refleja la reseña reemplazada, no ambas")
}

func TestCreateReview_ProductoInexistente_RetornaNotFound(t *testing.T) {
	uc, _, _, _ := buildProductUseCase(t)

	err := uc.CreateReview(context.Background(), "user-1", dto.CreateReviewRequest{
		ProductID: "no-existe",
		Rating:    5,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteReview_UltimaResena_DejaRatingEnCero(t *testing.T) {
	uc, products, reviews, _ := buildProductUseCase(t)
	p := crearProducto(t, uc)
	crearResena(t, uc, "user-1", p.ID, 5)

	list, err := reviews.ListByProduct(context.Background(), p.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, uc.DeleteReview(context.Background(), list[0].ID))

	stored, err := products.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.NumReviews)
	assert.True(t, stored.Rating.IsZero(), "sin reseñas el rating vuelve a cero")
}

func TestDeleteReview_RecalculaConLasRestantes(t *testing.T) {
	uc, products, reviews, _ := buildProductUseCase(t)
	p := crearProducto(t, uc)
	crearResena(t, uc, "user-1", p.ID, 5)
	crearResena(t, uc, "user-2", p.ID, 1)

	list, err := reviews.ListByProduct(context.Background(), p.ID)
	require.NoError(t, err)
	var idDeUno string
	for _, rev := range list {
		if rev.Rating == 1 {
			idDeUno = rev.ID
		}
	}
	require.NotEmpty(t, idDeUno)

	require.NoError(t, uc.DeleteReview(context.Background(), idDeUno))

	stored, err := products.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.NumReviews)
	assert.True(t, stored.Rating.Equal(decimal.NewFromInt(5)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Listado y CRUD
// ──────────────────────────────────────────────────────────────────────────────

func TestList_PropagaMetaDePaginacion(t *testing.T) {
	uc, _, _, _ := buildProductUseCase(t)
	crearProducto(t, uc)
	crearProducto(t, uc)

	out, err := uc.List(context.Background(), map[string]string{"page": "1"})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Page)
	assert.Equal(t, 20, out.PageSize, "el tamaño de página lo fija el servidor")
	assert.Equal(t, 2, out.TotalMatching)
	assert.Len(t, out.Items, 2)
}

func TestList_OperadorInvalido_RetornaErrValidation(t *testing.T) {
	uc, _, _, _ := buildProductUseCase(t)

	_, err := uc.List(context.Background(), map[string]string{"price[between]": "10"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpdate_SoloTocaLosCamposPresentes(t *testing.T) {
	uc, _, _, _ := buildProductUseCase(t)
	p := crearProducto(t, uc)

	nuevoPrecio := decimal.NewFromInt(30)
	out, err := uc.Update(context.Background(), p.ID, dto.UpdateProductRequest{
		Price: &nuevoPrecio,
	})
	require.NoError(t, err)
	assert.True(t, out.Price.Equal(nuevoPrecio))
	assert.Equal(t, "Camisa", out.Name, "los campos nil no se modifican")
	assert.Equal(t, 10, out.Stock)
}

func TestDelete_ProductoInexistente_RetornaNotFound(t *testing.T) {
	uc, _, _, _ := buildProductUseCase(t)
	assert.ErrorIs(t, uc.Delete(context.Background(), "no-existe"), domain.ErrNotFound)
}
