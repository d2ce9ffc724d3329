package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
)

// ProductHandler catálogo de productos y reseñas.
// El listado y el detalle son públicos; las mutaciones son solo admin y las
// reseñas requieren sesión.
type ProductHandler struct {
	uc  *usecase.ProductUseCase
	env string
}

// NewProductHandler construye el handler de productos.
func NewProductHandler(uc *usecase.ProductUseCase, env string) *ProductHandler {
	return &ProductHandler{uc: uc, env: env}
}

// List godoc
// @Summary      Listar productos con búsqueda, filtros y paginación
// @Tags         products
// @Produce      json
// @Param        page     query  int     false  "Página (>=1)"
// @Param        keyword  query  string  false  "Búsqueda por nombre"
// @Param        category query  string  false  "Filtro de igualdad"
// @Success      200  {object}  dto.ProductListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/v1/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	// Filtros de rango: price[gte]=10&price[lte]=50, etc. Un operador no
	// reconocido responde 400, no se ignora.
	out, err := h.uc.List(c.Context(), c.Queries())
	if err != nil {
		return respondError(c, h.env, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.env, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear producto (admin)
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/v1/admin/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" || in.Category == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name y category son requeridos"})
	}
	out, err := h.uc.Create(c.Context(), CurrentUser(c).ID, in)
	if err != nil {
		return respondError(c, h.env, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar producto (admin)
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/admin/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.env, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto (admin)
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/admin/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, h.env, err)
	}
	return c.JSON(fiber.Map{"message": "producto eliminado"})
}

// CreateReview godoc
// @Summary      Crear o actualizar la reseña propia
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReviewRequest  true  "product_id, rating, comment"
// @Success      200   {object}  map[string]string
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/reviews [put]
func (h *ProductHandler) CreateReview(c *fiber.Ctx) error {
	var in dto.CreateReviewRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductID == "" || in.Rating < 1 || in.Rating > 5 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id y rating (1..5) son requeridos"})
	}
	if err := h.uc.CreateReview(c.Context(), CurrentUser(c).ID, in); err != nil {
		return respondError(c, h.env, err)
	}
	return c.JSON(fiber.Map{"message": "reseña registrada"})
}

// ListReviews godoc
// @Summary      Listar reseñas de un producto
// @Tags         reviews
// @Produce      json
// @Param        id   query  string  true  "ID del producto"
// @Success      200  {array}  dto.ReviewResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/reviews [get]
func (h *ProductHandler) ListReviews(c *fiber.Ctx) error {
	productID := c.Query("id")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id (producto) es requerido"})
	}
	out, err := h.uc.ListReviews(c.Context(), productID)
	if err != nil {
		return respondError(c, h.env, err)
	}
	return c.JSON(out)
}

// DeleteReview godoc
// @Summary      Eliminar una reseña (admin)
// @Tags         reviews
// @Produce      json
// @Param        id   query  string  true  "ID de la reseña"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/admin/reviews [delete]
func (h *ProductHandler) DeleteReview(c *fiber.Ctx) error {
	reviewID := c.Query("id")
	if reviewID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id (reseña) es requerido"})
	}
	if err := h.uc.DeleteReview(c.Context(), reviewID); err != nil {
		return respondError(c, h.env, err)
	}
	return c.JSON(fiber.Map{"message": "reseña eliminada"})
}
