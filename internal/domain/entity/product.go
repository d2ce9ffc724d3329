package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// Rating es el promedio simple de las calificaciones de las reseñas vigentes;
// se recalcula siempre desde las reseñas, nunca de forma incremental.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	Stock       int
	Rating      decimal.Decimal
	NumReviews  int
	CreatedBy   string // ID del usuario (admin) que lo creó
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
