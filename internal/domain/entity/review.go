package entity

import "time"

// Review es la reseña de un usuario sobre un producto.
// Hay a lo sumo una reseña por (producto, usuario): crear de nuevo actualiza la existente.
type Review struct {
	ID        string
	ProductID string
	UserID    string
	Rating    int // 1..5
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
