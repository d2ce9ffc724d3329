package dto

// ErrorResponse cuerpo de error HTTP.
// Detail solo se llena en modo development (diagnóstico); en production va vacío.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// ListMeta metadatos comunes de un listado paginado.
// TotalMatching es el total que coincide con los filtros ANTES de paginar;
// PageSize es configuración del servidor, no entrada del cliente.
type ListMeta struct {
	Page          int `json:"page"`
	PageSize      int `json:"pageSize"`
	TotalMatching int `json:"totalMatching"`
}
