// Package query traduce los query params de un listado a una especificación
// acotada y segura: búsqueda por keyword, filtros de comparación y paginación.
// La especificación vive dentro de una sola petición; nunca se persiste.
package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/tienda-api/internal/domain"
)

// Op operador de comparación de un filtro.
type Op string

// Operadores soportados.
const (
	OpEq  Op = "="
	OpGt  Op = ">"
	OpGte Op = ">="
	OpLt  Op = "<"
	OpLte Op = "<="
)

// ops mapea el sufijo de query param (price[gte]) al operador SQL.
var ops = map[string]Op{
	"gt":  OpGt,
	"gte": OpGte,
	"lt":  OpLt,
	"lte": OpLte,
}

// Filter es una condición campo-operador-valor derivada de un query param.
type Filter struct {
	Field string
	Op    Op
	Value string
}

// Spec es la representación parseada de los parámetros de un listado.
type Spec struct {
	Keyword string
	Filters []Filter
	Page    int // >= 1
}

// Options restringe qué campos acepta el recurso.
// Un campo fuera del allow-list se rechaza, no se ignora en silencio.
type Options struct {
	Filterable map[string]bool
}

// Claves reservadas: no son filtros de igualdad.
const (
	keyPage    = "page"
	keyKeyword = "keyword"
)

// Parse construye la Spec desde los query params de la petición.
//
//   - `page` se convierte a entero y se fuerza a >= 1 (default 1).
//   - `keyword` es búsqueda de texto sobre el campo designado del recurso.
//   - `campo[op]` con op en {gt,gte,lt,lte} es un filtro de rango; un operador
//     no reconocido devuelve ErrValidation en lugar de ignorarse.
//   - Cualquier otra clave es un filtro de igualdad literal.
func Parse(params map[string]string, opts Options) (*Spec, error) {
	spec := &Spec{Page: 1}

	for key, value := range params {
		switch key {
		case keyPage:
			if n, err := strconv.Atoi(value); err == nil && n >= 1 {
				spec.Page = n
			}
			continue
		case keyKeyword:
			spec.Keyword = strings.TrimSpace(value)
			continue
		}

		field, op, err := splitOperator(key)
		if err != nil {
			return nil, err
		}
		if !opts.Filterable[field] {
			return nil, fmt.Errorf("%w: campo '%s' no filtrable", domain.ErrValidation, field)
		}
		spec.Filters = append(spec.Filters, Filter{Field: field, Op: op, Value: value})
	}

	return spec, nil
}

// splitOperator separa "price[gte]" en ("price", OpGte). Sin corchetes es igualdad.
func splitOperator(key string) (string, Op, error) {
	open := strings.IndexByte(key, '[')
	if open < 0 {
		return key, OpEq, nil
	}
	if !strings.HasSuffix(key, "]") || open == 0 {
		return "", "", fmt.Errorf("%w: parámetro '%s' malformado", domain.ErrValidation, key)
	}
	field := key[:open]
	suffix := key[open+1 : len(key)-1]
	op, ok := ops[suffix]
	if !ok {
		return "", "", fmt.Errorf("%w: operador '%s' no soportado", domain.ErrValidation, suffix)
	}
	return field, op, nil
}

// Offset devuelve el desplazamiento de la página: (page-1) * pageSize.
func (s *Spec) Offset(pageSize int) int {
	return (s.Page - 1) * pageSize
}
