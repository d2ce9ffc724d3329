package postgres

import (
	"fmt"
	"strings"

	"github.com/jhoicas/tienda-api/internal/application/query"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/shopspring/decimal"
)

// filterColumn describe cómo se traduce un campo filtrable a SQL.
// Los valores numéricos se convierten a decimal antes de parametrizar para que
// la comparación sea numérica y un operando malformado falle temprano.
type filterColumn struct {
	column  string
	numeric bool
}

// buildFilterClause traduce la Spec a un fragmento WHERE parametrizado.
// Los valores nunca se interpolan en el SQL: siempre van como argumentos.
// Devuelve el fragmento (vacío si no hay condiciones) y los argumentos,
// numerados a partir de $1.
func buildFilterClause(spec *query.Spec, columns map[string]filterColumn, searchColumn string) (string, []any, error) {
	var conds []string
	var args []any

	if spec.Keyword != "" {
		args = append(args, "%"+spec.Keyword+"%")
		conds = append(conds, fmt.Sprintf("%s ILIKE $%d", searchColumn, len(args)))
	}

	for _, f := range spec.Filters {
		col, ok := columns[f.Field]
		if !ok {
			// query.Parse ya valida el allow-list; esto cubre un desajuste de mapas.
			return "", nil, fmt.Errorf("%w: campo '%s' no filtrable", domain.ErrValidation, f.Field)
		}
		if col.numeric {
			v, err := decimal.NewFromString(f.Value)
			if err != nil {
				return "", nil, fmt.Errorf("%w: '%s' no es numérico para '%s'", domain.ErrValidation, f.Value, f.Field)
			}
			args = append(args, v)
		} else {
			args = append(args, f.Value)
		}
		conds = append(conds, fmt.Sprintf("%s %s $%d", col.column, f.Op, len(args)))
	}

	if len(conds) == 0 {
		return "", nil, nil
	}
	return "WHERE " + strings.Join(conds, " AND "), args, nil
}
