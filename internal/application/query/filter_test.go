package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/query"
	"github.com/jhoicas/tienda-api/internal/domain"
)

var testOpts = query.Options{
	Filterable: map[string]bool{
		"price":    true,
		"category": true,
		"stock":    true,
	},
}

func TestParse_SinParams_PaginaUno(t *testing.T) {
	spec, err := query.Parse(map[string]string{}, testOpts)
	require.NoError(t, err)

	assert.Equal(t, 1, spec.Page, "sin `page` el default es la página 1")
	assert.Empty(t, spec.Keyword)
	assert.Empty(t, spec.Filters)
}

func TestParse_KeywordYRangos(t *testing.T) {
	spec, err := query.Parse(map[string]string{
		"keyword":    "camisa",
		"price[gte]": "10",
		"price[lte]": "50",
		"page":       "2",
	}, testOpts)
	require.NoError(t, err)

	assert.Equal(t, "camisa", spec.Keyword)
	assert.Equal(t, 2, spec.Page)
	// El orden de iteración del map no está garantizado.
	assert.ElementsMatch(t, []query.Filter{
		{Field: "price", Op: query.OpGte, Value: "10"},
		{Field: "price", Op: query.OpLte, Value: "50"},
	}, spec.Filters)
}

func TestParse_ClaveSimple_EsIgualdad(t *testing.T) {
	spec, err := query.Parse(map[string]string{"category": "ropa"}, testOpts)
	require.NoError(t, err)

	require.Len(t, spec.Filters, 1)
	assert.Equal(t, query.Filter{Field: "category", Op: query.OpEq, Value: "ropa"}, spec.Filters[0])
}

func TestParse_OperadorDesconocido_RetornaErrValidation(t *testing.T) {
	// Un operador no reconocido se rechaza, no se ignora en silencio.
	_, err := query.Parse(map[string]string{"price[between]": "10"}, testOpts)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestParse_CampoFueraDelAllowList_RetornaErrValidation(t *testing.T) {
	_, err := query.Parse(map[string]string{"password_hash": "x"}, testOpts)
	assert.ErrorIs(t, err, domain.ErrValidation,
		"un campo no filtrable debe rechazarse aunque exista en la tabla")

	_, err = query.Parse(map[string]string{"rating[gte]": "4"}, testOpts)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestParse_ParamMalformado_RetornaErrValidation(t *testing.T) {
	for _, malo := range []string{"[gte]", "price[gte", "price[]"} {
		_, err := query.Parse(map[string]string{malo: "1"}, testOpts)
		assert.ErrorIs(t, err, domain.ErrValidation, "clave %q debe rechazarse", malo)
	}
}

func TestParse_PaginaInvalida_SeFuerzaAUno(t *testing.T) {
	for _, p := range []string{"0", "-3", "abc", ""} {
		spec, err := query.Parse(map[string]string{"page": p}, testOpts)
		require.NoError(t, err)
		assert.Equal(t, 1, spec.Page, "page=%q debe coaccionarse a 1", p)
	}
}

func TestOffset_CalculoDePagina(t *testing.T) {
	spec := &query.Spec{Page: 1}
	assert.Equal(t, 0, spec.Offset(20))

	spec.Page = 2
	assert.Equal(t, 3, spec.Offset(3), "página 2 con tamaño 3 salta los primeros 3")

	spec.Page = 5
	assert.Equal(t, 80, spec.Offset(20))
}
