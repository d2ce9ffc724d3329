package password_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/pkg/password"
)

func TestHash_DosHashesDistintosVerificanAmbos(t *testing.T) {
	// bcrypt sala cada hash: dos llamadas con la misma contraseña producen
	// hashes distintos y ambos verifican.
	h1, err := password.Hash("secreto-123")
	require.NoError(t, err)
	h2, err := password.Hash("secreto-123")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2, "dos hashes de la misma contraseña deben diferir (sal)")
	assert.True(t, password.Verify("secreto-123", h1))
	assert.True(t, password.Verify("secreto-123", h2))
}

func TestVerify_ContrasenaIncorrectaFalla(t *testing.T) {
	h, err := password.Hash("secreto-123")
	require.NoError(t, err)

	assert.False(t, password.Verify("otra-cosa", h),
		"una contraseña incorrecta no debe verificar")
}

func TestVerify_HashMalformadoFalla(t *testing.T) {
	assert.False(t, password.Verify("secreto-123", "no-es-un-hash-bcrypt"))
	assert.False(t, password.Verify("secreto-123", ""))
}
