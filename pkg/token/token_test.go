package token_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/pkg/token"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testIssuer = "tienda-api-test"
	testUserID = "00000000-0000-0000-0000-000000000001"
)

func TestCodec_IssueYVerify_Roundtrip(t *testing.T) {
	codec := token.NewCodec(testSecret, testIssuer, time.Hour)

	tok, err := codec.Issue(testUserID)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, err := codec.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, testUserID, userID, "el Subject debe ser el ID del usuario")
}

func TestCodec_TokenExpirado_RetornaErrInvalid(t *testing.T) {
	// TTL negativo: el token nace expirado.
	codec := token.NewCodec(testSecret, testIssuer, -time.Minute)

	tok, err := codec.Issue(testUserID)
	require.NoError(t, err)

	_, err = codec.Verify(tok)
	assert.ErrorIs(t, err, token.ErrInvalid, "un token expirado debe retornar ErrInvalid")
}

func TestCodec_SecretIncorrecto_RetornaErrInvalid(t *testing.T) {
	codec := token.NewCodec(testSecret, testIssuer, time.Hour)
	otro := token.NewCodec("otro-secret-completamente-distinto", testIssuer, time.Hour)

	tok, err := codec.Issue(testUserID)
	require.NoError(t, err)

	_, err = otro.Verify(tok)
	assert.ErrorIs(t, err, token.ErrInvalid, "firma con otro secret debe invalidar el token")
}

func TestCodec_TokenMalformado_RetornaErrInvalid(t *testing.T) {
	codec := token.NewCodec(testSecret, testIssuer, time.Hour)

	for _, malo := range []string{"", "x", "a.b.c", "token.invalido.aqui"} {
		_, err := codec.Verify(malo)
		assert.ErrorIs(t, err, token.ErrInvalid, "token corrupto %q debe retornar ErrInvalid", malo)
	}
}

func TestCodec_SubjectVacio_RetornaErrInvalid(t *testing.T) {
	codec := token.NewCodec(testSecret, testIssuer, time.Hour)

	tok, err := codec.Issue("")
	require.NoError(t, err)

	_, err = codec.Verify(tok)
	assert.ErrorIs(t, err, token.ErrInvalid,
		"un token sin Subject nunca debe resolver una identidad")
}
