package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalid cubre cualquier token corrupto, con firma incorrecta o expirado.
// No se distingue la causa hacia el llamador.
var ErrInvalid = errors.New("token: inválido o expirado")

// Claims son los claims estándar JWT; el ID del usuario viaja en Subject.
// El token de sesión no lleva rol: el rol se resuelve desde la base de datos
// en cada petición, así un cambio de rol aplica sin reemitir el token.
type Claims struct {
	jwt.RegisteredClaims
}

// Codec firma y verifica tokens de sesión (JWT HS256) con un secreto de proceso.
// Rotar el secreto invalida todos los tokens emitidos; no hay lista de revocación.
type Codec struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewCodec construye el codec. ttl define la expiración de cada token emitido.
func NewCodec(secret, issuer string, ttl time.Duration) *Codec {
	return &Codec{secret: []byte(secret), issuer: issuer, ttl: ttl}
}

// TTL devuelve la vigencia configurada (la cookie de sesión usa el mismo valor).
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue genera un token firmado para el usuario con expiración = ahora + TTL.
func (c *Codec) Issue(userID string) (string, error) {
	if len(c.secret) == 0 {
		return "", fmt.Errorf("token: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(c.secret)
}

// Verify valida firma y expiración y devuelve el ID del usuario.
// Cualquier corrupción estructural, firma incorrecta o expiración produce
// ErrInvalid, nunca una identidad parcial.
func (c *Codec) Verify(tokenString string) (string, error) {
	if len(c.secret) == 0 {
		return "", fmt.Errorf("token: secret vacío")
	}
	tok, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		return "", ErrInvalid
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid || claims.Subject == "" {
		return "", ErrInvalid
	}
	return claims.Subject, nil
}
