package password

import "golang.org/x/crypto/bcrypt"

// Hash genera el hash bcrypt de una contraseña en texto plano.
// bcrypt incluye un salt aleatorio por llamada: dos hashes del mismo texto nunca coinciden.
func Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify compara una contraseña en texto plano contra un hash bcrypt.
// La comparación interna es de tiempo constante. Un hash malformado
// devuelve false, nunca panic.
func Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
