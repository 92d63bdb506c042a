package joincode

import (
	"crypto/rand"
	"fmt"
)

// Alfabeto sin caracteres ambiguos (0/O, 1/I/L) para codigos que se
// dictan en voz alta en clase.
const alphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const Length = 6

// New genera un codigo de union de clase aleatorio de 6 caracteres.
// La unicidad global la garantiza la restriccion de la tabla clases;
// el llamador reintenta en caso de colision.
func New() (string, error) {
	buf := make([]byte, Length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}

	return string(buf), nil
}
